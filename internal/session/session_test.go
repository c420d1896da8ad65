package session

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

type fakeSaver struct {
	runs []storage.Run
	err  error
}

func (f *fakeSaver) SaveRun(run storage.Run) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.runs = append(f.runs, run)
	return int64(len(f.runs)), nil
}

func newTestSession(saver RunSaver) *Session {
	game := flappy.New(config.DefaultFlappyConfig(), 7)
	return New(game, Options{Saver: saver, Logger: log.New(io.Discard)})
}

func TestPressRouting(t *testing.T) {
	s := newTestSession(nil)

	s.Tick()
	s.Press()
	if got := s.Snapshot().Actor.Velocity; got != -15 {
		t.Errorf("velocity after press = %d, want -15", got)
	}

	for i := 0; i < 200 && s.Snapshot().Running; i++ {
		s.Tick()
	}
	if s.Snapshot().Running {
		t.Fatal("episode should have ended")
	}

	s.Press()
	snap := s.Snapshot()
	if !snap.Running || snap.Episode != 2 {
		t.Errorf("press after game over should restart, got running=%v episode=%d", snap.Running, snap.Episode)
	}

	events := s.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0] != (Event{Tick: 1, Action: core.ActionJump}) {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1].Action != core.ActionRestart || events[1].Tick != s.Ticks() {
		t.Errorf("second event = %+v, ticks = %d", events[1], s.Ticks())
	}
}

func TestCloseSavesOnce(t *testing.T) {
	saver := &fakeSaver{}
	s := newTestSession(saver)

	for i := 0; i < 10; i++ {
		s.Tick()
	}
	s.Press()

	if id := s.Close(); id != 1 {
		t.Errorf("Close() = %d, want 1", id)
	}
	if id := s.Close(); id != 0 {
		t.Errorf("second Close() = %d, want 0", id)
	}
	if len(saver.runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(saver.runs))
	}

	run := saver.runs[0]
	if run.Seed != 7 || run.Ticks != 10 || run.Episodes != 1 || run.TickRate != 60 {
		t.Errorf("unexpected run header: %+v", run)
	}
	if len(run.Events) != 1 || run.Events[0] != (storage.Event{Tick: 10, Action: "Jump"}) {
		t.Errorf("unexpected events: %+v", run.Events)
	}
	if len(run.ConfigYAML) == 0 {
		t.Error("config snapshot should be stored")
	}
}

func TestClosedSessionIgnoresInput(t *testing.T) {
	s := newTestSession(nil)
	s.Tick()
	s.Close()

	before := s.Snapshot()
	s.Tick()
	s.Press()

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("closed session should not change")
	}
	if !s.Done() {
		t.Error("closed session should be done")
	}
	if s.Ticks() != 1 || len(s.Events()) != 0 {
		t.Errorf("closed session recorded input: ticks=%d events=%d", s.Ticks(), len(s.Events()))
	}
}

func TestCloseWithoutTicksSkipsSave(t *testing.T) {
	saver := &fakeSaver{}
	s := newTestSession(saver)

	if id := s.Close(); id != 0 {
		t.Errorf("Close() = %d, want 0", id)
	}
	if len(saver.runs) != 0 {
		t.Error("empty session should not be saved")
	}
}

func TestCloseSaveErrorIsNotFatal(t *testing.T) {
	s := newTestSession(&fakeSaver{err: errors.New("disk full")})
	s.Tick()

	if id := s.Close(); id != 0 {
		t.Errorf("Close() = %d, want 0 on save error", id)
	}
	if !s.Done() {
		t.Error("session should be closed even if saving failed")
	}
}
