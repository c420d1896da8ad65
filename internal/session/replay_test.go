package session

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// playScripted drives a live session with presses at fixed host ticks.
func playScripted(t *testing.T, presses map[int]int, total int) (storage.Run, []flappy.Snapshot) {
	t.Helper()

	saver := &fakeSaver{}
	s := newTestSession(saver)

	var trace []flappy.Snapshot
	for tick := 0; tick < total; tick++ {
		for i := 0; i < presses[tick]; i++ {
			s.Press()
		}
		s.Tick()
		trace = append(trace, s.Snapshot())
	}

	if s.Close() == 0 {
		t.Fatal("run was not saved")
	}
	return saver.runs[0], trace
}

func TestReplayReproducesSession(t *testing.T) {
	// Flap a few times, crash, restart, and flap again in the new episode.
	presses := map[int]int{
		0:   1,
		12:  1,
		25:  2,
		150: 1,
		151: 1,
		160: 1,
	}
	run, trace := playScripted(t, presses, 300)

	replay, err := NewReplay(&run)
	if err != nil {
		t.Fatalf("NewReplay() failed: %v", err)
	}

	for i, want := range trace {
		if replay.Done() {
			t.Fatalf("replay done early at tick %d", i)
		}
		replay.Tick()
		if got := replay.Snapshot(); !reflect.DeepEqual(got, want) {
			t.Fatalf("tick %d diverged:\n got %+v\nwant %+v", i, got, want)
		}
	}

	if !replay.Done() {
		t.Error("replay should be done after all ticks")
	}
	played, total := replay.Progress()
	if played != 300 || total != 300 {
		t.Errorf("Progress() = %d/%d, want 300/300", played, total)
	}

	// Extra ticks are ignored
	last := replay.Snapshot()
	replay.Tick()
	if !reflect.DeepEqual(last, replay.Snapshot()) {
		t.Error("replay advanced past its end")
	}
}

func TestReplayIgnoresPress(t *testing.T) {
	run, _ := playScripted(t, nil, 5)

	replay, err := NewReplay(&run)
	if err != nil {
		t.Fatalf("NewReplay() failed: %v", err)
	}

	before := replay.Snapshot()
	replay.Press()
	if !reflect.DeepEqual(before, replay.Snapshot()) {
		t.Error("Press should not change a replay")
	}
}

func TestNewReplayErrors(t *testing.T) {
	good, _ := playScripted(t, map[int]int{0: 1}, 3)

	tests := []struct {
		name string
		run  *storage.Run
	}{
		{"nil run", nil},
		{"bad config", &storage.Run{ConfigYAML: []byte("playfield: [")}},
		{"invalid config", &storage.Run{ConfigYAML: []byte("playfield:\n  width: 0\n")}},
		{"unknown action", &storage.Run{
			ConfigYAML: good.ConfigYAML,
			Ticks:      3,
			Events:     []storage.Event{{Tick: 0, Action: "Fly"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewReplay(tt.run); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
