// Package session connects hosts to a flappy game. A Session is live play
// with input routing and recording; a Replay plays a recorded run back.
package session

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Driver is what a host talks to. Tick is called at the fixed tick rate,
// Press on every discrete key press, Snapshot before every frame.
type Driver interface {
	Tick()
	Press()
	Snapshot() flappy.Snapshot
	// Done reports that the driver has nothing more to show.
	Done() bool
}

// RunSaver persists a finished recording. *storage.Store satisfies it.
type RunSaver interface {
	SaveRun(run storage.Run) (int64, error)
}

// Event is one routed press, delivered before host tick Tick.
type Event struct {
	Tick   int
	Action core.Action
}

// Options configures a live session. Zero values are usable.
type Options struct {
	// Saver receives the recording on Close. Nil disables recording.
	Saver  RunSaver
	Logger *log.Logger
}

// Session is live play. All methods are safe for concurrent use, so a host
// may deliver input from a different goroutine than its tick source.
type Session struct {
	mu     sync.Mutex
	game   *flappy.Game
	saver  RunSaver
	logger *log.Logger

	ticks  int
	events []Event
	closed bool
}

// New wraps game for live play.
func New(game *flappy.Game, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		game:   game,
		saver:  opts.Saver,
		logger: logger,
	}
}

// Tick advances the game by one step and logs the end of an episode.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	wasRunning := s.game.Running()
	s.game.Tick()
	s.ticks++

	if wasRunning && !s.game.Running() {
		snap := s.game.Snapshot()
		s.logger.Info("episode ended",
			"episode", snap.Episode,
			"reason", snap.Reason,
			"ticks", snap.Ticks,
		)
	}
}

// Press flaps while the episode runs and restarts once it has ended.
func (s *Session) Press() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	action := core.ActionJump
	if s.game.Running() {
		s.game.Jump()
	} else {
		action = core.ActionRestart
		s.game.Restart()
		s.logger.Debug("episode started", "episode", s.game.Snapshot().Episode)
	}
	s.events = append(s.events, Event{Tick: s.ticks, Action: action})
}

// Snapshot returns a copy of the game state.
func (s *Session) Snapshot() flappy.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// Done reports whether the session has been closed. Live play otherwise
// lasts until the host quits.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Ticks returns the number of host ticks delivered so far.
func (s *Session) Ticks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Events returns a copy of the recorded presses.
func (s *Session) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// record builds the storable form of the session so far.
func (s *Session) record() (storage.Run, error) {
	cfg := s.game.Config()
	data, err := config.Marshal(cfg)
	if err != nil {
		return storage.Run{}, err
	}

	events := make([]storage.Event, len(s.events))
	for i, e := range s.events {
		events[i] = storage.Event{Tick: e.Tick, Action: e.Action.String()}
	}

	return storage.Run{
		Seed:       s.game.Seed(),
		TickRate:   cfg.Timing.TickRate,
		Ticks:      s.ticks,
		Episodes:   s.game.Snapshot().Episode,
		ConfigYAML: data,
		Events:     events,
	}, nil
}

// Close stops the session and saves the recording if a saver is set.
// It returns the stored run ID, or 0 if nothing was saved. Save errors are
// logged. Only the first call has any effect.
func (s *Session) Close() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}
	s.closed = true

	if s.saver == nil || s.ticks == 0 {
		return 0
	}

	run, err := s.record()
	if err != nil {
		s.logger.Warn("could not encode run", "error", err)
		return 0
	}

	id, err := s.saver.SaveRun(run)
	if err != nil {
		s.logger.Warn("could not save run", "error", err)
		return 0
	}

	s.logger.Info("run saved", "id", id, "ticks", run.Ticks, "events", len(run.Events))
	return id
}
