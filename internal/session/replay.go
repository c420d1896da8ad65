package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Replay plays a recorded run back tick for tick. Presses are ignored.
type Replay struct {
	mu     sync.Mutex
	game   *flappy.Game
	frames map[int]core.InputFrame
	total  int
	cursor int
	id     int64
}

// NewReplay rebuilds the game a run was recorded with.
func NewReplay(run *storage.Run) (*Replay, error) {
	if run == nil {
		return nil, errors.New("session: no run to replay")
	}

	cfg, err := config.Parse(run.ConfigYAML)
	if err != nil {
		return nil, fmt.Errorf("session: run %d has an invalid config: %w", run.ID, err)
	}

	frames := make(map[int]core.InputFrame)
	for _, e := range run.Events {
		a := core.ParseAction(e.Action)
		if a != core.ActionJump && a != core.ActionRestart {
			return nil, fmt.Errorf("session: run %d has unknown action %q at tick %d", run.ID, e.Action, e.Tick)
		}
		f, ok := frames[e.Tick]
		if !ok {
			f = core.NewInputFrame()
			frames[e.Tick] = f
		}
		f.Set(a)
	}

	return &Replay{
		game:   flappy.New(cfg, run.Seed),
		frames: frames,
		total:  run.Ticks,
		id:     run.ID,
	}, nil
}

// ID returns the stored run ID being replayed.
func (r *Replay) ID() int64 {
	return r.id
}

// Tick applies the inputs recorded for the current tick, then steps the game.
func (r *Replay) Tick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cursor >= r.total {
		return
	}

	in, ok := r.frames[r.cursor]
	if !ok {
		in = core.NewInputFrame()
	}
	r.game.Step(in)
	r.cursor++
}

// Press is ignored during playback.
func (r *Replay) Press() {}

// Snapshot returns a copy of the replayed game state.
func (r *Replay) Snapshot() flappy.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.Snapshot()
}

// Done reports whether every recorded tick has been played.
func (r *Replay) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursor >= r.total
}

// Progress returns played and total ticks.
func (r *Replay) Progress() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursor, r.total
}
