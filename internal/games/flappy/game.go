// Package flappy implements the Flappy Bird simulation.
// The actor falls under gravity, flaps on input, and must pass through the
// gap of each obstacle pair without touching it or the ground.
package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// EndReason records why the last episode ended.
type EndReason int

const (
	EndNone EndReason = iota
	EndGround
	EndCollision
)

// String returns a human-readable name for the reason.
func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndGround:
		return "ground"
	case EndCollision:
		return "collision"
	default:
		return "unknown"
	}
}

// Actor is the player-controlled sprite. Only its vertical state changes.
type Actor struct {
	Y        int // Top of the hitbox, pixels
	Velocity int // Pixels per tick, positive is down
}

// Snapshot is a read-only copy of the simulation for rendering.
type Snapshot struct {
	Actor      Actor
	ActorBox   core.Rect
	Obstacles  []core.Rect // Top, bottom per pair, oldest pair first
	Running    bool
	Reason     EndReason
	Episode    int // 1-based, incremented by Restart
	Ticks      int // Ticks simulated in the current episode
	PlayfieldW int
	PlayfieldH int
}

// StepResult is returned by Step after each simulation tick.
type StepResult struct {
	// Ended is true when this step moved the game from running to ended.
	Ended    bool
	Snapshot Snapshot
}

// Game is the whole simulation state. It is not safe for concurrent use;
// callers serialize Tick, Jump, Restart and Snapshot.
type Game struct {
	cfg       config.FlappyConfig
	seed      int64
	rng       *rand.Rand
	actor     Actor
	obstacles *Queue
	running   bool
	reason    EndReason
	episode   int
	ticks     int
}

// New creates a running game. The RNG is seeded once and survives restarts,
// so a session is reproducible from its seed and its input sequence.
func New(cfg config.FlappyConfig, seed int64) *Game {
	rng := rand.New(rand.NewSource(seed))
	g := &Game{
		cfg:       cfg,
		seed:      seed,
		rng:       rng,
		obstacles: NewQueue(rng, cfg),
	}
	g.reset()
	return g
}

// reset puts the actor back mid-screen and starts a new episode with one pair.
func (g *Game) reset() {
	g.actor = Actor{Y: g.cfg.Playfield.Height / 2}
	g.obstacles.Clear()
	g.obstacles.Spawn()
	g.running = true
	g.reason = EndNone
	g.ticks = 0
	g.episode++
}

// Seed returns the seed the game was created with.
func (g *Game) Seed() int64 {
	return g.seed
}

// Config returns the configuration the game runs with.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// Running reports whether the current episode is still in play.
func (g *Game) Running() bool {
	return g.running
}

// Tick advances the simulation by one fixed step. It does nothing once the
// episode has ended.
func (g *Game) Tick() {
	if !g.running {
		return
	}
	g.ticks++

	// Gravity, then integrate
	g.actor.Velocity += g.cfg.Physics.Gravity
	g.actor.Y += g.actor.Velocity

	// Ground clamp
	if floor := g.cfg.FloorY(); g.actor.Y > floor {
		g.actor.Y = floor
		g.actor.Velocity = 0
		g.end(EndGround)
	}

	g.obstacles.Advance(g.cfg.Physics.PipeSpeed)
	g.obstacles.Recycle()

	// Checked against the full queue, including a pair spawned this tick
	if g.obstacles.Collides(g.actorBox()) {
		g.end(EndCollision)
	}
}

// end records the first reason an episode stopped.
func (g *Game) end(reason EndReason) {
	if g.running {
		g.reason = reason
	}
	g.running = false
}

// Jump sets the actor's velocity to the jump impulse. No-op once ended.
func (g *Game) Jump() {
	if !g.running {
		return
	}
	g.actor.Velocity = g.cfg.Physics.JumpImpulse
}

// Restart begins a new episode. It only applies once the current one has
// ended and reports whether it did anything.
func (g *Game) Restart() bool {
	if g.running {
		return false
	}
	g.reset()
	return true
}

// Step applies one frame of recorded input and then ticks.
func (g *Game) Step(in core.InputFrame) StepResult {
	if in.Has(core.ActionRestart) {
		g.Restart()
	}
	if in.Has(core.ActionJump) {
		g.Jump()
	}

	wasRunning := g.running
	g.Tick()

	return StepResult{
		Ended:    wasRunning && !g.running,
		Snapshot: g.Snapshot(),
	}
}

// Snapshot returns a copy of the state for rendering.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Actor:      g.actor,
		ActorBox:   g.actorBox(),
		Obstacles:  g.obstacles.Rects(),
		Running:    g.running,
		Reason:     g.reason,
		Episode:    g.episode,
		Ticks:      g.ticks,
		PlayfieldW: g.cfg.Playfield.Width,
		PlayfieldH: g.cfg.Playfield.Height,
	}
}

// actorBox returns the actor's collision rectangle in its fixed lane.
func (g *Game) actorBox() core.Rect {
	return core.NewRect(g.cfg.Actor.X, g.actor.Y, g.cfg.Actor.Size, g.cfg.Actor.Size)
}
