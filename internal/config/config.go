// Package config provides YAML-based configuration for the flappy simulation
// and its collaborators.
package config

// FlappyConfig contains all configuration for the game.
type FlappyConfig struct {
	Playfield FlappyPlayfield `yaml:"playfield"`
	Physics   FlappyPhysics   `yaml:"physics"`
	Actor     FlappyActor     `yaml:"actor"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	Timing    FlappyTiming    `yaml:"timing"`
	Audio     AudioConfig     `yaml:"audio"`
}

// FlappyPlayfield is the simulated area in pixels.
type FlappyPlayfield struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FlappyPhysics defines the integer per-tick constants.
type FlappyPhysics struct {
	Gravity     int `yaml:"gravity"`      // Added to velocity every tick
	JumpImpulse int `yaml:"jump_impulse"` // Velocity set on jump (negative = up)
	PipeSpeed   int `yaml:"pipe_speed"`   // Obstacles move left this much per tick
}

// FlappyActor defines the player's lane and hitbox.
type FlappyActor struct {
	X    int `yaml:"x"`
	Size int `yaml:"size"`
}

// FlappyObstacles defines obstacle pair geometry.
// The top segment height is drawn from [MinTop, MinTop+TopRange).
type FlappyObstacles struct {
	Width    int `yaml:"width"`
	Gap      int `yaml:"gap"`
	MinTop   int `yaml:"min_top"`
	TopRange int `yaml:"top_range"`
}

// FlappyTiming defines the fixed timestep.
type FlappyTiming struct {
	TickRate int `yaml:"tick_rate"`
}

// AudioConfig controls the background music collaborator.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Path    string  `yaml:"path"`   // WAV file; empty plays the built-in loop
	Volume  float64 `yaml:"volume"` // Exponent for base 2, 0 is unchanged
}

// FloorY returns the largest actor y that is still above the ground.
func (c FlappyConfig) FloorY() int {
	return c.Playfield.Height - c.Actor.Size
}

// SpawnX returns the x at which new obstacle pairs appear.
func (c FlappyConfig) SpawnX() int {
	return c.Playfield.Width
}
