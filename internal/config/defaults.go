package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration: an 800x600 playfield,
// gravity 1, jump -15, 80px obstacles with a 200px gap moving 5px per tick.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Playfield: FlappyPlayfield{
			Width:  800,
			Height: 600,
		},
		Physics: FlappyPhysics{
			Gravity:     1,
			JumpImpulse: -15,
			PipeSpeed:   5,
		},
		Actor: FlappyActor{
			X:    100,
			Size: 50,
		},
		Obstacles: FlappyObstacles{
			Width:    80,
			Gap:      200,
			MinTop:   100,
			TopRange: 300,
		},
		Timing: FlappyTiming{
			TickRate: 60,
		},
		Audio: AudioConfig{
			Enabled: true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
