package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) failed: %v", err)
	}
	if cfg != DefaultFlappyConfig() {
		t.Errorf("embedded defaults differ from DefaultFlappyConfig():\n got %+v\nwant %+v", cfg, DefaultFlappyConfig())
	}
}

func TestLoadFlappyCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	data := []byte("physics:\n  gravity: 2\n  pipe_speed: 7\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Physics.Gravity != 2 || cfg.Physics.PipeSpeed != 7 {
		t.Errorf("overrides not applied: %+v", cfg.Physics)
	}
	// Keys not in the file keep their defaults
	if cfg.Physics.JumpImpulse != -15 {
		t.Errorf("JumpImpulse = %d, expected default -15", cfg.Physics.JumpImpulse)
	}
	if cfg.Playfield.Height != 600 {
		t.Errorf("Playfield.Height = %d, expected default 600", cfg.Playfield.Height)
	}
}

func TestLoadFlappyCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFlappy(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFlappy(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FlappyConfig)
		wantErr string
	}{
		{"defaults", func(*FlappyConfig) {}, ""},
		{"zero gravity", func(c *FlappyConfig) { c.Physics.Gravity = 0 }, "gravity"},
		{"upward jump must be negative", func(c *FlappyConfig) { c.Physics.JumpImpulse = 3 }, "jump_impulse"},
		{"no pipe speed", func(c *FlappyConfig) { c.Physics.PipeSpeed = 0 }, "pipe_speed"},
		{"gap leaves no bottom segment", func(c *FlappyConfig) { c.Obstacles.Gap = 201 }, "no bottom segment"},
		{"largest legal gap", func(c *FlappyConfig) { c.Obstacles.Gap = 200 }, ""},
		{"negative min top", func(c *FlappyConfig) { c.Obstacles.MinTop = -1 }, "min_top"},
		{"actor off field", func(c *FlappyConfig) { c.Actor.X = 790 }, "actor.x"},
		{"zero tick rate", func(c *FlappyConfig) { c.Timing.TickRate = 0 }, "tick_rate"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %v, expected error mentioning %q", err, tc.wantErr)
			}
		})
	}
}

func TestMarshalParse(t *testing.T) {
	cfg := DefaultFlappyConfig()
	cfg.Physics.PipeSpeed = 9
	cfg.Audio.Path = "/tmp/loop.wav"

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got != cfg {
		t.Errorf("Parse(Marshal(cfg)) = %+v, expected %+v", got, cfg)
	}
}

func TestFloorAndSpawn(t *testing.T) {
	cfg := DefaultFlappyConfig()
	if cfg.FloorY() != 550 {
		t.Errorf("FloorY() = %d, expected 550", cfg.FloorY())
	}
	if cfg.SpawnX() != 800 {
		t.Errorf("SpawnX() = %d, expected 800", cfg.SpawnX())
	}
}
