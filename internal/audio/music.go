// Package audio plays looping background music with gopxl/beep.
// Music is independent of the simulation; hosts start it and forget it.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

const sampleRate = beep.SampleRate(44100)

// Music is a single endless background track.
type Music struct {
	mu     sync.Mutex
	cfg    config.AudioConfig
	format beep.Format
	file   beep.StreamSeekCloser // nil for the built-in loop
	ctrl   *beep.Ctrl
	volume *effects.Volume

	loaded  bool
	started bool
}

// NewMusic creates a track from cfg. Nothing is opened until Load.
func NewMusic(cfg config.AudioConfig) *Music {
	return &Music{cfg: cfg}
}

// Load decodes the configured WAV file, or prepares the built-in loop when
// no path is set. It is called by Start if needed.
func (m *Music) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

func (m *Music) load() error {
	if m.loaded {
		return nil
	}

	var source beep.Streamer
	if m.cfg.Path == "" {
		m.format = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
		source = NewChiptune(sampleRate)
	} else {
		f, err := os.Open(m.cfg.Path)
		if err != nil {
			return fmt.Errorf("audio: cannot open %s: %w", m.cfg.Path, err)
		}
		stream, format, err := wav.Decode(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("audio: cannot decode %s: %w", m.cfg.Path, err)
		}
		if stream.Len() == 0 {
			stream.Close()
			return fmt.Errorf("audio: %s has no samples", m.cfg.Path)
		}
		m.file = stream
		m.format = format
		source = beep.Loop(-1, stream)
	}

	m.ctrl = &beep.Ctrl{Streamer: source}
	m.volume = newVolume(m.ctrl, m.cfg.Volume)
	m.loaded = true
	return nil
}

// Start opens the audio device and begins playback. Calling Start on a
// playing track does nothing.
func (m *Music) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return nil
	}
	if err := m.load(); err != nil {
		return err
	}

	sr := m.format.SampleRate
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: cannot open output device: %w", err)
	}
	speaker.Play(m.volume)
	m.started = true
	return nil
}

// Stop pauses playback without releasing the device.
func (m *Music) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return
	}
	speaker.Lock()
	m.ctrl.Paused = true
	speaker.Unlock()
}

// ToggleMute silences or restores the track and reports whether it is now
// muted. It works before Start so a muted preference carries over.
func (m *Music) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.load(); err != nil {
		return false
	}

	if m.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	m.volume.Silent = !m.volume.Silent
	return m.volume.Silent
}

// Close stops playback and releases the device and the decoded file.
func (m *Music) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		speaker.Clear()
		speaker.Close()
		m.started = false
	}

	var err error
	if m.file != nil {
		err = m.file.Close()
		m.file = nil
	}
	m.loaded = false
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("audio: close: %w", err)
	}
	return nil
}

// newVolume wraps s in a base-2 volume effect.
func newVolume(s beep.Streamer, exp float64) *effects.Volume {
	if math.IsNaN(exp) {
		exp = 0
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: exp}
}
