package audio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// writeWAV writes a mono 16-bit PCM file with n samples of a ramp.
func writeWAV(t *testing.T, path string, n int) {
	t.Helper()

	dataLen := uint32(n * 2)
	buf := make([]byte, 0, 44+dataLen)
	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, 36+dataLen)
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1) // PCM
	buf = binary.LittleEndian.AppendUint16(buf, 1) // mono
	buf = binary.LittleEndian.AppendUint32(buf, 44100)
	buf = binary.LittleEndian.AppendUint32(buf, 44100*2)
	buf = binary.LittleEndian.AppendUint16(buf, 2)
	buf = binary.LittleEndian.AppendUint16(buf, 16)
	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, dataLen)
	for i := 0; i < n; i++ {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(int16(i*100)))
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tmpDir := t.TempDir()
	notWAV := filepath.Join(tmpDir, "notes.txt")
	if err := os.WriteFile(notWAV, []byte("definitely not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(tmpDir, "missing.wav")},
		{"not a wav", notWAV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMusic(config.AudioConfig{Enabled: true, Path: tt.path})
			if err := m.Load(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadBuiltin(t *testing.T) {
	m := NewMusic(config.AudioConfig{Enabled: true})
	if err := m.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	defer m.Close()

	if m.format.SampleRate != sampleRate {
		t.Errorf("sample rate = %d, want %d", m.format.SampleRate, sampleRate)
	}
	if m.file != nil {
		t.Error("built-in loop should not hold a file")
	}
}

func TestWAVLoops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.wav")
	writeWAV(t, path, 100)

	m := NewMusic(config.AudioConfig{Enabled: true, Path: path})
	if err := m.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	defer m.Close()

	// Three times the file length must stream without running dry
	samples := make([][2]float64, 300)
	n, ok := m.volume.Stream(samples)
	if n != len(samples) || !ok {
		t.Errorf("Stream() = %d, %v; want %d, true", n, ok, len(samples))
	}
	if samples[0] != samples[100] {
		t.Errorf("loop should restart: sample 0 = %v, sample 100 = %v", samples[0], samples[100])
	}
}

func TestToggleMuteBeforeStart(t *testing.T) {
	m := NewMusic(config.AudioConfig{Enabled: true})
	defer m.Close()

	if !m.ToggleMute() {
		t.Error("first toggle should mute")
	}
	if m.ToggleMute() {
		t.Error("second toggle should unmute")
	}
}

func TestChiptuneRange(t *testing.T) {
	g := NewChiptune(sampleRate)
	samples := make([][2]float64, 4096)

	// A few seconds covers every lead and bass note
	for chunk := 0; chunk < 100; chunk++ {
		n, ok := g.Stream(samples)
		if n != len(samples) || !ok {
			t.Fatalf("Stream() = %d, %v; generator should be endless", n, ok)
		}
		for i, s := range samples {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("chunk %d sample %d out of range: %v", chunk, i, s)
			}
		}
	}
	if g.Err() != nil {
		t.Errorf("Err() = %v", g.Err())
	}
}
