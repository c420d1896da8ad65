package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Note frequencies for the built-in loop, A minor.
var (
	leadNotes = []float64{440.00, 523.25, 659.25, 523.25, 587.33, 698.46, 880.00, 698.46}
	bassNotes = []float64{110.00, 110.00, 87.31, 98.00}
)

// Chiptune is an endless square-lead, sine-bass loop with a soft kick.
// Its samples stay within [-1, 1].
type Chiptune struct {
	sr   beep.SampleRate
	pos  int
	step int // Samples per lead note
}

// NewChiptune creates a loop generator at 150 BPM eighth notes.
func NewChiptune(sr beep.SampleRate) *Chiptune {
	return &Chiptune{
		sr:   sr,
		step: sr.N(200 * time.Millisecond),
	}
}

func (g *Chiptune) Stream(samples [][2]float64) (n int, ok bool) {
	kickLen := g.sr.N(80 * time.Millisecond)

	for i := range samples {
		note := g.pos / g.step
		inNote := g.pos % g.step
		t := float64(g.pos) / float64(g.sr)

		// Square lead with a short decay per note
		lead := -1.0
		if math.Mod(t*leadNotes[note%len(leadNotes)], 1) < 0.5 {
			lead = 1
		}
		lead *= 0.12 * (1 - 0.6*float64(inNote)/float64(g.step))

		// Bass changes every two bars of lead
		bassFreq := bassNotes[(note/len(leadNotes))%len(bassNotes)]
		bass := 0.18 * math.Sin(2*math.Pi*bassFreq*t)

		// Kick on every other lead note
		kick := 0.0
		if note%2 == 0 && inNote < kickLen {
			env := 1 - float64(inNote)/float64(kickLen)
			kick = 0.3 * env * math.Sin(2*math.Pi*60*(1+env)*float64(inNote)/float64(g.sr))
		}

		s := lead + bass + kick
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *Chiptune) Err() error {
	return nil
}
