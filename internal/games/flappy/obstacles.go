package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Obstacle is one pair of pipe segments sharing a horizontal position and a gap.
type Obstacle struct {
	Top    core.Rect
	Bottom core.Rect
}

// X returns the shared left edge of both segments.
func (o Obstacle) X() int {
	return o.Top.X
}

// Right returns the shared right edge of both segments.
func (o Obstacle) Right() int {
	return o.Top.Right()
}

// GapY returns the y where the passable gap starts.
func (o Obstacle) GapY() int {
	return o.Top.Bottom()
}

func (o *Obstacle) shift(dx int) {
	o.Top = o.Top.Translate(dx, 0)
	o.Bottom = o.Bottom.Translate(dx, 0)
}

// Queue is the FIFO of active obstacle pairs, ordered by creation and x.
// Pairs are only ever added and removed whole.
type Queue struct {
	pairs []Obstacle
	rng   *rand.Rand
	cfg   config.FlappyConfig
}

// NewQueue creates an empty queue drawing gaps from rng.
func NewQueue(rng *rand.Rand, cfg config.FlappyConfig) *Queue {
	return &Queue{
		pairs: make([]Obstacle, 0, 2),
		rng:   rng,
		cfg:   cfg,
	}
}

// Len returns the number of pairs in the queue.
func (q *Queue) Len() int {
	return len(q.pairs)
}

// Pairs returns the queued pairs. The slice is owned by the queue.
func (q *Queue) Pairs() []Obstacle {
	return q.pairs
}

// Rects flattens the queue into top, bottom, top, bottom... in queue order.
func (q *Queue) Rects() []core.Rect {
	rects := make([]core.Rect, 0, 2*len(q.pairs))
	for _, p := range q.pairs {
		rects = append(rects, p.Top, p.Bottom)
	}
	return rects
}

// Clear removes every pair.
func (q *Queue) Clear() {
	q.pairs = q.pairs[:0]
}

// Spawn appends a fresh pair at the right boundary.
func (q *Queue) Spawn() Obstacle {
	o := q.generate(q.cfg.SpawnX())
	q.pairs = append(q.pairs, o)
	return o
}

// Advance moves every pair left by speed.
func (q *Queue) Advance(speed int) {
	for i := range q.pairs {
		q.pairs[i].shift(-speed)
	}
}

// Recycle removes the leading pair once it is fully past the left boundary
// and appends a freshly generated pair. At most one pair is replaced per call.
func (q *Queue) Recycle() bool {
	if len(q.pairs) == 0 || q.pairs[0].Right() >= 0 {
		return false
	}
	q.pairs = append(q.pairs[:0], q.pairs[1:]...)
	q.Spawn()
	return true
}

// Collides reports whether box overlaps any queued segment.
func (q *Queue) Collides(box core.Rect) bool {
	for _, p := range q.pairs {
		if box.Intersects(p.Top) || box.Intersects(p.Bottom) {
			return true
		}
	}
	return false
}

// generate builds a pair at x with a top segment of height
// MinTop + U[0, TopRange) and the fixed gap below it.
func (q *Queue) generate(x int) Obstacle {
	obs := q.cfg.Obstacles
	height := q.cfg.Playfield.Height

	topH := obs.MinTop + q.rng.Intn(obs.TopRange)
	bottomY := topH + obs.Gap

	return Obstacle{
		Top:    core.NewRect(x, 0, obs.Width, topH),
		Bottom: core.NewRect(x, bottomY, obs.Width, height-bottomY),
	}
}
