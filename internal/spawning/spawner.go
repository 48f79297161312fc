package spawning

import (
	"fmt"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/items"
)

// Spawner produces Output into an inventory every Interval of scaled time.
// When Source is set the output is drawn from it best-effort instead of being
// created from nothing.
type Spawner struct {
	Output   []items.Stack
	Interval time.Duration
	Speed    float64
	Source   *items.Inventory

	elapsed time.Duration
}

func New(interval time.Duration, output ...items.Stack) (*Spawner, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("spawner interval must be positive, got %s", interval)
	}
	if len(output) == 0 {
		return nil, fmt.Errorf("spawner output is required")
	}
	return &Spawner{Output: items.CloneStacks(output), Interval: interval, Speed: 1}, nil
}

// Advance ticks the timer and, when it fires, adds the produced stacks to
// inv. It fires at most once per call; the overshoot carries into the next
// period. The returned stacks are nil when nothing was produced.
func (s *Spawner) Advance(inv *items.Inventory, elapsed time.Duration) []items.Stack {
	if s == nil || s.Interval <= 0 || elapsed <= 0 {
		return nil
	}
	speed := s.Speed
	if speed <= 0 {
		speed = 1
	}
	s.elapsed += time.Duration(float64(elapsed) * speed)
	if s.elapsed < s.Interval {
		return nil
	}
	s.elapsed %= s.Interval

	var produced []items.Stack
	if s.Source != nil {
		produced = s.Source.RemoveIfPossible(s.Output)
	} else {
		produced = items.CloneStacks(s.Output)
	}
	if len(produced) == 0 {
		return nil
	}
	inv.AddItems(produced)
	return produced
}

// Remaining is the scaled time left until the next spawn.
func (s *Spawner) Remaining() time.Duration {
	if s == nil {
		return 0
	}
	return s.Interval - s.elapsed
}

func (s *Spawner) Fraction() float64 {
	if s == nil || s.Interval <= 0 {
		return 0
	}
	return float64(s.elapsed) / float64(s.Interval)
}
