package scale

import (
	"sync"
	"time"
)

// Reading is the most recent sample taken from the scale.
type Reading struct {
	Grams float64
	At    time.Time
}

// Cell holds the latest reading. The poller goroutine writes it and request
// handlers read it; this one value is the only state shared between the two,
// so an RWMutex around whole-value replacement is all the coordination
// needed. There is no queue: a reader gets the previous or the new sample,
// never a torn one, and stale reads are fine.
type Cell struct {
	mu      sync.RWMutex
	reading Reading
	present bool
}

func (c *Cell) Set(grams float64) {
	c.mu.Lock()
	c.reading = Reading{Grams: grams, At: time.Now()}
	c.present = true
	c.mu.Unlock()
}

// Latest never blocks on the poller; ok is false until the first sample.
func (c *Cell) Latest() (Reading, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reading, c.present
}
