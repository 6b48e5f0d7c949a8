// Package host is the demo application driven by the console: a scaled
// frame clock and a handful of application commands.
package host

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Clock accumulates scaled frame time. A scale of 0 pauses it.
type Clock struct {
	mu      sync.Mutex
	scale   float64
	elapsed time.Duration
	real    time.Duration
	frames  uint64
}

// NewClock returns a clock running at scale. Negative and non-finite scales
// become 1.
func NewClock(scale float64) *Clock {
	if scale < 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	return &Clock{scale: scale}
}

// SetTimeScale sets the multiplier applied to every following frame.
// Negative and non-finite scales are ignored.
func (c *Clock) SetTimeScale(scale float64) {
	if scale < 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return
	}
	c.mu.Lock()
	c.scale = scale
	c.mu.Unlock()
}

// TimeScale returns the current multiplier.
func (c *Clock) TimeScale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale
}

// Frame advances the clock by one frame of real duration dt.
func (c *Clock) Frame(dt time.Duration) {
	if dt <= 0 {
		return
	}
	c.mu.Lock()
	c.frames++
	c.real += dt
	c.elapsed += time.Duration(float64(dt) * c.scale)
	c.mu.Unlock()
}

// Elapsed returns scaled time since start.
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Frames returns the number of frames advanced.
func (c *Clock) Frames() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// Status is a one-line summary for the terminal header.
func (c *Clock) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("t=%s x%.2f", c.elapsed.Truncate(100*time.Millisecond), c.scale)
}

func (c *Clock) uptime() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("game time %s, real time %s, %d frames at x%.2f",
		c.elapsed.Truncate(time.Millisecond), c.real.Truncate(time.Millisecond), c.frames, c.scale)
}
