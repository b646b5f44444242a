// Package clock provides the monotonic simulation clock that cooldowns and
// dash deadlines are measured against. It only advances when the host steps
// it, so pausing the simulation pauses every timer that reads it.
package clock

// Sim is a manually stepped clock measured in seconds since start.
type Sim struct {
	now    float64
	delta  float64
	paused bool
	ticks  uint64
}

func NewSim() *Sim {
	return &Sim{}
}

// Now returns elapsed simulated seconds.
func (c *Sim) Now() float64 {
	if c == nil {
		return 0
	}
	return c.now
}

// Delta returns the step applied by the last Advance call, or zero while paused.
func (c *Sim) Delta() float64 {
	if c == nil {
		return 0
	}
	return c.delta
}

// Ticks counts the Advance calls that moved the clock.
func (c *Sim) Ticks() uint64 {
	if c == nil {
		return 0
	}
	return c.ticks
}

// Advance moves the clock forward by dt and returns the delta actually
// applied. Negative steps are ignored.
func (c *Sim) Advance(dt float64) float64 {
	if c == nil {
		return 0
	}
	if c.paused || dt <= 0 {
		c.delta = 0
		return 0
	}
	c.now += dt
	c.delta = dt
	c.ticks++
	return dt
}

func (c *Sim) SetPaused(paused bool) {
	if c == nil {
		return
	}
	c.paused = paused
	if paused {
		c.delta = 0
	}
}

func (c *Sim) Paused() bool {
	return c != nil && c.paused
}

// Set jumps the clock to an absolute time. Intended for tests and replays.
func (c *Sim) Set(now float64) {
	if c == nil {
		return
	}
	c.now = now
	c.delta = 0
}
