package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimAdvance(t *testing.T) {
	c := NewSim()
	assert.Equal(t, 0.0, c.Now())

	assert.Equal(t, 0.5, c.Advance(0.5))
	assert.Equal(t, 0.25, c.Advance(0.25))
	assert.InDelta(t, 0.75, c.Now(), 1e-12)
	assert.Equal(t, 0.25, c.Delta())
	assert.Equal(t, uint64(2), c.Ticks())

	assert.Equal(t, 0.0, c.Advance(-1))
	assert.InDelta(t, 0.75, c.Now(), 1e-12)
}

func TestSimPauseStopsTime(t *testing.T) {
	c := NewSim()
	c.Advance(1)
	c.SetPaused(true)
	assert.True(t, c.Paused())
	assert.Equal(t, 0.0, c.Advance(1))
	assert.Equal(t, 1.0, c.Now())
	assert.Equal(t, 0.0, c.Delta())

	c.SetPaused(false)
	c.Advance(1)
	assert.Equal(t, 2.0, c.Now())
}

func TestNilSimIsZero(t *testing.T) {
	var c *Sim
	assert.Equal(t, 0.0, c.Now())
	assert.Equal(t, 0.0, c.Advance(1))
	assert.False(t, c.Paused())
}
