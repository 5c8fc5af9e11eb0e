package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsFPS(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 4; i++ {
		m.Update(0.25, 3)
	}
	assert.Zero(t, m.FPS())

	m.Update(0.25, 7)
	fps, ms := m.Frame()
	assert.Equal(t, float64(4), fps)
	assert.Equal(t, float64(250), ms)
	assert.Equal(t, 7, m.DrawCalls())
	assert.Equal(t, uint64(5), m.TotalFrames())
}

func TestMetricsRollingAverage(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < AVG_COUNT; i++ {
		m.Update(0.010, 0)
	}
	assert.InDelta(t, 10.0, m.FrameTime(), 1e-9)

	// the window only keeps the latest frames
	for i := 0; i < AVG_COUNT; i++ {
		m.Update(0.020, 0)
	}
	assert.InDelta(t, 20.0, m.FrameTime(), 1e-9)
}

func TestClock(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewClockWithSource(func() time.Time { return now })

	c.Update()
	assert.Zero(t, c.Elapsed())

	c.Start()
	now = now.Add(1500 * time.Millisecond)
	c.Update()
	assert.Equal(t, 1.5, c.Elapsed())

	c.Stop()
	now = now.Add(time.Second)
	c.Update()
	assert.Equal(t, 1.5, c.Elapsed())
}
