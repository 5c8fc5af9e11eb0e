package engine

import (
	"context"
	"sync"
	"time"

	"github.com/spaghettifunk/skyhook/engine/animation"
	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/renderer"
	"github.com/spaghettifunk/skyhook/engine/renderer/components"
	"github.com/spaghettifunk/skyhook/engine/scene"
)

const metricsLogInterval = 5.0

// suspendedFrameWait paces the loop while the window is minimized, since
// vsync does not block without a visible surface.
const suspendedFrameWait = 50 * time.Millisecond

// World is everything the frame loop animates and draws. It is filled by
// the game and only touched on the render goroutine.
type World struct {
	Graph      *scene.Graph
	Camera     *components.Camera
	Controller *components.CameraController
	Driver     animation.Driver
	ClearColor math.Vec4
}

// Presenter shows the finished frame.
type Presenter interface {
	SwapBuffers()
}

type shaderReloader interface {
	ReloadPending() bool
}

// framebufferSize carries resizes from the event thread to the frame loop.
type framebufferSize struct {
	mu            sync.Mutex
	width, height int
	pending       bool
}

func (s *framebufferSize) set(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height, s.pending = width, height, true
}

func (s *framebufferSize) take() (int, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending {
		return 0, 0, false
	}
	s.pending = false
	return s.width, s.height, true
}

type FrameLoopConfig struct {
	World     *World
	Renderer  *renderer.Renderer
	Input     *core.InputBridge
	Presenter Presenter
	// Optional.
	Tuning   *core.TuningHolder
	Shaders  shaderReloader
	Clock    *core.Clock
	Update   Update
	OnResize OnResize
}

// FrameLoop runs one frame per iteration: input, camera, animation,
// propagation, draw, present.
type FrameLoop struct {
	FrameLoopConfig

	metrics   *core.Metrics
	resize    *framebufferSize
	suspended bool
	lastTime  float64
	nextLog   float64
}

func NewFrameLoop(cfg FrameLoopConfig) *FrameLoop {
	if cfg.Clock == nil {
		cfg.Clock = core.NewClock()
	}
	return &FrameLoop{
		FrameLoopConfig: cfg,
		metrics:         core.NewMetrics(),
		resize:          &framebufferSize{},
		nextLog:         metricsLogInterval,
	}
}

// Resize may be called from any goroutine. It is applied at the start of
// the next frame.
func (l *FrameLoop) Resize(width, height int) {
	l.resize.set(width, height)
}

func (l *FrameLoop) Metrics() *core.Metrics {
	return l.metrics
}

// Run loops until ctx is cancelled or a frame fails.
func (l *FrameLoop) Run(ctx context.Context) error {
	l.Clock.Start()
	l.lastTime = 0
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		l.Clock.Update()
		now := l.Clock.Elapsed()
		delta := now - l.lastTime
		l.lastTime = now

		if err := l.Frame(now, delta); err != nil {
			return err
		}
		if l.suspended {
			time.Sleep(suspendedFrameWait)
		}
	}
}

// Frame renders one frame. elapsed is the time since the loop started and
// delta the time since the previous frame, both in seconds.
func (l *FrameLoop) Frame(elapsed, delta float64) error {
	l.applyResize()
	if l.suspended {
		return nil
	}

	if l.Shaders != nil {
		l.Shaders.ReloadPending()
	}

	w := l.World
	// Drained every frame so the pointer delta never piles up.
	var snapshot core.InputSnapshot
	if l.Input != nil {
		snapshot = l.Input.Drain()
	}
	if w.Controller != nil {
		if l.Tuning != nil {
			w.Controller.Tuning = l.Tuning.Load()
		}
		w.Controller.Apply(snapshot, float32(delta))
	}

	if l.Update != nil {
		if err := l.Update(delta); err != nil {
			return err
		}
	}

	if w.Driver != nil {
		w.Driver.Animate(w.Graph, elapsed)
	}
	w.Graph.Propagate(w.Graph.Root(), math.NewMat4Identity())

	draws, err := l.Renderer.DrawFrame(w.Graph, w.Camera.ViewProjection(), w.ClearColor)
	if err != nil {
		return err
	}
	l.Presenter.SwapBuffers()

	l.metrics.Update(delta, draws)
	if elapsed >= l.nextLog {
		l.nextLog = elapsed + metricsLogInterval
		fps, ms := l.metrics.Frame()
		core.LogDebug("fps %.0f, frame %.2f ms, %d draws", fps, ms, draws)
	}
	return nil
}

func (l *FrameLoop) applyResize() {
	width, height, ok := l.resize.take()
	if !ok {
		return
	}
	// Handle minimization
	if width == 0 || height == 0 {
		if !l.suspended {
			core.LogInfo("Window minimized, suspending rendering.")
		}
		l.suspended = true
		return
	}
	if l.suspended {
		core.LogInfo("Window restored, resuming rendering.")
		l.suspended = false
	}

	core.LogDebug("Window resize: %d, %d", width, height)
	l.Renderer.OnResize(width, height)
	if l.World.Camera != nil {
		l.World.Camera.SetViewport(width, height)
	}
	if l.OnResize != nil {
		if err := l.OnResize(width, height); err != nil {
			core.LogError("resize handler: %s", err)
		}
	}
}
