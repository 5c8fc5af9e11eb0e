package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/spaghettifunk/skyhook/engine/assets"
	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/platform"
	"github.com/spaghettifunk/skyhook/engine/renderer"
	"github.com/spaghettifunk/skyhook/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageBooting:
		return "booting"
	case EngineStageBootComplete:
		return "boot complete"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	default:
		return "uninitialized"
	}
}

// Engine runs the window on the calling goroutine, which must be the main
// one, and renders on a dedicated goroutine with its own OS thread.
type Engine struct {
	stageMu      sync.Mutex
	currentStage Stage

	gameInstance *Game
	platform     *platform.Platform
	renderer     *renderer.Renderer
	assetManager *assets.AssetManager
	events       *core.EventBus
	input        *core.InputBridge
	tuning       *core.TuningHolder
	watcher      *core.ConfigWatcher
	resize       *framebufferSize

	cancel context.CancelFunc
}

func New(g *Game, backend renderer.RendererBackend) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil || g.ApplicationConfig.Config == nil {
		return nil, fmt.Errorf("%w: game has no application config", core.ErrInvalidConfig)
	}
	if g.FnInitialize == nil {
		return nil, fmt.Errorf("game has no initialize function")
	}

	events := core.NewEventBus()
	input := core.NewInputBridge(events)

	p, err := platform.New(input, events)
	if err != nil {
		return nil, err
	}

	cfg := g.ApplicationConfig.Config
	am, err := assets.NewAssetManager(cfg.Assets.BasePath, events)
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	g.Assets = am

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		platform:     p,
		renderer:     renderer.New(backend),
		assetManager: am,
		events:       events,
		input:        input,
		tuning:       core.NewTuningHolder(cfg.Tuning()),
		resize:       &framebufferSize{},
	}, nil
}

func (e *Engine) Stage() Stage {
	e.stageMu.Lock()
	defer e.stageMu.Unlock()
	return e.currentStage
}

func (e *Engine) setStage(s Stage) {
	e.stageMu.Lock()
	e.currentStage = s
	e.stageMu.Unlock()
	core.LogDebug("engine stage: %s", s)
}

func (e *Engine) Events() *core.EventBus {
	return e.events
}

// Initialize opens the window and starts the file watchers. It must run on
// the main goroutine.
func (e *Engine) Initialize() error {
	e.setStage(EngineStageBooting)

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_KEY_RELEASED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	app := e.gameInstance.ApplicationConfig
	if err := e.platform.Startup(app.Name, app.StartPosX, app.StartPosY, app.StartWidth, app.StartHeight); err != nil {
		return err
	}
	e.setStage(EngineStageBootComplete)

	e.setStage(EngineStageInitializing)
	cfg := app.Config
	if cfg.Assets.Watch && cfg.Shaders.HotReload {
		if err := e.assetManager.Watch(); err != nil {
			core.LogWarn("asset hot reload disabled: %s", err)
		}
	}
	if cfg.Assets.Watch && app.ConfigPath != "" {
		w, err := core.NewConfigWatcher(app.ConfigPath, e.tuning)
		if err != nil {
			core.LogWarn("config hot reload disabled: %s", err)
		} else {
			w.Start()
			e.watcher = w
		}
	}

	width, height := e.platform.FramebufferSize()
	e.resize.set(width, height)
	e.setStage(EngineStageInitialized)
	return nil
}

// Run blocks pumping window events until the window closes, ctx is
// cancelled or rendering stops. It returns the render goroutine's error.
func (e *Engine) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	e.cancel = cancel

	done := make(chan error, 1)
	result := make(chan error, 1)

	go e.render(ctx, done)

	go func() {
		result <- supervise(done, e.platform)
	}()

	woken := make(chan struct{})
	go func() {
		defer close(woken)
		<-ctx.Done()
		e.platform.RequestClose()
	}()

	e.setStage(EngineStageRunning)
	for !e.platform.ShouldClose() {
		e.platform.PumpMessages()
	}

	e.setStage(EngineStageShuttingDown)
	cancel()
	<-woken
	return <-result
}

func (e *Engine) render(ctx context.Context, done chan<- error) {
	// The GL context stays on this thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	done <- runRender(func() error {
		return e.renderLoop(ctx)
	})
}

func (e *Engine) renderLoop(ctx context.Context) error {
	e.platform.MakeContextCurrent()
	defer e.platform.DetachContext()

	app := e.gameInstance.ApplicationConfig
	width, height, _ := e.resize.take()
	if err := e.renderer.Initialize(app.Name, width, height); err != nil {
		return err
	}
	defer func() {
		if err := e.renderer.Shutdown(); err != nil {
			core.LogError("%s", err)
		}
	}()

	sm, err := systems.NewSystemManager(e.renderer, e.assetManager, e.events)
	if err != nil {
		return err
	}
	e.gameInstance.SystemManager = sm
	defer func() {
		if err := sm.Shutdown(); err != nil {
			core.LogError("%s", err)
		}
	}()

	c := app.Config.Scene.ClearColor
	world := &World{ClearColor: math.NewVec4(c[0], c[1], c[2], c[3])}
	if err := e.gameInstance.FnInitialize(world); err != nil {
		return fmt.Errorf("%w: %w", core.ErrSceneAssembly, err)
	}
	if world.Graph == nil || world.Camera == nil {
		return fmt.Errorf("%w: game did not provide a graph and a camera", core.ErrSceneAssembly)
	}
	world.Camera.SetViewport(width, height)
	if e.gameInstance.FnShutdown != nil {
		defer func() {
			if err := e.gameInstance.FnShutdown(); err != nil {
				core.LogError("%s", err)
			}
		}()
	}

	loop := NewFrameLoop(FrameLoopConfig{
		World:     world,
		Renderer:  e.renderer,
		Input:     e.input,
		Presenter: e.platform,
		Tuning:    e.tuning,
		Shaders:   sm.Shaders(),
		Update:    e.gameInstance.FnUpdate,
		OnResize:  e.gameInstance.FnOnResize,
	})
	loop.resize = e.resize

	core.LogInfo("scene %s ready with %d nodes", world.Graph.Name(), world.Graph.Len())
	return loop.Run(ctx)
}

func (e *Engine) Shutdown() error {
	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			core.LogError("%s", err)
		}
	}
	if err := e.assetManager.Close(); err != nil {
		return err
	}
	e.events.Unregister(core.EVENT_CODE_APPLICATION_QUIT, e)
	e.events.Unregister(core.EVENT_CODE_KEY_PRESSED, e)
	e.events.Unregister(core.EVENT_CODE_KEY_RELEASED, e)
	e.events.Unregister(core.EVENT_CODE_RESIZED, e)
	return e.platform.Shutdown()
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		if e.cancel != nil {
			e.cancel()
		}
		e.platform.RequestClose()
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	if context.Type == core.EVENT_CODE_KEY_PRESSED && ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.events.Fire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	re, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	e.resize.set(re.Width, re.Height)
	return false
}
