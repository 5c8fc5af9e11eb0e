package testbed

import (
	"fmt"

	"github.com/spaghettifunk/skyhook/engine"
	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/renderer/components"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
	"github.com/spaghettifunk/skyhook/engine/scene"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	WorldCamera *components.Camera

	width  int
	height int
}

func NewTestGame(cfg *core.Config, configPath string) (*TestGame, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: engine.NewApplicationConfig(cfg, configPath),
			State: &gameState{
				width:  cfg.Window.Width,
				height: cfg.Window.Height,
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

// Initialize loads the models and the shader and builds the scene. It runs
// on the render goroutine with the GL context current.
func (g *TestGame) Initialize(world *engine.World) error {
	core.LogInfo("initializing testbed...")
	cfg := g.ApplicationConfig.Config
	state := g.State.(*gameState)

	if err := g.SystemManager.Shaders().Load("simple", cfg.Shaders.Vertex, cfg.Shaders.Fragment); err != nil {
		return err
	}

	terrain, err := g.loadModel(cfg.Scene.Terrain)
	if err != nil {
		return err
	}
	helicopter, err := g.loadModel(cfg.Scene.Helicopter)
	if err != nil {
		return err
	}

	graph := scene.New("skyhook")
	driver, err := AssembleScene(graph, g.SystemManager.Geometry(), terrain, helicopter, FleetConfig{
		Count:          cfg.Scene.Helicopters,
		TimeOffset:     cfg.Scene.TimeOffset,
		Altitude:       cfg.Scene.Altitude,
		MainRotorSpeed: cfg.Scene.MainRotorSpeed,
		TailRotorSpeed: cfg.Scene.TailRotorSpeed,
	})
	if err != nil {
		return err
	}

	camera := NewWorldCamera(cfg, state.width, state.height)
	state.WorldCamera = camera

	world.Graph = graph
	world.Camera = camera
	world.Controller = components.NewCameraController(camera, cfg.Tuning())
	world.Driver = driver
	return nil
}

func NewWorldCamera(cfg *core.Config, width, height int) *components.Camera {
	aspect := float32(width) / float32(height)
	camera := components.NewCamera(math.DegToRad(cfg.Camera.FOVDegrees), aspect, cfg.Camera.Near, cfg.Camera.Far)
	p := cfg.Camera.Position
	camera.SetPosition(math.NewVec3(p[0], p[1], p[2]))
	return camera
}

func (g *TestGame) loadModel(name string) (*metadata.Model, error) {
	res, err := g.Assets.LoadAsset(name, nil)
	if err != nil {
		return nil, err
	}
	model, ok := res.Data.(*metadata.Model)
	if !ok {
		return nil, fmt.Errorf("%s is not a model", name)
	}
	return model, nil
}

func (g *TestGame) OnResize(width int, height int) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	if state.WorldCamera != nil {
		pos := state.WorldCamera.GetPosition()
		rot := state.WorldCamera.GetEulerRotation()
		core.LogDebug("camera pos: [%.3f, %.3f, %.3f] rot: [%.3f, %.3f, %.3f]",
			pos.X, pos.Y, pos.Z, math.RadToDeg(rot.X), math.RadToDeg(rot.Y), math.RadToDeg(rot.Z))
	}
	return nil
}
