package engine

import (
	"github.com/spaghettifunk/skyhook/engine/assets"
	"github.com/spaghettifunk/skyhook/engine/systems"
)

// Game is the application side of the engine. The engine sets Assets and
// SystemManager before FnInitialize runs on the render goroutine.
type Game struct {
	ApplicationConfig *ApplicationConfig
	Assets            *assets.AssetManager
	SystemManager     *systems.SystemManager
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

// Initialize assembles the scene into world.
type Initialize func(world *World) error
type Update func(deltaTime float64) error
type OnResize func(width int, height int) error
type Shutdown func() error
