package engine

import (
	"github.com/spaghettifunk/skyhook/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX int
	// Window starting position y axis, if applicable.
	StartPosY int
	// Window starting width, if applicable.
	StartWidth int
	// Window starting height, if applicable.
	StartHeight int
	// The application name used in windowing, if applicable.
	Name string
	// The loaded configuration, used for assets and camera tuning.
	Config *core.Config
	// The file Config was read from. When set and assets.watch is on, the
	// camera tuning is reloaded whenever the file changes.
	ConfigPath string
}

func NewApplicationConfig(cfg *core.Config, path string) *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   cfg.Window.X,
		StartPosY:   cfg.Window.Y,
		StartWidth:  cfg.Window.Width,
		StartHeight: cfg.Window.Height,
		Name:        cfg.Window.Title,
		Config:      cfg,
		ConfigPath:  path,
	}
}
