package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/spaghettifunk/skyhook/engine"
	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/renderer/opengl"
	"github.com/spaghettifunk/skyhook/testbed"
)

// Run opens the window and renders until it is closed. It must be called
// from the main goroutine.
func Run(ctx *cli.Context) error {
	path := ctx.GlobalString("config")
	cfg, err := core.LoadConfig(path)
	if err != nil {
		return err
	}
	if err := setupLogging(ctx, cfg); err != nil {
		return err
	}
	applyOverrides(ctx, cfg)

	game, err := testbed.NewTestGame(cfg, path)
	if err != nil {
		return err
	}

	e, err := engine.New(game.Game, opengl.New())
	if err != nil {
		return err
	}
	defer func() {
		if err := e.Shutdown(); err != nil {
			core.LogError("%s", err)
		}
	}()

	if err := e.Initialize(); err != nil {
		return err
	}

	// signal to capture system calls
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	return e.Run(sigCtx)
}

func applyOverrides(ctx *cli.Context, cfg *core.Config) {
	if w := ctx.Int("width"); w > 0 {
		cfg.Window.Width = w
	}
	if h := ctx.Int("height"); h > 0 {
		cfg.Window.Height = h
	}
	if n := ctx.Int("helicopters"); n >= 0 && ctx.IsSet("helicopters") {
		cfg.Scene.Helicopters = n
	}
	if dir := ctx.String("assets"); dir != "" {
		cfg.Assets.BasePath = dir
	}
}
