package cmd

import (
	"github.com/urfave/cli"

	"github.com/spaghettifunk/skyhook/engine/core"
)

// setupLogging applies the config level, then the -v and -vv flags.
func setupLogging(ctx *cli.Context, cfg *core.Config) error {
	if err := core.SetLogLevel(cfg.Log.Level); err != nil {
		return err
	}

	if ctx.GlobalBool("v") {
		_ = core.SetLogLevel("info")
	}

	if ctx.GlobalBool("vv") {
		_ = core.SetLogLevel("debug")
	}
	return nil
}
