/*
Skyhook renders a lunar terrain with a fleet of animated helicopters
through a hierarchical scene graph.
*/
package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/spaghettifunk/skyhook/cmd"
	"github.com/spaghettifunk/skyhook/engine/core"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "skyhook"
	app.Usage = "render an animated scene graph with OpenGL"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "skyhook.toml",
			Usage: "configuration file, defaults are used when it does not exist",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "open the window and render the scene",
			Description: `
Load the terrain and helicopter models from the asset directory, assemble the
scene graph and render it until the window is closed or Escape is pressed.

WASD, Space and Left Shift move the camera, the arrow keys and the mouse turn it.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Usage: "window width, overrides the config file",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "window height, overrides the config file",
				},
				cli.IntFlag{
					Name:  "helicopters",
					Value: -1,
					Usage: "number of helicopters, overrides the config file",
				},
				cli.StringFlag{
					Name:  "assets",
					Usage: "asset directory, overrides the config file",
				},
			},
			Action: cmd.Run,
		},
		{
			Name:   "devices",
			Usage:  "list the Vulkan capable devices",
			Action: cmd.ListDevices,
		},
	}
	app.Action = cmd.Run

	if err := app.Run(os.Args); err != nil {
		core.LogFatal("%s", err)
	}
}
