package cmd

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"

	"github.com/spaghettifunk/skyhook/engine/core"
)

func newRunContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("run", flag.ContinueOnError)
	set.Int("width", 0, "")
	set.Int("height", 0, "")
	set.Int("helicopters", -1, "")
	set.String("assets", "", "")
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestApplyOverrides(t *testing.T) {
	cfg := core.DefaultConfig()
	applyOverrides(newRunContext(t, "-width", "1920", "-helicopters", "0", "-assets", "/tmp/assets"), cfg)

	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, core.DefaultConfig().Window.Height, cfg.Window.Height)
	assert.Equal(t, 0, cfg.Scene.Helicopters)
	assert.Equal(t, "/tmp/assets", cfg.Assets.BasePath)
}

func TestApplyOverridesKeepsConfigWhenUnset(t *testing.T) {
	cfg := core.DefaultConfig()
	applyOverrides(newRunContext(t), cfg)

	assert.Equal(t, core.DefaultConfig(), cfg)
}
