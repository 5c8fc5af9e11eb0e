package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/renderer/vulkan"
)

// ListDevices prints the physical devices the Vulkan loader reports.
func ListDevices(ctx *cli.Context) error {
	cfg, err := core.LoadConfig(ctx.GlobalString("config"))
	if err != nil {
		return err
	}
	if err := setupLogging(ctx, cfg); err != nil {
		return err
	}

	devices, err := vulkan.ListDevices(cfg.Window.Title)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Println("no Vulkan devices found")
		return nil
	}

	fmt.Printf("\nSystem provides %d Vulkan device(s):\n\n", len(devices))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Name", "Type", "Vulkan", "Driver"})
	for i, d := range devices {
		table.Append([]string{
			fmt.Sprintf("%d", i),
			d.Name,
			d.Type,
			d.APIVersion,
			d.DriverVersion,
		})
	}
	table.Render()
	return nil
}
