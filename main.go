package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/rtow/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "rtow"
	app.Usage = "render analytic sphere scenes using path tracing"
	app.Version = "0.1.0"
	app.Flags = cmd.GlobalFlags
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a still frame",
			Description: `
Render a built-in scene using one of the render presets. Flags override
individual preset settings. Use "--scene gradient" to write a test pattern
without tracing any rays.

The output format is selected by the file extension of the --out flag.`,
			ArgsUsage: "[preset]",
			Flags:     cmd.RenderFlags,
			Action:    cmd.RenderFrame,
		},
		{
			Name:   "presets",
			Usage:  "list render presets",
			Action: cmd.ListPresets,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:      "scene-info",
			Usage:     "print statistics for a built-in scene",
			ArgsUsage: "scene",
			Flags:     cmd.SceneInfoFlags,
			Action:    cmd.ShowSceneInfo,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
