package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/rtow/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Flags for the scene-info command.
var SceneInfoFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "width",
		Value: 480,
		Usage: "frame width used to setup the scene camera",
	},
	cli.IntFlag{
		Name:  "height",
		Value: 360,
		Usage: "frame height used to setup the scene camera",
	},
}

// List the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scene", "Materials", "Spheres"})
	for _, name := range scene.BuiltinNames() {
		sc, err := scene.Builtin(name, 1, 1)
		if err != nil {
			return exitError(err)
		}
		if name == scene.DefaultSceneName {
			name += " (default)"
		}
		table.Append([]string{
			name,
			fmt.Sprintf("%d", len(sc.Materials)),
			fmt.Sprintf("%d", sc.SphereCount()),
		})
	}
	table.Render()

	logger.Noticef("built-in scenes\n%s", buf.String())
	return nil
}

// Display built-in scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return cli.NewExitError("missing scene name argument", 1)
	}

	sc, err := scene.Builtin(ctx.Args().First(), uint32(ctx.Int("width")), uint32(ctx.Int("height")))
	if err != nil {
		return exitError(err)
	}

	logger.Noticef("scene information:\n%s", sc.Stats())
	return nil
}
