package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/achilleasa/rtow/frame"
	"github.com/achilleasa/rtow/renderer"
	"github.com/achilleasa/rtow/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// A scene name that writes a test pattern instead of tracing rays.
const gradientScene = "gradient"

// Exit status for frame buffer allocation failures.
const exitAllocFailed = 2

// Flags for the render command. Flags that are not set keep the value from
// the selected preset.
var RenderFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "spp",
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "bounces",
		Usage: "max number of bounces per path",
	},
	cli.Float64Flag{
		Name:  "gamma",
		Usage: "gamma for the tone curve",
	},
	cli.Int64Flag{
		Name:  "seed",
		Usage: "random seed",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "number of tracers (0 = one per cpu)",
	},
	cli.StringFlag{
		Name:  "scheduler",
		Usage: "block scheduler (bands, tiles)",
	},
	cli.IntFlag{
		Name:  "block-size",
		Usage: "block size in pixels",
	},
	cli.BoolFlag{
		Name:  "stratify",
		Usage: "use stratified pixel sampling",
	},
	cli.BoolFlag{
		Name:  "normals",
		Usage: "shade surfaces by their normals",
	},
	cli.StringFlag{
		Name:  "scene",
		Usage: fmt.Sprintf("built-in scene to render or %q for a test pattern", gradientScene),
	},
	cli.StringFlag{
		Name:  "out, o",
		Value: "frame.ppm",
		Usage: "image filename for the rendered frame (.ppm or .png)",
	},
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	preset, err := renderer.LookupPreset(ctx.Args().First())
	if err != nil {
		return exitError(err)
	}
	opts := preset.Options
	applyFlagOverrides(ctx, &opts)

	sceneName := preset.Scene
	if ctx.IsSet("scene") {
		sceneName = ctx.String("scene")
	}
	imgFile := ctx.String("out")

	if sceneName == gradientScene {
		return renderGradient(opts, imgFile)
	}

	sc, err := scene.Builtin(sceneName, opts.FrameW, opts.FrameH)
	if err != nil {
		return exitError(err)
	}
	logger.Infof("scene information:\n%s", sc.Stats())

	r, err := renderer.NewDefault(sc, opts)
	if err != nil {
		return exitError(err)
	}
	defer r.Close()

	logger.Noticef(
		"rendering scene %q with preset %q (%dx%d, %d spp, %d bounces, gamma %.1f, %d workers)",
		sceneName, preset.Name, opts.FrameW, opts.FrameH, opts.SamplesPerPixel, opts.NumBounces, opts.Gamma, opts.Workers(),
	)

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err = r.Render(renderCtx); err != nil {
		return exitError(err)
	}

	stats := r.Stats()
	displayFrameStats(stats)
	if stats.NaNSamples != 0 {
		logger.Warningf("%d of %d samples were NaN", stats.NaNSamples, stats.Samples)
	}

	logger.Noticef("writing image to %s", imgFile)
	if err = frame.WriteFile(imgFile, r.Frame()); err != nil {
		return exitError(err)
	}
	return nil
}

// Write the gradient test pattern without tracing any rays.
func renderGradient(opts renderer.Options, imgFile string) error {
	fb, err := frame.NewBuffer(opts.FrameW, opts.FrameH)
	if err != nil {
		return exitError(err)
	}
	fb.FillGradient()

	logger.Noticef("writing %dx%d test pattern to %s", opts.FrameW, opts.FrameH, imgFile)
	if err = frame.WriteFile(imgFile, fb); err != nil {
		return exitError(err)
	}
	return nil
}

func applyFlagOverrides(ctx *cli.Context, opts *renderer.Options) {
	if ctx.IsSet("width") {
		opts.FrameW = uint32(ctx.Int("width"))
	}
	if ctx.IsSet("height") {
		opts.FrameH = uint32(ctx.Int("height"))
	}
	if ctx.IsSet("spp") {
		opts.SamplesPerPixel = uint32(ctx.Int("spp"))
	}
	if ctx.IsSet("bounces") {
		opts.NumBounces = uint32(ctx.Int("bounces"))
	}
	if ctx.IsSet("gamma") {
		opts.Gamma = ctx.Float64("gamma")
	}
	if ctx.IsSet("seed") {
		opts.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("workers") {
		opts.NumWorkers = uint32(ctx.Int("workers"))
	}
	if ctx.IsSet("scheduler") {
		opts.Scheduler = ctx.String("scheduler")
	}
	if ctx.IsSet("block-size") {
		opts.BlockSize = uint32(ctx.Int("block-size"))
	}
	if ctx.IsSet("stratify") {
		opts.Stratify = ctx.Bool("stratify")
	}
	if ctx.IsSet("normals") {
		opts.ShadeNormals = ctx.Bool("normals")
	}
}

// Map an error to a cli exit error. Frame buffer allocation failures use a
// dedicated exit status.
func exitError(err error) error {
	if errors.Is(err, frame.ErrAllocFailed) {
		return cli.NewExitError(err.Error(), exitAllocFailed)
	}
	return cli.NewExitError(err.Error(), 1)
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Blocks", "Pixels", "% of frame", "Samples", "NaN samples", "Render time"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.Blocks),
			fmt.Sprintf("%d", stat.Pixels),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%d", stat.Samples),
			fmt.Sprintf("%d", stat.NaNSamples),
			fmt.Sprintf("%s", stat.RenderTime),
		})
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d", stats.Blocks),
		"",
		"",
		fmt.Sprintf("%d", stats.Samples),
		fmt.Sprintf("%d", stats.NaNSamples),
		fmt.Sprintf("%s", stats.RenderTime),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
