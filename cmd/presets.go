package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/rtow/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the available render presets.
func ListPresets(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	logger.Noticef("available presets\n%s", presetTable(renderer.Presets()))
	return nil
}

func presetTable(presets []renderer.Preset) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Preset", "Scene", "Frame", "SPP", "Bounces", "Gamma", "Scheduler", "Stratify", "Description"})
	for _, p := range presets {
		name := p.Name
		if name == renderer.DefaultPresetName {
			name += " (default)"
		}
		opts := p.Options
		table.Append([]string{
			name,
			p.Scene,
			fmt.Sprintf("%dx%d", opts.FrameW, opts.FrameH),
			fmt.Sprintf("%d", opts.SamplesPerPixel),
			fmt.Sprintf("%d", opts.NumBounces),
			fmt.Sprintf("%.1f", opts.Gamma),
			fmt.Sprintf("%s/%d", opts.Scheduler, opts.BlockSize),
			fmt.Sprintf("%t", opts.Stratify),
			p.Description,
		})
	}
	table.Render()
	return buf.String()
}
