package renderer

import "fmt"

// The preset used when none is requested.
const DefaultPresetName = "default"

// A named set of render options together with the scene they are meant for.
type Preset struct {
	Name        string
	Description string
	Scene       string
	Options     Options
}

var presets = []Preset{
	{
		Name:        "preview",
		Description: "quick low resolution preview",
		Scene:       "metals",
		Options:     Options{FrameW: 240, FrameH: 180, SamplesPerPixel: 8, NumBounces: 8, Gamma: 2, Seed: 1, Scheduler: "bands", BlockSize: 8},
	},
	{
		Name:        "default",
		Description: "balanced quality and speed",
		Scene:       "metals",
		Options:     Options{FrameW: 480, FrameH: 360, SamplesPerPixel: 64, NumBounces: 50, Gamma: 2, Seed: 1, Scheduler: "bands", BlockSize: 16},
	},
	{
		Name:        "final",
		Description: "high resolution with stratified sampling",
		Scene:       "metals",
		Options:     Options{FrameW: 960, FrameH: 720, SamplesPerPixel: 256, NumBounces: 100, Gamma: 2, Seed: 1, Scheduler: "tiles", BlockSize: 32, Stratify: true},
	},
	{
		Name:        "part6",
		Description: "normal-shaded spheres",
		Scene:       "normals",
		Options:     Options{FrameW: 480, FrameH: 360, SamplesPerPixel: 1, NumBounces: 1, Gamma: 2, Seed: 1, Scheduler: "bands", BlockSize: 16, ShadeNormals: true},
	},
	{
		Name:        "part8",
		Description: "gray diffuse spheres with a square root tone curve",
		Scene:       "diffuse",
		Options:     Options{FrameW: 480, FrameH: 360, SamplesPerPixel: 64, NumBounces: 16, Gamma: 2, Seed: 1, Scheduler: "bands", BlockSize: 16},
	},
	{
		Name:        "part9",
		Description: "diffuse and metal spheres with a 2.5 gamma tone curve",
		Scene:       "metals",
		Options:     Options{FrameW: 480, FrameH: 360, SamplesPerPixel: 64, NumBounces: 100, Gamma: 2.5, Seed: 1, Scheduler: "bands", BlockSize: 16},
	},
}

// Get all presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Lookup a preset by name. An empty name selects the default preset.
func LookupPreset(name string) (Preset, error) {
	if name == "" {
		name = DefaultPresetName
	}
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w %q", ErrUnknownPreset, name)
}
