package renderer

import (
	"fmt"
	"math"
	"runtime"

	"github.com/achilleasa/rtow/tracer"
)

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of samples.
	SamplesPerPixel uint32

	// Max number of bounces per path.
	NumBounces uint32

	// Gamma for the tone curve.
	Gamma float64

	// Seed for the per-block random number generators.
	Seed int64

	// Number of CPU tracers. Zero uses one tracer per CPU.
	NumWorkers uint32

	// Block scheduler name ("bands" or "tiles") and block size in pixels.
	Scheduler string
	BlockSize uint32

	// Use stratified pixel sampling.
	Stratify bool

	// Shade surfaces by their normals instead of tracing paths.
	ShadeNormals bool

	// Intersection window. Zero values select the tracer defaults.
	TMin float64
	TMax float64
}

// Check the options for values that cannot be rendered.
func (o Options) Validate() error {
	if o.FrameW == 0 || o.FrameH == 0 {
		return fmt.Errorf("%w: frame dimensions must be non-zero; got %dx%d", ErrInvalidOptions, o.FrameW, o.FrameH)
	}
	if o.SamplesPerPixel == 0 {
		return fmt.Errorf("%w: at least one sample per pixel is required", ErrInvalidOptions)
	}
	if o.NumBounces == 0 {
		return fmt.Errorf("%w: at least one bounce is required", ErrInvalidOptions)
	}
	if !(o.Gamma > 0) || math.IsInf(o.Gamma, 1) {
		return fmt.Errorf("%w: gamma must be positive and finite; got %v", ErrInvalidOptions, o.Gamma)
	}
	if _, err := tracer.NewScheduler(o.Scheduler, o.BlockSize); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if o.TMin < 0 || math.IsNaN(o.TMin) || math.IsNaN(o.TMax) {
		return fmt.Errorf("%w: invalid intersection window [%v, %v]", ErrInvalidOptions, o.TMin, o.TMax)
	}
	if o.TMax != 0 && o.TMax <= o.tMin() {
		return fmt.Errorf("%w: intersection window [%v, %v] is empty", ErrInvalidOptions, o.tMin(), o.TMax)
	}
	return nil
}

// Get the number of tracers to run.
func (o Options) Workers() int {
	if o.NumWorkers == 0 {
		return runtime.NumCPU()
	}
	return int(o.NumWorkers)
}

func (o Options) tMin() float64 {
	if o.TMin == 0 {
		return tracer.DefaultTMin
	}
	return o.TMin
}

func (o Options) tracerSettings() tracer.Settings {
	return tracer.Settings{
		MaxBounces:   o.NumBounces,
		TMin:         o.TMin,
		TMax:         o.TMax,
		Gamma:        o.Gamma,
		Stratify:     o.Stratify,
		ShadeNormals: o.ShadeNormals,
	}
}
