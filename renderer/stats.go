package renderer

import "time"

type TracerStat struct {
	// The tracer id.
	Id string

	// The number of traced blocks, the pixels they cover and the
	// percentage of the frame area they represent.
	Blocks       uint32
	Pixels       uint64
	FramePercent float32

	// Traced samples and the number of samples that produced a NaN.
	Samples    uint64
	NaNSamples uint64

	// Time spent tracing blocks.
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual tracer stats.
	Tracers []TracerStat

	// Totals over all tracers.
	Blocks     uint32
	Samples    uint64
	NaNSamples uint64

	// Total render time for entire frame.
	RenderTime time.Duration
}
