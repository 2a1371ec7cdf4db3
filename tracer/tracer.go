package tracer

import (
	"errors"
	"time"

	"github.com/achilleasa/rtow/frame"
	"github.com/achilleasa/rtow/scene"
)

var (
	ErrNotSetup  = errors.New("tracer: tracer has not been setup")
	ErrBadBlock  = errors.New("tracer: block does not fit in the frame buffer")
	ErrNoSamples = errors.New("tracer: block requests at least one sample per pixel")
)

// Settings shared by all blocks of a frame.
type Settings struct {
	// Number of bounces per path.
	MaxBounces uint32

	// Intersection window. Zero values select the defaults.
	TMin float64
	TMax float64

	// Gamma for the tone curve applied to averaged pixel values.
	Gamma float64

	// Distribute the first ⌊√spp⌋² samples of each pixel on a jittered grid.
	Stratify bool

	// Shade by surface normals instead of tracing paths.
	ShadeNormals bool
}

// A unit of work that is processed by a tracer.
type Block struct {
	// Block index in scheduling order.
	Index uint32

	// Top-left corner and dims.
	X, Y uint32
	W, H uint32
}

// Number of pixels covered by the block.
func (b Block) Pixels() uint64 {
	return uint64(b.W) * uint64(b.H)
}

// A block queued for tracing.
type BlockRequest struct {
	Block

	// The number of emitted rays per traced pixel.
	SamplesPerPixel uint32

	// Seed for the block's private random number generator.
	Seed int64

	// Index of the tracer the block was assigned to.
	TracerIndex int

	// A channel to signal on block completion.
	DoneChan chan<- BlockRequest

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

// Derive the seed for a block from the frame seed.
func BlockSeed(baseSeed int64, blockIndex uint32) int64 {
	return baseSeed ^ int64(blockIndex)
}

// Tracer statistics.
type Stats struct {
	// Number of traced blocks and the pixels they covered.
	Blocks uint32
	Pixels uint64

	// Number of traced samples and how many of them produced a NaN.
	Samples    uint64
	NaNSamples uint64

	// Accumulated time spent tracing blocks.
	RenderTime time.Duration
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Shutdown the tracer. Any queued blocks are dropped.
	Close()

	// Attach the tracer to a scene and an output buffer and reset its stats.
	Setup(sc *scene.Scene, fb *frame.Buffer, settings Settings) error

	// Enqueue block request. The tracer signals the request's DoneChan or
	// ErrChan once the block is processed.
	Enqueue(BlockRequest)

	// Retrieve stats for the blocks traced since the last Setup call.
	Stats() *Stats
}
