package renderer

import (
	"context"

	"github.com/achilleasa/rtow/frame"
)

type Renderer interface {
	// Render frame. Cancelling the context stops the renderer from
	// dispatching further blocks.
	Render(ctx context.Context) error

	// Get the frame buffer with the rendered image.
	Frame() *frame.Buffer

	// Shutdown renderer and any attached tracer.
	Close()

	// Get render statistics.
	Stats() FrameStats
}
