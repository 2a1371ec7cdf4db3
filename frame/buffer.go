package frame

import (
	"errors"
	"fmt"
	"math"

	"github.com/achilleasa/rtow/types"
)

// Upper bound for the number of pixels in a frame.
const MaxPixels = 1 << 28

var ErrAllocFailed = errors.New("frame: could not allocate frame buffer")

// A row-major grid of linear RGB values.
type Buffer struct {
	Width  uint32
	Height uint32
	Pix    []types.Vec3
}

// Allocate a zeroed frame buffer.
func NewBuffer(width, height uint32) (buf *Buffer, err error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrAllocFailed, width, height)
	}

	pixels := uint64(width) * uint64(height)
	if pixels > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds the %d pixel limit", ErrAllocFailed, width, height, MaxPixels)
	}

	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, fmt.Errorf("%w: %v", ErrAllocFailed, r)
		}
	}()

	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]types.Vec3, pixels),
	}, nil
}

func (b *Buffer) offset(x, y uint32) int {
	return int(y)*int(b.Width) + int(x)
}

// Get the color at pixel (x, y).
func (b *Buffer) At(x, y uint32) types.Vec3 {
	return b.Pix[b.offset(x, y)]
}

// Set the color at pixel (x, y).
func (b *Buffer) Set(x, y uint32, col types.Vec3) {
	b.Pix[b.offset(x, y)] = col
}

// Fill the buffer with a red/green ramp over a constant blue channel. Used
// to check image sinks without tracing any rays.
func (b *Buffer) FillGradient() {
	for y := uint32(0); y < b.Height; y++ {
		for x := uint32(0); x < b.Width; x++ {
			b.Set(x, y, types.XYZ(
				float64(y+1)/float64(b.Height),
				float64(x+1)/float64(b.Width),
				0.25,
			))
		}
	}
}

// A per-channel tone curve mapping linear values to display values.
type ToneCurve struct {
	Gamma float64
}

// Map a linear color to display space. A gamma of 2 uses a square root.
func (tc ToneCurve) Apply(col types.Vec3) types.Vec3 {
	if tc.Gamma == 2 {
		return col.Map(math.Sqrt)
	}
	exp := 1 / tc.Gamma
	return col.Map(func(v float64) float64 {
		return math.Pow(v, exp)
	})
}

// Convert a display-space channel value to an 8-bit value. Values are
// clamped before scaling so that 1.0 maps to 255 and not 256.
func Quantize(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v > 0.9999 {
		v = 0.9999
	}
	return uint8(v * 255.99)
}
