package scene

import (
	"fmt"

	"github.com/achilleasa/rtow/types"
)

// Pinhole camera intrinsics. The intrinsic matrix is
//
//	K = [fx s  cx]
//	    [0  fy cy]
//	    [0  0   1]
type Intrinsics struct {
	Fx, Fy float64
	Cx, Cy float64
	Skew   float64
}

func (in Intrinsics) String() string {
	return fmt.Sprintf("fx=%g fy=%g cx=%g cy=%g skew=%g", in.Fx, in.Fy, in.Cx, in.Cy, in.Skew)
}

// The camera type maps pixel coordinates to camera-space rays and back. The
// projection center sits at the camera-space origin looking down +Z with +Y
// pointing down the image.
type Camera struct {
	Intrinsics

	// Image dimensions in pixels.
	Width  float64
	Height float64
}

// Create a pinhole camera for an image of the given size.
func NewPinholeCamera(width, height uint32, in Intrinsics) (*Camera, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("scene: camera requires non-zero image dimensions; got %dx%d", width, height)
	}
	if in.Fx == 0 || in.Fy == 0 {
		return nil, fmt.Errorf("scene: camera focal lengths must be non-zero; got %s", in)
	}

	return &Camera{
		Intrinsics: in,
		Width:      float64(width),
		Height:     float64(height),
	}, nil
}

// Create a pinhole camera with a focal length of a quarter of the image width
// and the principal point at the image center.
func DefaultPinhole(width, height uint32) (*Camera, error) {
	w, h := float64(width), float64(height)
	return NewPinholeCamera(width, height, Intrinsics{
		Fx: w / 4,
		Fy: w / 4,
		Cx: w / 2,
		Cy: h / 2,
	})
}

// Get the intrinsic matrix.
func (c *Camera) K() types.Mat3 {
	return types.Mat3FromRows(
		types.XYZ(c.Fx, c.Skew, c.Cx),
		types.XYZ(0, c.Fy, c.Cy),
		types.XYZ(0, 0, 1),
	)
}

// Get the inverse of the intrinsic matrix.
func (c *Camera) InvK() types.Mat3 {
	fxfy := c.Fx * c.Fy
	return types.Mat3FromRows(
		types.XYZ(1/c.Fx, -c.Skew/fxfy, (c.Cy*c.Skew-c.Cx*c.Fy)/fxfy),
		types.XYZ(0, 1/c.Fy, -c.Cy/c.Fy),
		types.XYZ(0, 0, 1),
	)
}

// Project a camera-space point to pixel coordinates.
func (c *Camera) Project(p types.Vec3) types.Vec2 {
	uvw := c.K().Mul3x1(p)
	return types.XY(uvw[0]/uvw[2], uvw[1]/uvw[2])
}

// Generate the ray through the given (possibly fractional) pixel coordinates.
// The returned ray starts at the camera origin and has a unit direction.
func (c *Camera) Unproject(uv types.Vec2) Ray {
	dir := c.InvK().Mul3x1(uv.Vec3(1))
	return NewRay(types.Vec3{}, dir.Normalize())
}
