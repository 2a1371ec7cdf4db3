package scene

import "github.com/achilleasa/rtow/types"

// A vertical gradient returned for rays that escape the scene without
// hitting anything.
type Background struct {
	Horizon types.Vec3
	Zenith  types.Vec3
}

// The default white to light-blue sky.
func DefaultBackground() Background {
	return Background{
		Horizon: types.XYZ(1, 1, 1),
		Zenith:  types.XYZ(0.5, 0.7, 1.0),
	}
}

// Evaluate the gradient for a ray direction. The blend factor is the vertical
// component of the normalized direction shifted by one half; with +Y pointing
// down the image, rays towards the top of the frame pick up more of the zenith
// color.
func (bg Background) Eval(dir types.Vec3) types.Vec3 {
	t := dir.Normalize()[1] + 0.5
	return bg.Horizon.Mul(t).Add(bg.Zenith.Mul(1 - t))
}
