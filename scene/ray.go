package scene

import "github.com/achilleasa/rtow/types"

// A half-line starting at Origin. Dir is not required to be normalized.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
}

// Create a new ray.
func NewRay(origin, dir types.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir}
}

// Evaluate the point at parameter t along the ray.
func (r Ray) At(t float64) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
