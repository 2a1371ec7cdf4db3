package scene

import "github.com/achilleasa/rtow/types"

// Information about a ray/surface intersection.
type HitRecord struct {
	Point types.Vec3

	// Always points against the incoming ray.
	Normal types.Vec3

	// Ray parameter at the hit point.
	T float64

	// True if the ray approached the surface from its outward side.
	FrontFace bool

	// The material of the hit surface.
	Material MaterialID
}

// Orient the outward surface normal against the incoming ray and record
// which side of the surface was hit.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal types.Vec3) {
	h.FrontFace = ray.Dir.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Neg()
	}
}
