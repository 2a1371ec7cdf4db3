package scene

import (
	"math"

	"github.com/achilleasa/rtow/types"
)

type PrimitiveType uint32

const (
	SpherePrimitive PrimitiveType = iota
	ListPrimitive
)

// Defines a scene primitive.
type Primitive struct {
	// The primitive type.
	Type PrimitiveType

	// Sphere center and radius. A negative radius describes the same surface
	// as its absolute value but with inward facing normals, which allows
	// modelling hollow shells.
	Origin types.Vec3
	Radius float64

	// The primitive material. Must be added to the scene before the primitive.
	Material MaterialID

	// Child primitives (list primitives only).
	Children *HittableList
}

// Create new sphere primitive.
func NewSphere(origin types.Vec3, radius float64, material MaterialID) Primitive {
	return Primitive{
		Type:     SpherePrimitive,
		Origin:   origin,
		Radius:   radius,
		Material: material,
	}
}

// Create a primitive that groups a list of other primitives.
func NewGroup(children *HittableList) Primitive {
	return Primitive{
		Type:     ListPrimitive,
		Children: children,
	}
}

// Intersect the primitive with a ray and report the closest hit whose ray
// parameter lies inside [tMin, tMax].
func (p *Primitive) Hit(ray Ray, tMin, tMax float64) (HitRecord, bool) {
	switch p.Type {
	case SpherePrimitive:
		return p.hitSphere(ray, tMin, tMax)
	case ListPrimitive:
		if p.Children == nil {
			return HitRecord{}, false
		}
		return p.Children.Hit(ray, tMin, tMax)
	}
	return HitRecord{}, false
}

// Solve |O + tD - C|^2 = r^2 for t.
func (p *Primitive) hitSphere(ray Ray, tMin, tMax float64) (HitRecord, bool) {
	oc := ray.Origin.Sub(p.Origin)
	a := ray.Dir.Dot(ray.Dir)
	b := 2 * oc.Dot(ray.Dir)
	c := oc.Dot(oc) - p.Radius*p.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}

	// Try the nearest root first
	sqrtD := math.Sqrt(discriminant)
	root := (-b - sqrtD) / (2 * a)
	if !inWindow(root, tMin, tMax) {
		root = (-b + sqrtD) / (2 * a)
		if !inWindow(root, tMin, tMax) {
			return HitRecord{}, false
		}
	}

	rec := HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: p.Material,
	}
	outwardNormal := rec.Point.Sub(p.Origin).Div(p.Radius)
	rec.SetFaceNormal(ray, outwardNormal)
	return rec, true
}

// NaN roots (degenerate rays) are never inside the window.
func inWindow(t, tMin, tMax float64) bool {
	return t >= tMin && t <= tMax
}

// Get the axis-aligned bounding box of the primitive.
func (p *Primitive) BBox() ([2]types.Vec3, bool) {
	switch p.Type {
	case SpherePrimitive:
		r := types.Splat3(math.Abs(p.Radius))
		return [2]types.Vec3{p.Origin.Sub(r), p.Origin.Add(r)}, true
	case ListPrimitive:
		if p.Children == nil {
			return [2]types.Vec3{}, false
		}
		return p.Children.BBox()
	}
	return [2]types.Vec3{}, false
}

// An ordered collection of primitives.
type HittableList struct {
	Primitives []Primitive
}

// Create a new hittable list.
func NewHittableList(primitives ...Primitive) *HittableList {
	return &HittableList{Primitives: primitives}
}

// Append a primitive to the list.
func (l *HittableList) Add(p Primitive) {
	l.Primitives = append(l.Primitives, p)
}

// Remove all primitives.
func (l *HittableList) Clear() {
	l.Primitives = l.Primitives[:0]
}

// Get the number of primitives in the list.
func (l *HittableList) Len() int {
	return len(l.Primitives)
}

// Find the closest hit across all list members. Every member is tested; the
// upper bound of the search window shrinks to the closest hit found so far.
func (l *HittableList) Hit(ray Ray, tMin, tMax float64) (HitRecord, bool) {
	var (
		closest HitRecord
		hitAny  bool
	)

	for index := range l.Primitives {
		rec, ok := l.Primitives[index].Hit(ray, tMin, tMax)
		if !ok {
			continue
		}
		hitAny = true
		tMax = rec.T
		closest = rec
	}

	return closest, hitAny
}

// Get the axis-aligned bounding box of all list members.
func (l *HittableList) BBox() ([2]types.Vec3, bool) {
	var (
		bbox [2]types.Vec3
		ok   bool
	)
	for index := range l.Primitives {
		pBox, pOk := l.Primitives[index].BBox()
		if !pOk {
			continue
		}
		if !ok {
			bbox, ok = pBox, true
			continue
		}
		bbox[0] = types.MinVec3(bbox[0], pBox[0])
		bbox[1] = types.MaxVec3(bbox[1], pBox[1])
	}
	return bbox, ok
}
