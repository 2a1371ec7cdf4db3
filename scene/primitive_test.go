package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/achilleasa/rtow/types"
)

func TestSphereHit(t *testing.T) {
	type spec struct {
		center    types.Vec3
		radius    float64
		ray       Ray
		tMin      float64
		tMax      float64
		expHit    bool
		expT      float64
		expNormal types.Vec3
		expFront  bool
	}
	specs := []spec{
		// Front face hit from outside
		{types.XYZ(0, 0, 5), 1, NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), 0.001, 100, true, 4, types.XYZ(0, 0, -1), true},
		// Near root outside the window; the far root is a back face hit
		{types.XYZ(0, 0, 5), 1, NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), 4.5, 100, true, 6, types.XYZ(0, 0, -1), false},
		// Ray starting inside the sphere
		{types.XYZ(0, 0, 0), 2, NewRay(types.Vec3{}, types.XYZ(1, 0, 0)), 0.001, 100, true, 2, types.XYZ(-1, 0, 0), false},
		// Non-normalized direction
		{types.XYZ(0, 0, 5), 1, NewRay(types.Vec3{}, types.XYZ(0, 0, 2)), 0.001, 100, true, 2, types.XYZ(0, 0, -1), true},
		// Both roots beyond tMax
		{types.XYZ(0, 0, 5), 1, NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), 0.001, 3, false, 0, types.Vec3{}, false},
		// Both roots behind the origin
		{types.XYZ(0, 0, -5), 1, NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), 0.001, 100, false, 0, types.Vec3{}, false},
		// Miss
		{types.XYZ(0, 0, 5), 1, NewRay(types.Vec3{}, types.XYZ(0, 1, 0)), 0.001, 100, false, 0, types.Vec3{}, false},
		// Grazing hit
		{types.XYZ(0, 0, 5), 1, NewRay(types.XYZ(1, 0, 0), types.XYZ(0, 0, 1)), 0.001, 100, true, 5, types.XYZ(-1, 0, 0), false},
		// Negative radius flips the outward normal
		{types.XYZ(0, 0, 5), -1, NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), 0.001, 100, true, 4, types.XYZ(0, 0, -1), false},
	}

	for index, s := range specs {
		sphere := NewSphere(s.center, s.radius, 7)
		rec, hit := sphere.Hit(s.ray, s.tMin, s.tMax)
		if hit != s.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", index, s.expHit, hit)
		}
		if !hit {
			continue
		}

		if math.Abs(rec.T-s.expT) > 1e-9 {
			t.Fatalf("[spec %d] expected t = %v; got %v", index, s.expT, rec.T)
		}
		if rec.FrontFace != s.expFront {
			t.Fatalf("[spec %d] expected front face to be %t; got %t", index, s.expFront, rec.FrontFace)
		}
		if !rec.Normal.ApproxEqual(s.expNormal, 1e-9) {
			t.Fatalf("[spec %d] expected normal %v; got %v", index, s.expNormal, rec.Normal)
		}
		if math.Abs(rec.Normal.Len()-1) > 1e-9 {
			t.Fatalf("[spec %d] expected unit normal; got length %v", index, rec.Normal.Len())
		}
		if rec.Normal.Dot(s.ray.Dir) > 0 {
			t.Fatalf("[spec %d] expected normal to face against the ray", index)
		}
		if !rec.Point.ApproxEqual(s.ray.At(rec.T), 1e-12) {
			t.Fatalf("[spec %d] expected point %v; got %v", index, s.ray.At(rec.T), rec.Point)
		}
		if rec.Material != 7 {
			t.Fatalf("[spec %d] expected material id 7; got %d", index, rec.Material)
		}

		// The surface point must lie on the sphere
		if dist := rec.Point.Sub(s.center).Len(); math.Abs(dist-math.Abs(s.radius)) > 1e-9 {
			t.Fatalf("[spec %d] expected hit point at distance %v from center; got %v", index, math.Abs(s.radius), dist)
		}
	}
}

func TestHittableListClosestHit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	// Non-overlapping spheres on a grid
	list := NewHittableList()
	for x := -2; x <= 2; x++ {
		for y := -2; y <= 2; y++ {
			center := types.XYZ(float64(x)*3, float64(y)*3, 10+rng.Float64()*10)
			list.Add(NewSphere(center, 0.5+rng.Float64(), MaterialID(list.Len())))
		}
	}

	for i := 0; i < 2000; i++ {
		ray := NewRay(types.Vec3{}, types.XYZ(rng.Float64()-0.5, rng.Float64()-0.5, 1))

		expHit := false
		var expRec HitRecord
		for index := range list.Primitives {
			rec, ok := list.Primitives[index].Hit(ray, 0.001, 1000)
			if ok && (!expHit || rec.T < expRec.T) {
				expHit, expRec = true, rec
			}
		}

		rec, hit := list.Hit(ray, 0.001, 1000)
		if hit != expHit {
			t.Fatalf("[ray %d] expected hit to be %t; got %t", i, expHit, hit)
		}
		if hit && (rec.T != expRec.T || rec.Material != expRec.Material) {
			t.Fatalf("[ray %d] expected closest hit t=%v (material %d); got t=%v (material %d)", i, expRec.T, expRec.Material, rec.T, rec.Material)
		}
	}
}

func TestHittableListNested(t *testing.T) {
	inner := NewHittableList(NewSphere(types.XYZ(0, 0, 3), 1, 1))
	list := NewHittableList(
		NewSphere(types.XYZ(0, 0, 10), 1, 0),
		NewGroup(inner),
		NewGroup(nil),
	)

	rec, hit := list.Hit(NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), 0.001, 1000)
	if !hit {
		t.Fatal("expected ray to hit the nested sphere")
	}
	if rec.Material != 1 || rec.T != 2 {
		t.Fatalf("expected nested sphere hit at t=2 with material 1; got t=%v material %d", rec.T, rec.Material)
	}

	bbox, ok := list.BBox()
	if !ok {
		t.Fatal("expected list to have a bounding box")
	}
	if bbox[0] != types.XYZ(-1, -1, 2) || bbox[1] != types.XYZ(1, 1, 11) {
		t.Fatalf("expected bbox [(-1, -1, 2), (1, 1, 11)]; got %v", bbox)
	}

	list.Clear()
	if list.Len() != 0 {
		t.Fatalf("expected empty list after clear; got %d primitives", list.Len())
	}
	if _, hit = list.Hit(NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), 0.001, 1000); hit {
		t.Fatal("expected empty list to report no hit")
	}
}
