package tracer

import (
	"math/rand"
	"testing"

	"github.com/achilleasa/rtow/scene"
	"github.com/achilleasa/rtow/types"
)

func TestRayColorEmptyScene(t *testing.T) {
	sc := scene.NewScene("empty")
	rng := rand.New(rand.NewSource(1))

	dirs := []types.Vec3{
		types.XYZ(0, 0, 1),
		types.XYZ(0, -1, 1),
		types.XYZ(0.3, 0.9, 0.2),
		types.XYZ(-2, 0.5, 4),
	}
	for index, dir := range dirs {
		got := RayColor(scene.NewRay(types.Vec3{}, dir), sc, 50, rng)
		exp := sc.Background.Eval(dir)
		if got != exp {
			t.Fatalf("[spec %d] expected background %v; got %v", index, exp, got)
		}

		// The gradient is white at t = 1 and the zenith color at t = 0
		y := dir.Normalize()[1]
		manual := types.Splat3(1).Mul(y + 0.5).Add(types.XYZ(0.5, 0.7, 1.0).Mul(0.5 - y))
		if !got.ApproxEqual(manual, 1e-12) {
			t.Fatalf("[spec %d] expected gradient color %v; got %v", index, manual, got)
		}
	}
}

func TestRayColorBounceSemantics(t *testing.T) {
	type spec struct {
		mat        scene.Material
		center     types.Vec3
		radius     float64
		maxBounces uint32
		exp        types.Vec3
		expBg      bool
	}
	specs := []spec{
		// A mirror reflects the primary ray back to the camera; the escaped
		// path keeps its throughput instead of picking up the background.
		{scene.NewMetal(types.XYZ(0.8, 0.6, 0.2), 0), types.XYZ(0, 0, 2), 0.5, 10, types.XYZ(0.8, 0.6, 0.2), false},
		// Inside a mirror sphere the path bounces until the depth cutoff.
		{scene.NewMetal(types.Splat3(0.5), 0), types.Vec3{}, 5, 3, types.Splat3(0.125), false},
		// A single bounce returns the attenuation of the first hit.
		{scene.NewLambertian(types.XYZ(0.3, 0.4, 0.5)), types.XYZ(0, 0, 2), 0.5, 1, types.XYZ(0.3, 0.4, 0.5), false},
		// Without any bounce the primary ray sees the background.
		{scene.NewLambertian(types.XYZ(0.3, 0.4, 0.5)), types.XYZ(0, 0, 2), 0.5, 0, types.Vec3{}, true},
		// Black lambertian surfaces absorb everything.
		{scene.NewLambertian(types.Vec3{}), types.XYZ(0, 0, 2), 0.5, 10, types.Vec3{}, false},
	}

	for index, s := range specs {
		sc := scene.NewScene("test")
		id, err := sc.AddMaterial(s.mat)
		if err != nil {
			t.Fatal(err)
		}
		if err = sc.AddSphere(s.center, s.radius, id); err != nil {
			t.Fatal(err)
		}

		ray := scene.NewRay(types.Vec3{}, types.XYZ(0, 0, 1))
		got := RayColor(ray, sc, s.maxBounces, rand.New(rand.NewSource(int64(index))))

		exp := s.exp
		if s.expBg {
			exp = sc.Background.Eval(ray.Dir)
		}
		if !got.ApproxEqual(exp, 1e-12) {
			t.Fatalf("[spec %d] expected color %v; got %v", index, exp, got)
		}
	}
}

func TestRayColorGlassPassThrough(t *testing.T) {
	sc := scene.NewScene("test")
	id, err := sc.AddMaterial(scene.NewDielectric(1))
	if err != nil {
		t.Fatal(err)
	}
	if err = sc.AddSphere(types.XYZ(0, 0, 3), 1, id); err != nil {
		t.Fatal(err)
	}

	// An index-matched sphere is invisible: the ray enters, exits and then
	// escapes with a white throughput.
	dir := types.XYZ(0.1, -0.2, 1).Normalize()
	got := RayColor(scene.NewRay(types.Vec3{}, dir), sc, 10, rand.New(rand.NewSource(7)))
	if !got.ApproxEqual(types.Splat3(1), 1e-12) {
		t.Fatalf("expected white throughput; got %v", got)
	}
}

func TestRayColorShadeNormals(t *testing.T) {
	sc := scene.NewScene("test")
	id, err := sc.AddMaterial(scene.NewLambertian(types.Splat3(0.5)))
	if err != nil {
		t.Fatal(err)
	}
	if err = sc.AddSphere(types.XYZ(0, 0, 2), 0.5, id); err != nil {
		t.Fatal(err)
	}

	in := NewIntegrator(sc, 10)
	in.ShadeNormals = true
	rng := rand.New(rand.NewSource(1))

	got := in.RayColor(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), rng)
	if exp := types.XYZ(0.5, 0.5, 0); !got.ApproxEqual(exp, 1e-12) {
		t.Fatalf("expected normal color %v; got %v", exp, got)
	}

	missDir := types.XYZ(0, 1, 0)
	got = in.RayColor(scene.NewRay(types.Vec3{}, missDir), rng)
	if exp := sc.Background.Eval(missDir); got != exp {
		t.Fatalf("expected background %v; got %v", exp, got)
	}
}
