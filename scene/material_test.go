package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/achilleasa/rtow/types"
)

func TestLambertianScatter(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	albedo := types.XYZ(0.7, 0.3, 0.3)
	mat := NewLambertian(albedo)

	normals := []types.Vec3{
		types.XYZ(0, 0, -1),
		types.XYZ(0, 1, 0),
		types.XYZ(1, 1, 1).Normalize(),
	}
	for _, n := range normals {
		hit := &HitRecord{Point: types.XYZ(1, 2, 3), Normal: n, FrontFace: true}
		for i := 0; i < 5000; i++ {
			attenuation, out, ok := mat.Scatter(NewRay(types.Vec3{}, n.Neg()), hit, rng)
			if !ok {
				t.Fatal("expected lambertian material to always scatter")
			}
			if attenuation != albedo {
				t.Fatalf("expected attenuation to equal albedo %v; got %v", albedo, attenuation)
			}
			if out.Origin != hit.Point {
				t.Fatalf("expected scattered ray to start at hit point %v; got %v", hit.Point, out.Origin)
			}
			if out.Dir.Len() < diffuseDegenerateLen || out.Dir.HasNaN() {
				t.Fatalf("expected non-degenerate scatter direction; got %v", out.Dir)
			}
			if unit := out.Dir.Normalize(); math.Abs(unit.Len()-1) > 1e-9 {
				t.Fatalf("expected scatter direction to be normalizable; got %v", out.Dir)
			}
			if out.Dir.Dot(n) < 0 {
				t.Fatalf("expected scatter direction %v to lie in the hemisphere of %v", out.Dir, n)
			}
		}
	}
}

func TestMetalPerfectMirror(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	albedo := types.XYZ(0.8, 0.6, 0.2)
	mat := NewMetal(albedo, 0)

	type spec struct {
		dir    types.Vec3
		normal types.Vec3
		exp    types.Vec3
	}
	specs := []spec{
		{types.XYZ(0, -1, -1), types.XYZ(0, 0, 1), types.XYZ(0, -1, 1)},
		{types.XYZ(3, -2, 0), types.XYZ(0, 1, 0), types.XYZ(3, 2, 0)},
		{types.XYZ(0, 0, 5), types.XYZ(0, 0, -1), types.XYZ(0, 0, -5)},
	}

	for index, s := range specs {
		hit := &HitRecord{Normal: s.normal, FrontFace: true}
		attenuation, out, ok := mat.Scatter(NewRay(types.XYZ(0, 0, 0), s.dir), hit, rng)
		if !ok {
			t.Fatalf("[spec %d] expected mirror reflection to leave the surface", index)
		}
		if attenuation != albedo {
			t.Fatalf("[spec %d] expected attenuation %v; got %v", index, albedo, attenuation)
		}
		if out.Dir != s.exp {
			t.Fatalf("[spec %d] expected exact mirror direction %v; got %v", index, s.exp, out.Dir)
		}
	}
}

func TestMetalFuzzAbsorption(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	mat := NewMetal(types.Splat3(1), 1.0)
	normal := types.XYZ(0, 0, 1)

	// A grazing ray reflected with maximum fuzz must sometimes end up below
	// the surface; those rays are absorbed.
	hit := &HitRecord{Normal: normal, FrontFace: true}
	in := NewRay(types.XYZ(-1, 0, 0.01), types.XYZ(1, 0, -0.01))

	var absorbed, scattered int
	for i := 0; i < 1000; i++ {
		_, out, ok := mat.Scatter(in, hit, rng)
		if ok {
			scattered++
			if out.Dir.Dot(normal) <= metalMinExitCos {
				t.Fatalf("expected surviving ray to leave the surface; got %v", out.Dir)
			}
			continue
		}
		absorbed++
	}

	if absorbed == 0 || scattered == 0 {
		t.Fatalf("expected a mix of absorbed and scattered rays; got %d absorbed, %d scattered", absorbed, scattered)
	}
}

func TestDielectricMatchedIndexPassesThrough(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	mat := NewDielectric(1.0)
	normal := types.XYZ(0, 1, 0)

	for i := 0; i < 2000; i++ {
		// Random incidence direction in the lower hemisphere, including grazing ones
		dir := types.RandomUnitVector(rng)
		if dir[1] > 0 {
			dir[1] = -dir[1]
		}

		for _, front := range []bool{true, false} {
			hit := &HitRecord{Normal: normal, FrontFace: front}
			attenuation, out, ok := mat.Scatter(NewRay(types.XYZ(0, 1, 0), dir), hit, rng)
			if !ok {
				t.Fatal("expected dielectric material to always scatter")
			}
			if attenuation != types.Splat3(1) {
				t.Fatalf("expected white attenuation; got %v", attenuation)
			}
			if cross := out.Dir.Cross(dir); cross.Len() > 1e-9 || out.Dir.Dot(dir) <= 0 {
				t.Fatalf("expected outgoing direction %v to be parallel to incoming %v", out.Dir, dir)
			}
		}
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	mat := NewDielectric(1.5)

	// Exiting glass at a shallow angle: 1.5 * sin(60deg) > 1
	normal := types.XYZ(0, -1, 0)
	dir := types.XYZ(math.Sin(math.Pi/3), math.Cos(math.Pi/3), 0)
	hit := &HitRecord{Normal: normal, FrontFace: false}

	for i := 0; i < 100; i++ {
		_, out, ok := mat.Scatter(NewRay(types.Vec3{}, dir), hit, rng)
		if !ok {
			t.Fatal("expected dielectric material to always scatter")
		}
		exp := types.Reflect(dir, normal)
		if !out.Dir.ApproxEqual(exp, 1e-12) {
			t.Fatalf("expected total internal reflection %v; got %v", exp, out.Dir)
		}
	}
}

func TestDielectricHeadOnMostlyRefracts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	mat := NewDielectric(1.5)
	normal := types.XYZ(0, 0, -1)
	hit := &HitRecord{Normal: normal, FrontFace: true}

	var reflected int
	const samples = 20000
	for i := 0; i < samples; i++ {
		_, out, _ := mat.Scatter(NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), hit, rng)
		if out.Dir[2] < 0 {
			reflected++
			continue
		}
		if !out.Dir.ApproxEqual(types.XYZ(0, 0, 1), 1e-9) {
			t.Fatalf("expected head-on refraction to keep direction; got %v", out.Dir)
		}
	}

	// Schlick reflectance at normal incidence for glass is 0.04
	if ratio := float64(reflected) / samples; math.Abs(ratio-0.04) > 0.01 {
		t.Fatalf("expected ~4%% of rays to reflect; got %.2f%%", ratio*100)
	}
}

func TestSchlickReflectance(t *testing.T) {
	type spec struct {
		cos float64
		ior float64
		exp float64
	}
	specs := []spec{
		{1, 1.5, 0.04},
		{0, 1.5, 1},
		{1, 1, 0},
	}

	for index, s := range specs {
		if got := SchlickReflectance(s.cos, s.ior); math.Abs(got-s.exp) > 1e-12 {
			t.Fatalf("[spec %d] expected reflectance %v; got %v", index, s.exp, got)
		}
	}
}

func TestMaterialValidate(t *testing.T) {
	type spec struct {
		mat    Material
		expErr bool
	}
	specs := []spec{
		{NewLambertian(types.Splat3(0.5)), false},
		{NewMetal(types.Splat3(0.5), 0.3), false},
		{NewDielectric(1.5), false},
		{NewDielectric(0), true},
		{NewDielectric(-1), true},
		{NewDielectric(math.NaN()), true},
		{NewLambertian(types.XYZ(math.NaN(), 0, 0)), true},
		{Material{Type: MaterialType(42)}, true},
	}

	for index, s := range specs {
		err := s.mat.Validate()
		if (err != nil) != s.expErr {
			t.Fatalf("[spec %d] expected error to be %t; got %v", index, s.expErr, err)
		}
	}
}
