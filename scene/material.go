package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/achilleasa/rtow/types"
)

type MaterialType uint8

const (
	LambertianMaterial MaterialType = iota
	MetalMaterial
	DielectricMaterial
)

const (
	// Diffuse scatter directions shorter than this fall back to the normal.
	diffuseDegenerateLen = 1e-3

	// Metal rays must leave the surface by at least this much to survive.
	metalMinExitCos = 1e-4
)

func (t MaterialType) String() string {
	switch t {
	case LambertianMaterial:
		return "lambertian"
	case MetalMaterial:
		return "metal"
	case DielectricMaterial:
		return "dielectric"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// Index of a material inside the scene material list.
type MaterialID uint32

// Defines a scene material. Only the fields relevant to the material Type
// are used.
type Material struct {
	// The type of the material.
	Type MaterialType

	// Reflected fraction per channel (lambertian and metal materials).
	Albedo types.Vec3

	// Roughness of metal reflections; 0 is a perfect mirror.
	Fuzz float64

	// Index of refraction (dielectric materials only)
	IOR float64
}

// Create a perfectly diffuse material.
func NewLambertian(albedo types.Vec3) Material {
	return Material{Type: LambertianMaterial, Albedo: albedo}
}

// Create a metal material. Fuzz is not clamped; values in [0, 1] are the
// useful range.
func NewMetal(albedo types.Vec3, fuzz float64) Material {
	return Material{Type: MetalMaterial, Albedo: albedo, Fuzz: fuzz}
}

// Create a clear dielectric material such as glass or water.
func NewDielectric(ior float64) Material {
	return Material{Type: DielectricMaterial, IOR: ior}
}

// Check that the material parameters can be rendered.
func (m Material) Validate() error {
	switch m.Type {
	case LambertianMaterial, MetalMaterial:
		if m.Albedo.HasNaN() {
			return fmt.Errorf("scene: %s material albedo contains NaN", m.Type)
		}
		if math.IsNaN(m.Fuzz) {
			return fmt.Errorf("scene: %s material fuzz is NaN", m.Type)
		}
	case DielectricMaterial:
		if !(m.IOR > 0) {
			return fmt.Errorf("scene: dielectric material requires a positive index of refraction; got %v", m.IOR)
		}
	default:
		return fmt.Errorf("scene: unsupported material type %s", m.Type)
	}
	return nil
}

// Scatter an incoming ray at a surface hit. It returns the attenuation
// applied to the light carried by the path and the outgoing ray. A false
// result means that the ray was absorbed.
func (m *Material) Scatter(rayIn Ray, hit *HitRecord, rng *rand.Rand) (types.Vec3, Ray, bool) {
	switch m.Type {
	case LambertianMaterial:
		return m.scatterLambertian(hit, rng)
	case MetalMaterial:
		return m.scatterMetal(rayIn, hit, rng)
	case DielectricMaterial:
		return m.scatterDielectric(rayIn, hit, rng)
	}
	return types.Vec3{}, Ray{}, false
}

func (m *Material) scatterLambertian(hit *HitRecord, rng *rand.Rand) (types.Vec3, Ray, bool) {
	dir := hit.Normal.Add(types.RandomUnitVector(rng))
	if dir.Len() < diffuseDegenerateLen {
		dir = hit.Normal
	}
	return m.Albedo, NewRay(hit.Point, dir), true
}

func (m *Material) scatterMetal(rayIn Ray, hit *HitRecord, rng *rand.Rand) (types.Vec3, Ray, bool) {
	dir := types.Reflect(rayIn.Dir, hit.Normal)
	if m.Fuzz != 0 {
		dir = dir.Add(types.RandomInUnitBall(rng).Mul(m.Fuzz))
	}
	return m.Albedo, NewRay(hit.Point, dir), dir.Dot(hit.Normal) > metalMinExitCos
}

func (m *Material) scatterDielectric(rayIn Ray, hit *HitRecord, rng *rand.Rand) (types.Vec3, Ray, bool) {
	white := types.Splat3(1)
	unitDir := rayIn.Dir.Normalize()

	// Index-matched boundaries neither reflect nor bend.
	if m.IOR == 1 {
		return white, NewRay(hit.Point, unitDir), true
	}

	etaRatio := m.IOR
	if hit.FrontFace {
		etaRatio = 1.0 / m.IOR
	}

	cosTheta := math.Min(unitDir.Neg().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	var dir types.Vec3
	if etaRatio*sinTheta > 1.0 || rng.Float64() < SchlickReflectance(cosTheta, m.IOR) {
		dir = types.Reflect(unitDir, hit.Normal)
	} else {
		dir = types.Refract(unitDir, hit.Normal, etaRatio)
	}
	return white, NewRay(hit.Point, dir), true
}

// Schlick's polynomial approximation of the Fresnel reflectance for a
// boundary with the given index of refraction.
func SchlickReflectance(cosTheta, ior float64) float64 {
	r0 := (1 - ior) / (1 + ior)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosTheta, 5)
}
