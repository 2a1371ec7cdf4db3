package tracer

import (
	"math/rand"

	"github.com/achilleasa/rtow/scene"
	"github.com/achilleasa/rtow/types"
)

const (
	// Default ray parameter window for scene intersections. The lower bound
	// keeps scattered rays from re-hitting the surface they left.
	DefaultTMin = 0.001
	DefaultTMax = 1000.0
)

// Integrator estimates the light carried along camera rays.
type Integrator struct {
	Scene *scene.Scene

	// Max number of scattering events per path.
	MaxBounces uint32

	// Intersection window.
	TMin float64
	TMax float64

	// Shade surfaces by their normals instead of tracing paths.
	ShadeNormals bool
}

// Create an integrator with the default intersection window.
func NewIntegrator(sc *scene.Scene, maxBounces uint32) *Integrator {
	return &Integrator{
		Scene:      sc,
		MaxBounces: maxBounces,
		TMin:       DefaultTMin,
		TMax:       DefaultTMax,
	}
}

// Trace a path through the scene and return the color it carries. It uses
// the default intersection window.
func RayColor(ray scene.Ray, sc *scene.Scene, maxBounces uint32, rng *rand.Rand) types.Vec3 {
	return NewIntegrator(sc, maxBounces).RayColor(ray, rng)
}

// Trace a path starting with ray. The path throughput starts at white and is
// multiplied by the attenuation of every scattering event. Paths that escape
// before their first bounce see the background; paths that escape later keep
// their throughput; absorbed paths are black. Paths that reach MaxBounces
// return their throughput as-is.
func (in *Integrator) RayColor(ray scene.Ray, rng *rand.Rand) types.Vec3 {
	if in.ShadeNormals {
		return in.normalColor(ray)
	}

	col := types.Splat3(1)
	hitOnce := false
	rayIn := ray
	for bounce := uint32(0); bounce < in.MaxBounces; bounce++ {
		rec, hit := in.Scene.Hit(rayIn, in.TMin, in.TMax)
		if !hit {
			break
		}
		hitOnce = true

		attenuation, rayOut, scattered := in.Scene.Material(rec.Material).Scatter(rayIn, &rec, rng)
		if !scattered {
			return types.Vec3{}
		}
		col = col.MulVec(attenuation)
		rayIn = rayOut
	}

	if hitOnce {
		return col
	}
	return in.Scene.Background.Eval(ray.Dir)
}

// Map the normal of the first hit to a color.
func (in *Integrator) normalColor(ray scene.Ray) types.Vec3 {
	rec, hit := in.Scene.Hit(ray, in.TMin, in.TMax)
	if !hit {
		return in.Scene.Background.Eval(ray.Dir)
	}
	return rec.Normal.Add(types.Splat3(1)).Mul(0.5)
}
