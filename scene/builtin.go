package scene

import (
	"fmt"
	"sort"

	"github.com/achilleasa/rtow/types"
)

// A function that populates a scene with geometry and materials.
type builderFn func(sc *Scene) error

var builtinScenes = map[string]builderFn{
	"empty":   func(sc *Scene) error { return nil },
	"normals": buildNormals,
	"diffuse": buildDiffuse,
	"metals":  buildMetals,
	"glass":   buildGlass,
}

// The scene used when no scene name is given.
const DefaultSceneName = "metals"

// Get the names of the built-in scenes in alphabetical order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build one of the built-in scenes with a default pinhole camera for a frame
// of the given dimensions.
func Builtin(name string, frameW, frameH uint32) (*Scene, error) {
	build, exists := builtinScenes[name]
	if !exists {
		return nil, fmt.Errorf("scene: unknown built-in scene %q", name)
	}

	camera, err := DefaultPinhole(frameW, frameH)
	if err != nil {
		return nil, err
	}

	sc := NewScene(name)
	sc.SetCamera(camera)
	if err = build(sc); err != nil {
		return nil, fmt.Errorf("scene: building %q: %w", name, err)
	}
	return sc, nil
}

// Add materials and spheres in one go. Geometry refers to materials by their
// position in mats.
type sphereDef struct {
	origin types.Vec3
	radius float64
	mat    int
}

func populate(sc *Scene, mats []Material, spheres []sphereDef) error {
	ids := make([]MaterialID, len(mats))
	for index, mat := range mats {
		id, err := sc.AddMaterial(mat)
		if err != nil {
			return err
		}
		ids[index] = id
	}

	for _, def := range spheres {
		if err := sc.AddSphere(def.origin, def.radius, ids[def.mat]); err != nil {
			return err
		}
	}
	return nil
}

// A small sphere resting on a large ground sphere; meant to be rendered with
// normal shading.
func buildNormals(sc *Scene) error {
	return populate(sc,
		[]Material{NewLambertian(types.Splat3(0.5))},
		[]sphereDef{
			{types.XYZ(0, 0, 1), 0.5, 0},
			{types.XYZ(0, 100.25, 1), 100, 0},
		},
	)
}

// Two gray diffuse spheres.
func buildDiffuse(sc *Scene) error {
	return populate(sc,
		[]Material{NewLambertian(types.Splat3(0.5))},
		[]sphereDef{
			{types.XYZ(0, 0, 1), 0.5, 0},
			{types.XYZ(0, 100.5, 1), 100, 0},
		},
	)
}

// A diffuse sphere flanked by a rough and a polished metal sphere.
func buildMetals(sc *Scene) error {
	return populate(sc,
		[]Material{
			NewLambertian(types.XYZ(0.8, 0.8, 0.0)),
			NewLambertian(types.XYZ(0.7, 0.3, 0.3)),
			NewMetal(types.XYZ(0.8, 0.8, 0.8), 1.0),
			NewMetal(types.XYZ(0.8, 0.6, 0.2), 0.0),
		},
		[]sphereDef{
			{types.XYZ(0, 100.5, 1), 100, 0},
			{types.XYZ(0, 0, 1), 0.5, 1},
			{types.XYZ(-1, 0, 1), 0.5, 2},
			{types.XYZ(1, 0, 1), 0.5, 3},
		},
	)
}

// A hollow glass sphere, modelled as a shell between a sphere and a slightly
// smaller inverted one, next to a diffuse and a metal sphere.
func buildGlass(sc *Scene) error {
	return populate(sc,
		[]Material{
			NewLambertian(types.XYZ(0.8, 0.8, 0.0)),
			NewLambertian(types.XYZ(0.1, 0.2, 0.5)),
			NewDielectric(1.5),
			NewMetal(types.XYZ(0.8, 0.6, 0.2), 0.0),
		},
		[]sphereDef{
			{types.XYZ(0, 100.5, 1), 100, 0},
			{types.XYZ(0, 0, 1), 0.5, 1},
			{types.XYZ(-1, 0, 1), 0.5, 2},
			{types.XYZ(-1, 0, 1), -0.4, 2},
			{types.XYZ(1, 0, 1), 0.5, 3},
		},
	)
}
