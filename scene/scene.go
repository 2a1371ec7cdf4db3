package scene

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/achilleasa/rtow/types"
	"github.com/olekukonko/tablewriter"
)

var (
	ErrUnknownMaterial = errors.New("scene: primitive references unknown material; ensure that the material is added to the scene before adding the primitive")
	ErrInvalidSphere   = errors.New("scene: sphere requires a finite, non-zero radius and a finite center")
)

type Scene struct {
	Name   string
	Camera *Camera

	// Materials are owned by the scene and referenced by index.
	Materials []Material

	// The scene geometry.
	World HittableList

	Background Background
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:       name,
		Materials:  make([]Material, 0),
		Background: DefaultBackground(),
	}
}

// Attach a camera to the scene.
func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

// Add a material to the scene and return its id.
func (s *Scene) AddMaterial(material Material) (MaterialID, error) {
	if err := material.Validate(); err != nil {
		return 0, err
	}
	s.Materials = append(s.Materials, material)
	return MaterialID(len(s.Materials) - 1), nil
}

// Get a material by id.
func (s *Scene) Material(id MaterialID) *Material {
	return &s.Materials[id]
}

// Add a primitive to the scene.
func (s *Scene) AddPrimitive(primitive Primitive) error {
	if err := s.validatePrimitive(&primitive); err != nil {
		return err
	}
	s.World.Add(primitive)
	return nil
}

// Add a sphere with the given material to the scene.
func (s *Scene) AddSphere(origin types.Vec3, radius float64, material MaterialID) error {
	return s.AddPrimitive(NewSphere(origin, radius, material))
}

func (s *Scene) validatePrimitive(p *Primitive) error {
	switch p.Type {
	case SpherePrimitive:
		if p.Radius == 0 || math.IsNaN(p.Radius) || math.IsInf(p.Radius, 0) || p.Origin.HasNaN() {
			return ErrInvalidSphere
		}
		if int(p.Material) >= len(s.Materials) {
			return ErrUnknownMaterial
		}
	case ListPrimitive:
		if p.Children == nil {
			return nil
		}
		for index := range p.Children.Primitives {
			if err := s.validatePrimitive(&p.Children.Primitives[index]); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("scene: unsupported primitive type %d", p.Type)
	}
	return nil
}

// Find the closest intersection between the ray and the scene geometry.
func (s *Scene) Hit(ray Ray, tMin, tMax float64) (HitRecord, bool) {
	return s.World.Hit(ray, tMin, tMax)
}

// Count the spheres in the scene, descending into groups.
func (s *Scene) SphereCount() int {
	return countSpheres(&s.World)
}

func countSpheres(l *HittableList) int {
	count := 0
	for index := range l.Primitives {
		p := &l.Primitives[index]
		switch p.Type {
		case SpherePrimitive:
			count++
		case ListPrimitive:
			if p.Children != nil {
				count += countSpheres(p.Children)
			}
		}
	}
	return count
}

// Build a tabular representation of scene statistics.
func (s *Scene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Value"})

	byType := make(map[MaterialType]int)
	for _, mat := range s.Materials {
		byType[mat.Type]++
	}
	table.Append([]string{"Materials", "---", fmt.Sprintf("%d", len(s.Materials))})
	for _, matType := range []MaterialType{LambertianMaterial, MetalMaterial, DielectricMaterial} {
		table.Append([]string{"", matType.String(), fmt.Sprintf("%d", byType[matType])})
	}
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Geometry", "---", fmt.Sprintf("%d", s.World.Len())})
	table.Append([]string{"", "Spheres", fmt.Sprintf("%d", s.SphereCount())})
	if bbox, ok := s.World.BBox(); ok {
		table.Append([]string{"", "Bounds min", bbox[0].String()})
		table.Append([]string{"", "Bounds max", bbox[1].String()})
	}
	if s.Camera != nil {
		table.Append([]string{" ", " ", " "})
		table.Append([]string{"Camera", "---", fmt.Sprintf("%gx%g", s.Camera.Width, s.Camera.Height)})
		table.Append([]string{"", "Intrinsics", s.Camera.Intrinsics.String()})
	}
	table.SetFooter([]string{"Scene", " ", s.Name})

	table.Render()
	return buf.String()
}
