package testbed

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/skyhook/engine/animation"
	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
	"github.com/spaghettifunk/skyhook/engine/scene"
)

// Sub-mesh names looked up in the helicopter model.
const (
	PartBody      = "body"
	PartDoor      = "door"
	PartMainRotor = "main_rotor"
	PartTailRotor = "tail_rotor"
)

// GeometrySource uploads a mesh once per name.
type GeometrySource interface {
	Acquire(name string, mesh *metadata.MeshData) (*metadata.Geometry, error)
}

type FleetConfig struct {
	Count          int
	TimeOffset     float64
	Altitude       float32
	MainRotorSpeed float32
	TailRotorSpeed float32
}

// AssembleScene adds the terrain and the helicopter fleet under the root of
// g and returns the driver that animates the fleet.
func AssembleScene(g *scene.Graph, geometry GeometrySource, terrain, helicopter *metadata.Model, fleet FleetConfig) (*animation.HelicopterDriver, error) {
	terrainNode, err := g.CreateChild(g.Root(), terrain.Name)
	if err != nil {
		return nil, err
	}
	for _, mesh := range terrain.Meshes {
		if err := attachMesh(g, geometry, terrainNode, terrain.Name, mesh); err != nil {
			return nil, err
		}
	}

	parts := make(map[string]*metadata.MeshData, 4)
	for _, part := range []string{PartBody, PartDoor, PartMainRotor, PartTailRotor} {
		mesh, err := findPart(helicopter, part)
		if err != nil {
			return nil, err
		}
		parts[part] = mesh
	}

	// Rotations pivot on the mesh origin. Moving parts are recentred and
	// their offset from the body goes into the node position.
	pivots := map[string]math.Vec3{
		PartDoor:      math.NewVec3Zero(),
		PartMainRotor: math.NewVec3(0, 1, 0),
		PartTailRotor: math.NewVec3(1, 0, 0),
	}
	offsets := make(map[string]math.Vec3, len(pivots))
	for part := range pivots {
		centered, center := centerMesh(parts[part])
		parts[part] = centered
		offsets[part] = center
	}

	driver := &animation.HelicopterDriver{
		MainRotorSpeed: fleet.MainRotorSpeed,
		TailRotorSpeed: fleet.TailRotorSpeed,
		Altitude:       fleet.Altitude,
	}
	for i := 0; i < fleet.Count; i++ {
		rig, err := addHelicopter(g, geometry, helicopter.Name, i, parts, offsets, pivots)
		if err != nil {
			return nil, err
		}
		rig.TimeOffset = float64(i) * fleet.TimeOffset
		driver.Rigs = append(driver.Rigs, rig)
	}

	core.LogInfo("scene assembled: %d terrain meshes, %d helicopters", len(terrain.Meshes), fleet.Count)
	return driver, nil
}

func addHelicopter(g *scene.Graph, geometry GeometrySource, model string, index int, parts map[string]*metadata.MeshData, offsets, pivots map[string]math.Vec3) (animation.Rig, error) {
	rig := animation.Rig{}

	body, err := g.CreateChild(g.Root(), fmt.Sprintf("helicopter_%d", index))
	if err != nil {
		return rig, err
	}
	if err := drawable(g, geometry, body, model, parts[PartBody]); err != nil {
		return rig, err
	}
	// Unit components make pitch, yaw and roll plain axis rotations.
	if err := g.SetReferencePoint(body, math.NewVec3One()); err != nil {
		return rig, err
	}
	rig.Body = body

	children := []struct {
		part string
		id   *scene.NodeID
	}{
		{PartDoor, &rig.Door},
		{PartMainRotor, &rig.MainRotor},
		{PartTailRotor, &rig.TailRotor},
	}
	for _, c := range children {
		id, err := g.CreateChild(body, fmt.Sprintf("helicopter_%d/%s", index, c.part))
		if err != nil {
			return rig, err
		}
		if err := drawable(g, geometry, id, model, parts[c.part]); err != nil {
			return rig, err
		}
		// translation is position + reference, the pivot must not move the part
		ref := pivots[c.part]
		if err := g.SetReferencePoint(id, ref); err != nil {
			return rig, err
		}
		if err := g.SetPosition(id, offsets[c.part].Sub(ref)); err != nil {
			return rig, err
		}
		*c.id = id
	}
	return rig, nil
}

func attachMesh(g *scene.Graph, geometry GeometrySource, parent scene.NodeID, model string, mesh *metadata.MeshData) error {
	id, err := g.CreateChild(parent, model+"/"+mesh.Name)
	if err != nil {
		return err
	}
	return drawable(g, geometry, id, model, mesh)
}

func drawable(g *scene.Graph, geometry GeometrySource, id scene.NodeID, model string, mesh *metadata.MeshData) error {
	geo, err := geometry.Acquire(model+"/"+mesh.Name, mesh)
	if err != nil {
		return err
	}
	return g.SetDrawable(id, geo.ID, geo.IndexCount)
}

// findPart matches the sub-mesh named part, or else the only one whose
// name contains it.
func findPart(model *metadata.Model, part string) (*metadata.MeshData, error) {
	if mesh, err := model.Mesh(part); err == nil {
		return mesh, nil
	}
	var found *metadata.MeshData
	for _, mesh := range model.Meshes {
		if strings.Contains(strings.ToLower(mesh.Name), part) {
			if found != nil {
				return nil, fmt.Errorf("%w: model %s has several meshes matching %q", core.ErrMissingMesh, model.Name, part)
			}
			found = mesh
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: model %s has no %q mesh (has %v)", core.ErrMissingMesh, model.Name, part, model.MeshNames())
	}
	return found, nil
}

// centerMesh returns a copy of mesh moved so its bounding box is centred
// on the origin, and the centre it was moved from.
func centerMesh(mesh *metadata.MeshData) (*metadata.MeshData, math.Vec3) {
	center := mesh.Extents().Center()
	out := *mesh
	out.Positions = make([]math.Vec3, len(mesh.Positions))
	for i, p := range mesh.Positions {
		out.Positions[i] = p.Sub(center)
	}
	return &out, center
}
