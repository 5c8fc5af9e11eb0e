package animation

import (
	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/scene"
)

// Rig names the nodes of one helicopter. TimeOffset shifts the rig along
// the shared path so a fleet does not overlap.
type Rig struct {
	Body       scene.NodeID
	MainRotor  scene.NodeID
	TailRotor  scene.NodeID
	Door       scene.NodeID
	TimeOffset float64
}

// HelicopterDriver flies every rig along Path and spins its rotors.
// Rotor angles are derived from the accumulated time, not from frame
// deltas, so a frame only depends on elapsed.
type HelicopterDriver struct {
	Rigs           []Rig
	Path           Trajectory
	MainRotorSpeed float32
	TailRotorSpeed float32
	Altitude       float32
}

func (d *HelicopterDriver) Animate(g *scene.Graph, elapsed float64) {
	path := d.Path
	if path == nil {
		path = SimpleHeading
	}
	for _, rig := range d.Rigs {
		t := elapsed + rig.TimeOffset
		if n := g.Node(rig.MainRotor); n != nil {
			r := n.Rotation()
			r.Y = float32(t * float64(d.MainRotorSpeed))
			n.SetRotation(r)
		}
		if n := g.Node(rig.TailRotor); n != nil {
			r := n.Rotation()
			r.X = float32(t * float64(d.TailRotorSpeed))
			n.SetRotation(r)
		}
		if n := g.Node(rig.Body); n != nil {
			h := path(t)
			// the reference point is added to the translation, take it back out
			n.SetPosition(math.NewVec3(h.X, d.Altitude, h.Z).Sub(n.ReferencePoint()))
			n.SetRotation(math.NewVec3(h.Pitch, h.Yaw, h.Roll))
		}
	}
}
