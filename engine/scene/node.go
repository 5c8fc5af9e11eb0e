package scene

import (
	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

// NodeID addresses a node inside its Graph.
type NodeID int

const InvalidNode NodeID = -1

// Node is one element of the scene tree. Local parameters are relative to
// the parent; the world matrix is only valid right after Propagate.
type Node struct {
	Name string

	// Geometry and IndexCount describe what the node draws. A node is
	// drawn only when IndexCount > 0.
	Geometry   metadata.GeometryHandle
	IndexCount int32

	transform math.Transform
	world     math.Mat4
	parent    NodeID
	children  []NodeID
}

func newNode(name string) *Node {
	return &Node{
		Name:       name,
		Geometry:   metadata.InvalidGeometry,
		IndexCount: -1,
		transform:  *math.TransformCreate(),
		world:      math.NewMat4Identity(),
		parent:     InvalidNode,
	}
}

func (n *Node) IsDrawable() bool {
	return n.IndexCount > 0
}

func (n *Node) Position() math.Vec3 {
	return n.transform.Position
}

func (n *Node) SetPosition(p math.Vec3) {
	n.transform.SetPosition(p)
}

func (n *Node) Translate(offset math.Vec3) {
	n.transform.Translate(offset)
}

func (n *Node) Rotation() math.Vec3 {
	return n.transform.Rotation
}

// SetRotation takes per-axis angles in radians.
func (n *Node) SetRotation(r math.Vec3) {
	n.transform.SetRotation(r)
}

func (n *Node) ReferencePoint() math.Vec3 {
	return n.transform.ReferencePoint
}

func (n *Node) SetReferencePoint(r math.Vec3) {
	n.transform.SetReferencePoint(r)
}

func (n *Node) Scale() math.Vec3 {
	return n.transform.Scale
}

func (n *Node) SetScale(s math.Vec3) {
	n.transform.SetScale(s)
}

// Local returns the local matrix for the current parameters.
func (n *Node) Local() math.Mat4 {
	return n.transform.GetLocal()
}

// World returns the world matrix computed by the last Propagate.
func (n *Node) World() math.Mat4 {
	return n.world
}

func (n *Node) Parent() NodeID {
	return n.parent
}
