package systems

import (
	"fmt"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// NodeID indexes a node in a SceneGraph.
type NodeID int

// NoNode marks a root node's missing parent.
const NoNode NodeID = -1

// NodeKind describes what a scene node carries.
type NodeKind uint8

const (
	NodeBody  NodeKind = iota // Sphere driven by an orbiting body
	NodePivot                 // Orbital-plane tilt for a satellite, no payload
	NodeRing                  // Annulus riding its parent unchanged
)

// Up is the world up axis and the spin axis of every body.
var Up = r3.Vec{Y: 1}

// Transform is a rigid transform: rotate, then translate.
// The zero value is the identity.
type Transform struct {
	Translation r3.Vec
	Rotation    r3.Rotation
}

// IdentityRotation leaves vectors unchanged.
var IdentityRotation = r3.Rotation(quat.Number{Real: 1})

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Rotation: IdentityRotation}
}

// RotationY returns a rotation by angle about the Y axis.
func RotationY(angle float64) r3.Rotation {
	return r3.NewRotation(angle, Up)
}

// RotationX returns a rotation by angle about the X axis.
func RotationX(angle float64) r3.Rotation {
	return r3.NewRotation(angle, r3.Vec{X: 1})
}

// rotation returns the transform's rotation, treating the zero quaternion as identity.
func (t Transform) rotation() r3.Rotation {
	if t.Rotation == (r3.Rotation{}) {
		return IdentityRotation
	}
	return t.Rotation
}

// Apply maps a point from the transform's local frame to its parent frame.
func (t Transform) Apply(p r3.Vec) r3.Vec {
	return r3.Add(t.rotation().Rotate(p), t.Translation)
}

// Rotate maps a direction from the local frame to the parent frame.
func (t Transform) Rotate(v r3.Vec) r3.Vec {
	return t.rotation().Rotate(v)
}

// Compose returns the transform equivalent to applying child first, then t.
func (t Transform) Compose(child Transform) Transform {
	return Transform{
		Translation: t.Apply(child.Translation),
		Rotation:    r3.Rotation(quat.Mul(quat.Number(t.rotation()), quat.Number(child.rotation()))),
	}
}

// Node is an arena entry. Parents always precede their children.
type Node struct {
	Name   string
	Kind   NodeKind
	Parent NodeID
	Local  Transform
}

// SceneGraph is an arena of nodes with parent-index links. World transforms
// can be queried for any node at any time without a render pass.
type SceneGraph struct {
	nodes []Node
	world []Transform
}

// NewSceneGraph creates an empty graph.
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{}
}

// AddNode appends a node. The parent must already exist, which keeps the
// arena acyclic and topologically ordered.
func (g *SceneGraph) AddNode(parent NodeID, kind NodeKind, name string, local Transform) NodeID {
	if parent != NoNode && (parent < 0 || int(parent) >= len(g.nodes)) {
		panic(fmt.Sprintf("systems: parent node %d does not exist", parent))
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, Node{Name: name, Kind: kind, Parent: parent, Local: local})
	g.world = append(g.world, Identity())
	g.world[id] = g.WorldTransform(id)
	return id
}

// Len returns the number of nodes.
func (g *SceneGraph) Len() int {
	return len(g.nodes)
}

// Node returns a node by ID.
func (g *SceneGraph) Node(id NodeID) *Node {
	return &g.nodes[id]
}

// SetLocal replaces a node's local transform.
func (g *SceneGraph) SetLocal(id NodeID, local Transform) {
	g.nodes[id].Local = local
}

// WorldTransform composes the node's ancestors with its local transform.
func (g *SceneGraph) WorldTransform(id NodeID) Transform {
	n := &g.nodes[id]
	if n.Parent == NoNode {
		return n.Local
	}
	return g.WorldTransform(n.Parent).Compose(n.Local)
}

// WorldPosition returns the world-space origin of a node.
func (g *SceneGraph) WorldPosition(id NodeID) r3.Vec {
	return g.WorldTransform(id).Translation
}

// Resolve recomputes the world transform of every node in one pass and
// returns them indexed by NodeID. The slice is reused between calls.
func (g *SceneGraph) Resolve() []Transform {
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.Parent == NoNode {
			g.world[i] = n.Local
		} else {
			g.world[i] = g.world[n.Parent].Compose(n.Local)
		}
	}
	return g.world
}

// Resolved returns the world transforms from the last Resolve.
func (g *SceneGraph) Resolved(id NodeID) Transform {
	return g.world[id]
}
