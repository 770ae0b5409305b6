package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/renderer"
)

// Node is one element of a model's hierarchy. It owns its children
// exclusively and references its meshes without owning them; the model owns
// the meshes. The base transform is fixed at build time, the applied
// transform is a runtime pose edit that defaults to identity.
//
// Transform composition is column-vector: accumulated = parent * base *
// applied, so the applied pose acts in the node's local space before the
// hierarchy above it.
type Node struct {
	id       int
	name     string
	base     mgl32.Mat4
	applied  mgl32.Mat4
	meshes   []*Mesh
	children []*Node
	attached bool
}

func NewNode(id int, name string, meshes []*Mesh, base mgl32.Mat4) *Node {
	return &Node{
		id:      id,
		name:    name,
		base:    base,
		applied: mgl32.Ident4(),
		meshes:  meshes,
	}
}

// Draw walks the subtree depth-first in child insertion order, feeding every
// mesh the accumulated transform for its node. Siblings receive the same
// parent matrix.
func (n *Node) Draw(device renderer.Device, parent mgl32.Mat4) {
	accumulated := parent.Mul4(n.base).Mul4(n.applied)

	for _, m := range n.meshes {
		m.Draw(device, accumulated)
	}
	for _, c := range n.children {
		c.Draw(device, accumulated)
	}
}

// SetAppliedTransform replaces the applied transform outright. It takes
// effect on the next draw.
func (n *Node) SetAppliedTransform(transform mgl32.Mat4) {
	n.applied = transform
}

func (n *Node) AppliedTransform() mgl32.Mat4 {
	return n.applied
}

func (n *Node) BaseTransform() mgl32.Mat4 {
	return n.base
}

// AddChild transfers exclusive ownership of child into this node's child
// list. A node can only ever be attached once; the tree stays acyclic
// because an attached node is never accepted again.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		err := fmt.Errorf("node '%s': cannot add nil child", n.name)
		core.LogError(err.Error())
		return err
	}
	if child == n {
		err := fmt.Errorf("node '%s': cannot add itself as a child", n.name)
		core.LogError(err.Error())
		return err
	}
	if child.attached {
		err := fmt.Errorf("node '%s' is already attached to a parent", child.name)
		core.LogError(err.Error())
		return err
	}
	child.attached = true
	n.children = append(n.children, child)
	return nil
}

func (n *Node) ID() int {
	return n.id
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) Meshes() []*Mesh {
	return n.meshes
}

// Walk visits the subtree in depth-first preorder. The visitor returns
// whether to descend into the node's children; it must not mutate
// transforms. This is the traversal the inspector UI builds its tree from.
func (n *Node) Walk(visit func(node *Node, depth int) bool) {
	n.walk(visit, 0)
}

func (n *Node) walk(visit func(node *Node, depth int) bool, depth int) {
	if !visit(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(visit, depth+1)
	}
}

func (n *Node) find(id int) *Node {
	if n.id == id {
		return n
	}
	for _, c := range n.children {
		if found := c.find(id); found != nil {
			return found
		}
	}
	return nil
}
