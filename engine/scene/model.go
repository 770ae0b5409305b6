package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/renderer"
)

// Model owns a flat collection of meshes and the root of the node tree
// built over them. Nodes reference meshes, never own them; destroying the
// model drops the tree and the meshes together, while cached resources the
// meshes reference live on in the codex for other models.
type Model struct {
	name      string
	meshes    []*Mesh
	root      *Node
	inspector *Inspector
}

func NewModel(name string, meshes []*Mesh, root *Node) (*Model, error) {
	if root == nil {
		err := fmt.Errorf("model '%s' requires a root node", name)
		core.LogError(err.Error())
		return nil, err
	}
	return &Model{
		name:      name,
		meshes:    meshes,
		root:      root,
		inspector: newInspector(root),
	}, nil
}

// Draw applies any pending pose edit to the selected node, then walks the
// tree from the root with the identity as the starting parent transform.
func (m *Model) Draw(device renderer.Device) {
	m.inspector.Apply()
	m.root.Draw(device, mgl32.Ident4())
}

func (m *Model) Name() string {
	return m.name
}

func (m *Model) Root() *Node {
	return m.root
}

func (m *Model) Meshes() []*Mesh {
	return m.meshes
}

// Inspector returns the pose-editing surface for this model's node tree.
func (m *Model) Inspector() *Inspector {
	return m.inspector
}

// Node finds a node by identifier, or nil.
func (m *Model) Node(id int) *Node {
	return m.root.find(id)
}
