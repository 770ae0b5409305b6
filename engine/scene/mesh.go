package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/bindable"
)

// Mesh is a drawable that takes its model matrix from the node traversal at
// draw time. The matrix lands in a transform buffer owned exclusively by
// this mesh, so meshes sharing cached geometry still move independently.
type Mesh struct {
	*Drawable
	transform mgl32.Mat4
}

func NewMesh(topology *bindable.Topology, index bindable.IndexProvider, shared, instance []bindable.Bindable) (*Mesh, error) {
	m := &Mesh{
		transform: mgl32.Ident4(),
	}

	withTransform := make([]bindable.Bindable, 0, len(instance)+1)
	withTransform = append(withTransform, instance...)
	withTransform = append(withTransform, bindable.NewTransformBuffer(m))

	d, err := NewDrawable(topology, index, shared, withTransform)
	if err != nil {
		return nil, err
	}
	m.Drawable = d
	return m, nil
}

// Draw stores the accumulated transform, overwriting any previous value,
// then binds the full resource set and submits the draw. The transform
// buffer reads the freshly stored matrix during binding.
func (m *Mesh) Draw(device renderer.Device, accumulated mgl32.Mat4) {
	m.transform = accumulated
	m.Drawable.Draw(device)
}

// Transform returns the most recently stored accumulated transform, or the
// identity before the first draw.
func (m *Mesh) Transform() mgl32.Mat4 {
	return m.transform
}
