package bindable

import (
	"fmt"

	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// VertexBuffer holds the vertex data for one piece of geometry, keyed by a
// mesh tag so identical geometry referenced twice collapses to one entry.
type VertexBuffer struct {
	tag      string
	vertices []metadata.Vertex3D
}

func NewVertexBuffer(tag string, vertices []metadata.Vertex3D) (*VertexBuffer, error) {
	if tag == "" {
		return nil, fmt.Errorf("vertex buffer requires a non-empty tag")
	}
	if len(vertices) == 0 {
		return nil, fmt.Errorf("vertex buffer '%s' requires at least one vertex", tag)
	}
	return &VertexBuffer{
		tag:      tag,
		vertices: vertices,
	}, nil
}

func (vb *VertexBuffer) Kind() Kind {
	return KindVertexBuffer
}

func (vb *VertexBuffer) Bind(device renderer.Device) {
	device.BindVertexBuffer(vb.tag, vb.vertices)
}

func (vb *VertexBuffer) Tag() string {
	return vb.tag
}

// IndexBuffer holds triangle indices and carries the draw count for the
// drawable it is attached to.
type IndexBuffer struct {
	tag     string
	indices []uint32
}

func NewIndexBuffer(tag string, indices []uint32) (*IndexBuffer, error) {
	if tag == "" {
		return nil, fmt.Errorf("index buffer requires a non-empty tag")
	}
	return &IndexBuffer{
		tag:     tag,
		indices: indices,
	}, nil
}

func (ib *IndexBuffer) Kind() Kind {
	return KindIndexBuffer
}

func (ib *IndexBuffer) Bind(device renderer.Device) {
	device.BindIndexBuffer(ib.tag, ib.indices)
}

func (ib *IndexBuffer) Count() uint32 {
	return uint32(len(ib.indices))
}

func (ib *IndexBuffer) Tag() string {
	return ib.tag
}
