package bindable

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/vetro/engine/renderer"
)

// Kind enumerates the closed set of pipeline-state resources.
type Kind int

const (
	KindVertexBuffer Kind = iota
	KindIndexBuffer
	KindVertexShader
	KindPixelShader
	KindTexture
	KindSampler
	KindConstantBuffer
	KindTopology
	KindInputLayout
)

func (k Kind) String() string {
	switch k {
	case KindVertexBuffer:
		return "vertex_buffer"
	case KindIndexBuffer:
		return "index_buffer"
	case KindVertexShader:
		return "vertex_shader"
	case KindPixelShader:
		return "pixel_shader"
	case KindTexture:
		return "texture"
	case KindSampler:
		return "sampler"
	case KindConstantBuffer:
		return "constant_buffer"
	case KindTopology:
		return "topology"
	case KindInputLayout:
		return "input_layout"
	default:
		return "unknown"
	}
}

// Bindable is one piece of GPU-bound pipeline state. Bindables resolved
// through a Codex are shared across drawables and must not be mutated after
// construction.
type Bindable interface {
	Kind() Kind
	Bind(device renderer.Device)
}

// IndexProvider is a bindable that carries the element count for an indexed
// draw call.
type IndexProvider interface {
	Bindable
	Count() uint32
}

// TransformSource supplies the model matrix a TransformBuffer uploads at
// bind time. A mesh is the usual implementation.
type TransformSource interface {
	Transform() mgl32.Mat4
}
