package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// Device is the pipeline surface the scene layer draws through. A backend
// implements the fixed bind-then-draw call shape: any number of Bind calls
// set pipeline state, DrawIndexed submits one draw with whatever is bound.
// A single pipeline state is active per draw.
type Device interface {
	BeginFrame() error
	EndFrame() error
	Clear(r, g, b, a float32)

	BindTopology(topology metadata.PrimitiveTopology)
	BindVertexBuffer(tag string, vertices []metadata.Vertex3D)
	BindIndexBuffer(tag string, indices []uint32)
	BindVertexShader(name string, source []byte)
	BindPixelShader(name string, source []byte)
	BindInputLayout(shaderName string, elements []metadata.InputElement)
	BindTexture(slot uint32, texture *metadata.TextureData)
	BindSampler(filter metadata.TextureFilter, repeat metadata.TextureRepeat)
	BindMaterial(slot uint32, constants metadata.MaterialConstants)
	BindTransform(model mgl32.Mat4)

	DrawIndexed(count uint32)
}
