package bindable

import (
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// MaterialBuffer binds a pixel-stage material constant block. Materials with
// equal constants share one entry through the codex.
type MaterialBuffer struct {
	slot      uint32
	constants metadata.MaterialConstants
}

func NewMaterialBuffer(constants metadata.MaterialConstants, slot uint32) *MaterialBuffer {
	return &MaterialBuffer{
		slot:      slot,
		constants: constants,
	}
}

func (mb *MaterialBuffer) Kind() Kind {
	return KindConstantBuffer
}

func (mb *MaterialBuffer) Bind(device renderer.Device) {
	device.BindMaterial(mb.slot, mb.constants)
}

func (mb *MaterialBuffer) Constants() metadata.MaterialConstants {
	return mb.constants
}

// TransformBuffer uploads the model matrix of its source at bind time. It is
// inherently per-instance: two drawables sharing geometry still need their
// own transform, so a TransformBuffer is never resolved through the codex.
type TransformBuffer struct {
	source TransformSource
}

func NewTransformBuffer(source TransformSource) *TransformBuffer {
	return &TransformBuffer{
		source: source,
	}
}

func (tb *TransformBuffer) Kind() Kind {
	return KindConstantBuffer
}

func (tb *TransformBuffer) Bind(device renderer.Device) {
	device.BindTransform(tb.source.Transform())
}
