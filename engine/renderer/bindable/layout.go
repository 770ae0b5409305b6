package bindable

import (
	"fmt"

	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// InputLayout maps the vertex attributes to a vertex shader's inputs. It is
// keyed by the layout signature plus the shader name.
type InputLayout struct {
	shaderName string
	elements   []metadata.InputElement
}

func NewInputLayout(elements []metadata.InputElement, shader *VertexShader) (*InputLayout, error) {
	if len(elements) == 0 {
		return nil, fmt.Errorf("input layout requires at least one element")
	}
	if shader == nil {
		return nil, fmt.Errorf("input layout requires a vertex shader")
	}
	return &InputLayout{
		shaderName: shader.Name(),
		elements:   elements,
	}, nil
}

func (il *InputLayout) Kind() Kind {
	return KindInputLayout
}

func (il *InputLayout) Bind(device renderer.Device) {
	device.BindInputLayout(il.shaderName, il.elements)
}

// LayoutSignature derives the discriminating key part for a set of elements.
func LayoutSignature(elements []metadata.InputElement) string {
	sig := ""
	for i, e := range elements {
		if i > 0 {
			sig += ","
		}
		sig += e.Semantic
	}
	return sig
}
