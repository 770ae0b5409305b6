package bindable

import (
	"fmt"
	"os"

	"github.com/spaghettifunk/vetro/engine/renderer"
)

// VertexShader is an opaque shader program for the vertex stage. The source
// bytes are whatever the device consumes; this layer never compiles them.
type VertexShader struct {
	name   string
	source []byte
}

func NewVertexShader(name, path string) (*VertexShader, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vertex shader '%s': %w", path, err)
	}
	return &VertexShader{
		name:   name,
		source: source,
	}, nil
}

func (vs *VertexShader) Kind() Kind {
	return KindVertexShader
}

func (vs *VertexShader) Bind(device renderer.Device) {
	device.BindVertexShader(vs.name, vs.source)
}

func (vs *VertexShader) Name() string {
	return vs.name
}

// PixelShader is an opaque shader program for the pixel stage.
type PixelShader struct {
	name   string
	source []byte
}

func NewPixelShader(name, path string) (*PixelShader, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pixel shader '%s': %w", path, err)
	}
	return &PixelShader{
		name:   name,
		source: source,
	}, nil
}

func (ps *PixelShader) Kind() Kind {
	return KindPixelShader
}

func (ps *PixelShader) Bind(device renderer.Device) {
	device.BindPixelShader(ps.name, ps.source)
}

func (ps *PixelShader) Name() string {
	return ps.name
}
