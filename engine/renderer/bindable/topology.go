package bindable

import (
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// Topology binds the primitive topology. Every drawable carries exactly one.
type Topology struct {
	topology metadata.PrimitiveTopology
}

func NewTopology(topology metadata.PrimitiveTopology) *Topology {
	return &Topology{
		topology: topology,
	}
}

func (t *Topology) Kind() Kind {
	return KindTopology
}

func (t *Topology) Bind(device renderer.Device) {
	device.BindTopology(t.topology)
}
