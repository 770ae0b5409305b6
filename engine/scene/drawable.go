package scene

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/bindable"
)

// Drawable is one renderable unit: an ordered set of pipeline-state
// resources plus exactly one topology and one index resource. The binding
// set is fixed at construction. Shared resources come out of the codex and
// are referenced, never owned; instance resources belong to this drawable
// alone.
type Drawable struct {
	id       uuid.UUID
	topology *bindable.Topology
	index    bindable.IndexProvider
	shared   []bindable.Bindable
	instance []bindable.Bindable
}

// NewDrawable wires a binding set together. The topology and index resource
// are named arguments so their cardinality holds by construction; a topology
// or index resource smuggled into the shared or instance lists is a contract
// violation.
func NewDrawable(topology *bindable.Topology, index bindable.IndexProvider, shared, instance []bindable.Bindable) (*Drawable, error) {
	if topology == nil {
		err := fmt.Errorf("drawable requires a topology resource")
		core.LogError(err.Error())
		return nil, err
	}
	if index == nil {
		err := fmt.Errorf("drawable requires an index resource")
		core.LogError(err.Error())
		return nil, err
	}
	for _, b := range shared {
		if err := rejectReserved(b); err != nil {
			return nil, err
		}
	}
	for _, b := range instance {
		if err := rejectReserved(b); err != nil {
			return nil, err
		}
	}

	return &Drawable{
		id:       uuid.New(),
		topology: topology,
		index:    index,
		shared:   shared,
		instance: instance,
	}, nil
}

func rejectReserved(b bindable.Bindable) error {
	if b == nil {
		err := fmt.Errorf("drawable binding set contains a nil resource")
		core.LogError(err.Error())
		return err
	}
	if b.Kind() == bindable.KindTopology || b.Kind() == bindable.KindIndexBuffer {
		err := fmt.Errorf("resource of kind %s must be passed as its named argument, not in a binding list", b.Kind())
		core.LogError(err.Error())
		return err
	}
	return nil
}

// Draw binds every resource in fixed order (topology, shared set, index
// buffer, instance set) and issues one indexed draw using the index
// resource's count.
func (d *Drawable) Draw(device renderer.Device) {
	d.topology.Bind(device)
	for _, b := range d.shared {
		b.Bind(device)
	}
	d.index.Bind(device)
	for _, b := range d.instance {
		b.Bind(device)
	}
	device.DrawIndexed(d.index.Count())
}

func (d *Drawable) ID() uuid.UUID {
	return d.id
}

func (d *Drawable) IndexCount() uint32 {
	return d.index.Count()
}
