package bindable

import (
	"fmt"

	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// Texture binds decoded pixel data to one texture slot. Slot 0 is the
// diffuse map, slot 1 the specular map; the slot is part of the resource
// identity since the same image may be bound at different slots.
type Texture struct {
	slot uint32
	data *metadata.TextureData
}

func NewTexture(data *metadata.TextureData, slot uint32) (*Texture, error) {
	if data == nil || len(data.Pixels) == 0 {
		return nil, fmt.Errorf("texture at slot %d requires decoded pixel data", slot)
	}
	return &Texture{
		slot: slot,
		data: data,
	}, nil
}

func (t *Texture) Kind() Kind {
	return KindTexture
}

func (t *Texture) Bind(device renderer.Device) {
	device.BindTexture(t.slot, t.data)
}

func (t *Texture) Slot() uint32 {
	return t.slot
}

func (t *Texture) HasTransparency() bool {
	return t.data.HasTransparency
}
