package bindable

import (
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// Sampler binds the filtering and addressing mode for all texture slots.
type Sampler struct {
	filter metadata.TextureFilter
	repeat metadata.TextureRepeat
}

func NewSampler(filter metadata.TextureFilter, repeat metadata.TextureRepeat) *Sampler {
	return &Sampler{
		filter: filter,
		repeat: repeat,
	}
}

func (s *Sampler) Kind() Kind {
	return KindSampler
}

func (s *Sampler) Bind(device renderer.Device) {
	device.BindSampler(s.filter, s.repeat)
}
