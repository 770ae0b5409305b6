package metadata

/** @brief Texture sampler filter modes. */
type TextureFilter int

const (
	TextureFilterModeNearest TextureFilter = 0x0
	TextureFilterModeLinear  TextureFilter = 0x1
)

type TextureRepeat int

const (
	TextureRepeatRepeat         TextureRepeat = 0x1
	TextureRepeatMirroredRepeat TextureRepeat = 0x2
	TextureRepeatClampToEdge    TextureRepeat = 0x3
	TextureRepeatClampToBorder  TextureRepeat = 0x4
)

// TextureData is decoded pixel data ready for upload, always 4-channel RGBA.
type TextureData struct {
	Name            string
	Width           uint32
	Height          uint32
	ChannelCount    uint8
	HasTransparency bool
	Pixels          []uint8
}

// ParseTextureFilter maps a config name to a filter mode, defaulting to linear.
func ParseTextureFilter(name string) TextureFilter {
	if name == "nearest" {
		return TextureFilterModeNearest
	}
	return TextureFilterModeLinear
}

// ParseTextureRepeat maps a config name to a repeat mode, defaulting to repeat.
func ParseTextureRepeat(name string) TextureRepeat {
	switch name {
	case "mirrored_repeat":
		return TextureRepeatMirroredRepeat
	case "clamp_to_edge":
		return TextureRepeatClampToEdge
	case "clamp_to_border":
		return TextureRepeatClampToBorder
	default:
		return TextureRepeatRepeat
	}
}
