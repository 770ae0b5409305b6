package metadata

/** @brief Primitive topologies understood by the device. */
type PrimitiveTopology int

const (
	PrimitiveTopologyTriangleList PrimitiveTopology = 0x0
	PrimitiveTopologyTriangleFan  PrimitiveTopology = 0x1
	PrimitiveTopologyLineList     PrimitiveTopology = 0x2
	PrimitiveTopologyPointList    PrimitiveTopology = 0x3
)

func (t PrimitiveTopology) String() string {
	switch t {
	case PrimitiveTopologyTriangleList:
		return "triangle_list"
	case PrimitiveTopologyTriangleFan:
		return "triangle_fan"
	case PrimitiveTopologyLineList:
		return "line_list"
	case PrimitiveTopologyPointList:
		return "point_list"
	default:
		return "unknown"
	}
}

/** @brief Vertex attribute formats for input layout elements. */
type AttributeFormat int

const (
	AttributeFormatFloat32_2 AttributeFormat = 0x0
	AttributeFormatFloat32_3 AttributeFormat = 0x1
)

// InputElement describes one vertex attribute fed to the vertex shader.
type InputElement struct {
	Semantic string
	Format   AttributeFormat
}
