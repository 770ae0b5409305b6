package metadata

import (
	"github.com/go-gl/mathgl/mgl32"
)

/**
 * @brief Represents a single vertex in 3D space.
 */
type Vertex3D struct {
	/** @brief The position of the vertex */
	Position mgl32.Vec3
	/** @brief The normal of the vertex. */
	Normal mgl32.Vec3
	/** @brief The texture coordinate of the vertex. */
	Texcoord mgl32.Vec2
}
