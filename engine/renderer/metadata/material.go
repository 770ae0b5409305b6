package metadata

import (
	"github.com/go-gl/mathgl/mgl32"
)

/** @brief Shininess used when a material carries no specular map and no explicit value. */
const DefaultShininess float32 = 35.0

/** @brief Specular intensity used for textured materials without a specular map. */
const DefaultSpecularIntensity float32 = 0.8

/** @brief Diffuse colour used for materials without any texture maps. */
var DefaultDiffuseColour = mgl32.Vec3{0.6, 0.6, 0.8}

// MaterialConstants is the pixel-stage constant block for materials that do
// not source their specular term from a texture.
type MaterialConstants struct {
	DiffuseColour     mgl32.Vec3
	SpecularIntensity float32
	SpecularPower     float32
}
