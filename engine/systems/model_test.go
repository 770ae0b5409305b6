package systems

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vetro/engine/assets"
	"github.com/spaghettifunk/vetro/engine/config"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/bindable"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// newTestModelSystem builds a model system over a temporary asset root
// populated with the default shader files plus any named textures. All files
// land on disk before the asset manager starts watching, so registration
// never races the watch goroutine.
func newTestModelSystem(t *testing.T, textures ...string) (*ModelSystem, *bindable.Codex) {
	t.Helper()
	base := t.TempDir()

	shaderDir := filepath.Join(base, "shaders")
	require.NoError(t, os.MkdirAll(shaderDir, 0o755))
	cfg := config.Default()
	for _, name := range []string{cfg.Shaders.VertexShader, cfg.Shaders.PixelShader, cfg.Shaders.SpecularPixelShader} {
		require.NoError(t, os.WriteFile(filepath.Join(shaderDir, name), []byte("#version 450\n"), 0o644))
	}

	if len(textures) > 0 {
		textureDir := filepath.Join(base, "textures")
		require.NoError(t, os.MkdirAll(textureDir, 0o755))
		for _, name := range textures {
			require.NoError(t, os.WriteFile(filepath.Join(textureDir, name), encodePNG(t), 0o644))
		}
	}

	am, err := assets.NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(base))
	t.Cleanup(func() { am.Shutdown() })

	codex := bindable.NewCodex()
	ms, err := NewModelSystem(cfg, codex, am)
	require.NoError(t, err)
	return ms, codex
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 30, G: 200, B: 30, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{R: 30, G: 30, B: 200, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func triangleMesh(name string) assets.MeshDescription {
	return assets.MeshDescription{
		Name:      name,
		Positions: [][]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:   [][]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Indices:   []uint32{0, 1, 2},
	}
}

func texturedTriangleMesh(name, diffuse, specular string) assets.MeshDescription {
	md := triangleMesh(name)
	md.Texcoords = [][]float32{{0, 0}, {1, 0}, {0, 1}}
	md.Material.DiffuseMap = diffuse
	md.Material.SpecularMap = specular
	return md
}

func TestBuildSharesGeometryBetweenIdenticalMeshes(t *testing.T) {
	ms, codex := newTestModelSystem(t)

	desc := &assets.SceneDescription{
		Name:   "twins",
		Source: "scenes/twins.toml",
		Meshes: []assets.MeshDescription{triangleMesh("tri"), triangleMesh("tri")},
		Root: assets.NodeDescription{
			Name: "root",
			Children: []assets.NodeDescription{
				{Name: "left", Transform: translateRowMajor(-2, 0, 0), MeshIndexes: []int{0}},
				{Name: "right", Transform: translateRowMajor(2, 0, 0), MeshIndexes: []int{1}},
			},
		},
	}

	model, err := ms.BuildFromDescription(desc)
	require.NoError(t, err)

	// Both meshes describe the same geometry under the same tag, so the
	// codex holds one entry per resource: topology, vertex buffer, index
	// buffer, vertex shader, input layout, pixel shader, material constants.
	assert.Equal(t, 7, codex.Len())
	assert.True(t, codex.Has(bindable.Key(bindable.KindVertexBuffer, "scenes/twins.toml$tri")))
	assert.True(t, codex.Has(bindable.Key(bindable.KindIndexBuffer, "scenes/twins.toml$tri")))

	// Shared buffers do not mean shared placement: each node still draws at
	// its own accumulated transform.
	device := renderer.NewHeadlessDevice()
	model.Draw(device)
	require.Len(t, device.Submissions, 2)
	assert.Equal(t, mgl32.Translate3D(-2, 0, 0), device.Submissions[0].State.Transform)
	assert.Equal(t, mgl32.Translate3D(2, 0, 0), device.Submissions[1].State.Transform)
}

func TestBuildUntexturedMeshBindsColourConstants(t *testing.T) {
	ms, _ := newTestModelSystem(t)

	desc := &assets.SceneDescription{
		Source: "scenes/plain.toml",
		Meshes: []assets.MeshDescription{triangleMesh("tri")},
		Root:   assets.NodeDescription{Name: "root", MeshIndexes: []int{0}},
	}

	model, err := ms.BuildFromDescription(desc)
	require.NoError(t, err)

	device := renderer.NewHeadlessDevice()
	model.Draw(device)

	require.Len(t, device.Submissions, 1)
	state := device.Submissions[0].State
	assert.Equal(t, "phong.frag.glsl", state.PixelShader)
	assert.Empty(t, state.Textures)

	material, ok := state.Materials[1]
	require.True(t, ok)
	assert.Equal(t, metadata.DefaultDiffuseColour, material.DiffuseColour)
	assert.Equal(t, float32(0.6), material.SpecularIntensity)
	assert.Equal(t, float32(10.0), material.SpecularPower)
}

func TestBuildHonoursDescribedShininess(t *testing.T) {
	ms, _ := newTestModelSystem(t)

	md := triangleMesh("tri")
	md.Material.Shininess = 18
	desc := &assets.SceneDescription{
		Source: "scenes/shiny.toml",
		Meshes: []assets.MeshDescription{md},
		Root:   assets.NodeDescription{Name: "root", MeshIndexes: []int{0}},
	}

	model, err := ms.BuildFromDescription(desc)
	require.NoError(t, err)

	device := renderer.NewHeadlessDevice()
	model.Draw(device)

	require.Len(t, device.Submissions, 1)
	material, ok := device.Submissions[0].State.Materials[1]
	require.True(t, ok)
	assert.Equal(t, float32(18), material.SpecularPower)
}

func TestBuildMissingSpecularMapFallsBackToConstants(t *testing.T) {
	ms, _ := newTestModelSystem(t, "brick.png")

	desc := &assets.SceneDescription{
		Source: "scenes/brick.toml",
		Meshes: []assets.MeshDescription{texturedTriangleMesh("wall", "brick.png", "")},
		Root:   assets.NodeDescription{Name: "root", MeshIndexes: []int{0}},
	}

	model, err := ms.BuildFromDescription(desc)
	require.NoError(t, err)

	device := renderer.NewHeadlessDevice()
	model.Draw(device)

	require.Len(t, device.Submissions, 1)
	state := device.Submissions[0].State

	// Diffuse map bound, no specular map, the specular term comes from the
	// material constants and the plain phong shader runs.
	assert.Equal(t, "phong.frag.glsl", state.PixelShader)
	assert.Contains(t, state.Textures, uint32(0))
	assert.NotContains(t, state.Textures, uint32(1))
	assert.Equal(t, metadata.TextureFilterModeLinear, state.SamplerFilter)

	material, ok := state.Materials[1]
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, material.DiffuseColour)
	assert.Equal(t, metadata.DefaultSpecularIntensity, material.SpecularIntensity)
	assert.Equal(t, metadata.DefaultShininess, material.SpecularPower)
}

func TestBuildSpecularMapSelectsSpecularShader(t *testing.T) {
	ms, _ := newTestModelSystem(t, "brick.png", "brick_spec.png")

	desc := &assets.SceneDescription{
		Source: "scenes/brick.toml",
		Meshes: []assets.MeshDescription{texturedTriangleMesh("wall", "brick.png", "brick_spec.png")},
		Root:   assets.NodeDescription{Name: "root", MeshIndexes: []int{0}},
	}

	model, err := ms.BuildFromDescription(desc)
	require.NoError(t, err)

	device := renderer.NewHeadlessDevice()
	model.Draw(device)

	require.Len(t, device.Submissions, 1)
	state := device.Submissions[0].State

	assert.Equal(t, "phong_specular.frag.glsl", state.PixelShader)
	assert.Contains(t, state.Textures, uint32(0))
	assert.Contains(t, state.Textures, uint32(1))
	assert.Empty(t, state.Materials, "specular-mapped materials carry no constant block")
}

func TestBuildTexturedMeshRequiresTexcoords(t *testing.T) {
	ms, _ := newTestModelSystem(t, "brick.png")

	md := triangleMesh("wall")
	md.Material.DiffuseMap = "brick.png"
	desc := &assets.SceneDescription{
		Source: "scenes/broken.toml",
		Meshes: []assets.MeshDescription{md},
		Root:   assets.NodeDescription{Name: "root", MeshIndexes: []int{0}},
	}

	_, err := ms.BuildFromDescription(desc)
	assert.Error(t, err)
}

func TestBuildMissingTextureAbortsBuild(t *testing.T) {
	ms, _ := newTestModelSystem(t)

	desc := &assets.SceneDescription{
		Source: "scenes/broken.toml",
		Meshes: []assets.MeshDescription{texturedTriangleMesh("wall", "nope.png", "")},
		Root:   assets.NodeDescription{Name: "root", MeshIndexes: []int{0}},
	}

	_, err := ms.BuildFromDescription(desc)
	assert.Error(t, err)
}

func TestBuildRejectsInvalidDescription(t *testing.T) {
	ms, _ := newTestModelSystem(t)

	badIndex := &assets.SceneDescription{
		Source: "scenes/bad.toml",
		Meshes: []assets.MeshDescription{triangleMesh("tri")},
		Root:   assets.NodeDescription{Name: "root", MeshIndexes: []int{3}},
	}
	_, err := ms.BuildFromDescription(badIndex)
	assert.Error(t, err)

	md := triangleMesh("tri")
	md.Indices = []uint32{0, 1}
	badIndices := &assets.SceneDescription{
		Source: "scenes/bad.toml",
		Meshes: []assets.MeshDescription{md},
		Root:   assets.NodeDescription{Name: "root", MeshIndexes: []int{0}},
	}
	_, err = ms.BuildFromDescription(badIndices)
	assert.Error(t, err)

	_, err = ms.BuildFromDescription(nil)
	assert.Error(t, err)
}

func TestBuildAssignsNodeIdentifiersDepthFirst(t *testing.T) {
	ms, _ := newTestModelSystem(t)

	desc := &assets.SceneDescription{
		Source: "scenes/rig.toml",
		Meshes: []assets.MeshDescription{triangleMesh("tri")},
		Root: assets.NodeDescription{
			Name: "root",
			Children: []assets.NodeDescription{
				{Name: "arm", Children: []assets.NodeDescription{{Name: "hand", MeshIndexes: []int{0}}}},
				{Name: "leg", MeshIndexes: []int{0}},
			},
		},
	}

	model, err := ms.BuildFromDescription(desc)
	require.NoError(t, err)

	for id, name := range []string{"root", "arm", "hand", "leg"} {
		node := model.Node(id)
		require.NotNil(t, node, "node %d", id)
		assert.Equal(t, name, node.Name())
	}
	assert.Nil(t, model.Node(4))
}

func TestBuildTransposesRowMajorTransforms(t *testing.T) {
	ms, _ := newTestModelSystem(t)

	desc := &assets.SceneDescription{
		Source: "scenes/rig.toml",
		Meshes: []assets.MeshDescription{triangleMesh("tri")},
		Root: assets.NodeDescription{
			Name:        "root",
			Transform:   translateRowMajor(1, 2, 3),
			MeshIndexes: []int{0},
		},
	}

	model, err := ms.BuildFromDescription(desc)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Translate3D(1, 2, 3), model.Root().BaseTransform())
}

func TestAcquireCachesModels(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()

	shaderDir := filepath.Join(base, "shaders")
	require.NoError(t, os.MkdirAll(shaderDir, 0o755))
	for _, name := range []string{cfg.Shaders.VertexShader, cfg.Shaders.PixelShader, cfg.Shaders.SpecularPixelShader} {
		require.NoError(t, os.WriteFile(filepath.Join(shaderDir, name), []byte("#version 450\n"), 0o644))
	}

	sceneDir := filepath.Join(base, "scenes")
	require.NoError(t, os.MkdirAll(sceneDir, 0o755))
	document := `name = "demo"

[[meshes]]
name = "tri"
positions = [[0.0, 0.0, 0.0], [1.0, 0.0, 0.0], [0.0, 1.0, 0.0]]
normals = [[0.0, 0.0, 1.0], [0.0, 0.0, 1.0], [0.0, 0.0, 1.0]]
indices = [0, 1, 2]

[root]
name = "root"
mesh_indexes = [0]
`
	require.NoError(t, os.WriteFile(filepath.Join(sceneDir, "demo.toml"), []byte(document), 0o644))

	am, err := assets.NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(base))
	t.Cleanup(func() { am.Shutdown() })

	ms, err := NewModelSystem(cfg, bindable.NewCodex(), am)
	require.NoError(t, err)

	first, err := ms.Acquire("demo")
	require.NoError(t, err)
	second, err := ms.Acquire("demo")
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = ms.Acquire("missing")
	assert.Error(t, err)
}

func TestNewModelSystemRequiresCodex(t *testing.T) {
	_, err := NewModelSystem(config.Default(), nil, nil)
	assert.Error(t, err)
}

func translateRowMajor(x, y, z float32) []float32 {
	return []float32{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}
