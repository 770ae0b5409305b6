package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/spaghettifunk/vetro/engine/assets"
	"github.com/spaghettifunk/vetro/engine/assets/loaders"
	"github.com/spaghettifunk/vetro/engine/config"
	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/renderer/bindable"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
	"github.com/spaghettifunk/vetro/engine/scene"
)

const (
	diffuseSlot  uint32 = 0
	specularSlot uint32 = 1
	materialSlot uint32 = 1
)

// ModelSystem turns flat scene descriptions into models. Every shareable
// resource goes through the codex, so geometry, shaders, textures and
// samplers described identically by different meshes are constructed once.
type ModelSystem struct {
	config       *config.Config
	codex        *bindable.Codex
	assetManager *assets.AssetManager
	imageLoader  *loaders.ImageLoader
	// Built models by scene name.
	models map[string]*scene.Model
}

func NewModelSystem(cfg *config.Config, codex *bindable.Codex, am *assets.AssetManager) (*ModelSystem, error) {
	if codex == nil {
		err := fmt.Errorf("func NewModelSystem - codex must not be nil")
		core.LogError(err.Error())
		return nil, err
	}
	return &ModelSystem{
		config:       cfg,
		codex:        codex,
		assetManager: am,
		imageLoader:  &loaders.ImageLoader{},
		models:       make(map[string]*scene.Model),
	}, nil
}

// Acquire returns the model built from the named scene document, building
// it on first use. A failed build leaves no model registered.
func (ms *ModelSystem) Acquire(name string) (*scene.Model, error) {
	if m, ok := ms.models[name]; ok {
		return m, nil
	}

	desc, err := ms.assetManager.LoadScene(name)
	if err != nil {
		return nil, err
	}

	model, err := ms.BuildFromDescription(desc)
	if err != nil {
		return nil, err
	}
	ms.models[name] = model

	core.LogInfo("model '%s' built: %d meshes, codex now holds %d resources", name, len(model.Meshes()), ms.codex.Len())
	return model, nil
}

// BuildFromDescription builds a model from an already-parsed description.
// Any failure aborts the whole build; no partial model is returned.
func (ms *ModelSystem) BuildFromDescription(desc *assets.SceneDescription) (*scene.Model, error) {
	if desc == nil {
		return nil, fmt.Errorf("scene description must not be nil")
	}
	if err := desc.Validate(); err != nil {
		core.LogError("model build failed: %s", err.Error())
		return nil, err
	}

	meshes := make([]*scene.Mesh, len(desc.Meshes))
	for i := range desc.Meshes {
		m, err := ms.buildMesh(&desc.Meshes[i], desc.Source)
		if err != nil {
			core.LogError("model build failed at mesh %d: %s", i, err.Error())
			return nil, err
		}
		meshes[i] = m
	}

	nextID := 0
	root, err := ms.buildNode(&nextID, &desc.Root, meshes)
	if err != nil {
		core.LogError("model build failed: %s", err.Error())
		return nil, err
	}

	name := desc.Name
	if name == "" {
		name = desc.Source
	}
	return scene.NewModel(name, meshes, root)
}

func (ms *ModelSystem) Shutdown() error {
	ms.models = make(map[string]*scene.Model)
	return nil
}

// buildMesh resolves one mesh description's resource set through the codex
// and assembles the mesh. Vertex and index buffers are keyed by a tag
// derived from the scene source and mesh name, so a mesh described twice
// collapses to one buffer pair.
func (ms *ModelSystem) buildMesh(md *assets.MeshDescription, source string) (*scene.Mesh, error) {
	meshName := md.Name
	if meshName == "" {
		// Unnamed meshes still need a stable discriminator for this build.
		meshName = uuid.New().String()
	}
	tag := source + "$" + meshName

	textured := md.Material.DiffuseMap != ""
	if textured && len(md.Texcoords) == 0 {
		return nil, fmt.Errorf("mesh '%s' has a diffuse map but no texture coordinates", meshName)
	}

	vertices := make([]metadata.Vertex3D, len(md.Positions))
	for i := range md.Positions {
		vertices[i].Position = mgl32.Vec3{md.Positions[i][0], md.Positions[i][1], md.Positions[i][2]}
		vertices[i].Normal = mgl32.Vec3{md.Normals[i][0], md.Normals[i][1], md.Normals[i][2]}
		if len(md.Texcoords) > 0 {
			vertices[i].Texcoord = mgl32.Vec2{md.Texcoords[i][0], md.Texcoords[i][1]}
		}
	}

	topology, err := bindable.ResolveAs(ms.codex,
		bindable.Key(bindable.KindTopology, metadata.PrimitiveTopologyTriangleList.String()),
		func() (*bindable.Topology, error) {
			return bindable.NewTopology(metadata.PrimitiveTopologyTriangleList), nil
		})
	if err != nil {
		return nil, err
	}

	vertexBuffer, err := bindable.ResolveAs(ms.codex,
		bindable.Key(bindable.KindVertexBuffer, tag),
		func() (*bindable.VertexBuffer, error) {
			return bindable.NewVertexBuffer(tag, vertices)
		})
	if err != nil {
		return nil, err
	}

	indexBuffer, err := bindable.ResolveAs(ms.codex,
		bindable.Key(bindable.KindIndexBuffer, tag),
		func() (*bindable.IndexBuffer, error) {
			return bindable.NewIndexBuffer(tag, md.Indices)
		})
	if err != nil {
		return nil, err
	}

	vertexShader, err := ms.resolveVertexShader(ms.config.Shaders.VertexShader)
	if err != nil {
		return nil, err
	}

	elements := []metadata.InputElement{
		{Semantic: "position", Format: metadata.AttributeFormatFloat32_3},
		{Semantic: "normal", Format: metadata.AttributeFormatFloat32_3},
	}
	if textured {
		elements = append(elements, metadata.InputElement{Semantic: "texcoord", Format: metadata.AttributeFormatFloat32_2})
	}
	layout, err := bindable.ResolveAs(ms.codex,
		bindable.Key(bindable.KindInputLayout, bindable.LayoutSignature(elements), vertexShader.Name()),
		func() (*bindable.InputLayout, error) {
			return bindable.NewInputLayout(elements, vertexShader)
		})
	if err != nil {
		return nil, err
	}

	shared := []bindable.Bindable{vertexBuffer, vertexShader, layout}

	hasSpecularMap := md.Material.SpecularMap != ""
	pixelShaderName := ms.config.Shaders.PixelShader
	if hasSpecularMap {
		pixelShaderName = ms.config.Shaders.SpecularPixelShader
	}

	if textured {
		diffuse, err := ms.resolveTexture(md.Material.DiffuseMap, diffuseSlot)
		if err != nil {
			return nil, err
		}
		shared = append(shared, diffuse)

		if hasSpecularMap {
			specular, err := ms.resolveTexture(md.Material.SpecularMap, specularSlot)
			if err != nil {
				return nil, err
			}
			shared = append(shared, specular)
		}

		sampler, err := ms.resolveSampler()
		if err != nil {
			return nil, err
		}
		shared = append(shared, sampler)
	}

	pixelShader, err := ms.resolvePixelShader(pixelShaderName)
	if err != nil {
		return nil, err
	}
	shared = append(shared, pixelShader)

	// Without a specular map the specular term degrades to a material
	// constant instead of a second texture.
	if !hasSpecularMap {
		constants := materialConstants(md, textured)
		material, err := ms.resolveMaterial(constants)
		if err != nil {
			return nil, err
		}
		shared = append(shared, material)
	}

	return scene.NewMesh(topology, indexBuffer, shared, nil)
}

func materialConstants(md *assets.MeshDescription, textured bool) metadata.MaterialConstants {
	constants := metadata.MaterialConstants{
		DiffuseColour:     metadata.DefaultDiffuseColour,
		SpecularIntensity: 0.6,
		SpecularPower:     10.0,
	}
	if textured {
		constants.DiffuseColour = mgl32.Vec3{1, 1, 1}
		constants.SpecularIntensity = metadata.DefaultSpecularIntensity
		constants.SpecularPower = metadata.DefaultShininess
	}
	if md.Material.Shininess > 0 {
		constants.SpecularPower = md.Material.Shininess
	}
	return constants
}

func (ms *ModelSystem) resolveVertexShader(name string) (*bindable.VertexShader, error) {
	return bindable.ResolveAs(ms.codex,
		bindable.Key(bindable.KindVertexShader, name),
		func() (*bindable.VertexShader, error) {
			path, err := ms.assetManager.ResolvePath("shaders/" + name)
			if err != nil {
				return nil, err
			}
			return bindable.NewVertexShader(name, path)
		})
}

func (ms *ModelSystem) resolvePixelShader(name string) (*bindable.PixelShader, error) {
	return bindable.ResolveAs(ms.codex,
		bindable.Key(bindable.KindPixelShader, name),
		func() (*bindable.PixelShader, error) {
			path, err := ms.assetManager.ResolvePath("shaders/" + name)
			if err != nil {
				return nil, err
			}
			return bindable.NewPixelShader(name, path)
		})
}

func (ms *ModelSystem) resolveTexture(name string, slot uint32) (*bindable.Texture, error) {
	rel := "textures/" + name
	return bindable.ResolveAs(ms.codex,
		bindable.Key(bindable.KindTexture, rel, fmt.Sprintf("%d", slot)),
		func() (*bindable.Texture, error) {
			path, err := ms.assetManager.ResolvePath(rel)
			if err != nil {
				return nil, err
			}
			data, err := ms.imageLoader.Load(path)
			if err != nil {
				return nil, err
			}
			return bindable.NewTexture(data, slot)
		})
}

func (ms *ModelSystem) resolveSampler() (*bindable.Sampler, error) {
	filter := ms.config.Sampler.Filter
	repeat := ms.config.Sampler.Repeat
	return bindable.ResolveAs(ms.codex,
		bindable.Key(bindable.KindSampler, filter, repeat),
		func() (*bindable.Sampler, error) {
			return bindable.NewSampler(metadata.ParseTextureFilter(filter), metadata.ParseTextureRepeat(repeat)), nil
		})
}

func (ms *ModelSystem) resolveMaterial(constants metadata.MaterialConstants) (*bindable.MaterialBuffer, error) {
	key := bindable.Key(bindable.KindConstantBuffer, "material",
		fmt.Sprintf("%g:%g:%g:%g:%g",
			constants.DiffuseColour.X(), constants.DiffuseColour.Y(), constants.DiffuseColour.Z(),
			constants.SpecularIntensity, constants.SpecularPower))
	return bindable.ResolveAs(ms.codex, key,
		func() (*bindable.MaterialBuffer, error) {
			return bindable.NewMaterialBuffer(constants, materialSlot), nil
		})
}

// buildNode translates one source node and its subtree. Identifiers are
// assigned depth-first in visit order, so they are unique within the model.
func (ms *ModelSystem) buildNode(nextID *int, nd *assets.NodeDescription, meshes []*scene.Mesh) (*scene.Node, error) {
	base := mgl32.Ident4()
	if len(nd.Transform) == 16 {
		// Scene documents store transforms row-major; the device convention
		// is column-major.
		var m mgl32.Mat4
		copy(m[:], nd.Transform)
		base = m.Transpose()
	}

	nodeMeshes := make([]*scene.Mesh, 0, len(nd.MeshIndexes))
	for _, mi := range nd.MeshIndexes {
		if mi < 0 || mi >= len(meshes) {
			return nil, fmt.Errorf("node '%s': mesh index %d out of range", nd.Name, mi)
		}
		nodeMeshes = append(nodeMeshes, meshes[mi])
	}

	id := *nextID
	*nextID++
	node := scene.NewNode(id, nd.Name, nodeMeshes, base)

	for i := range nd.Children {
		child, err := ms.buildNode(nextID, &nd.Children[i], meshes)
		if err != nil {
			return nil, err
		}
		if err := node.AddChild(child); err != nil {
			return nil, err
		}
	}
	return node, nil
}
