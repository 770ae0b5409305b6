package assets

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// SceneDescription is the flat output of the asset import step: a list of
// mesh descriptions plus a node hierarchy referencing them by index. It is
// independent of any engine-internal representation; the model builder
// consumes it.
type SceneDescription struct {
	Name string `toml:"name"`

	// Source is the path the description was loaded from. It seeds the
	// geometry cache tags, so two loads of the same file share buffers.
	Source string `toml:"-"`

	Meshes []MeshDescription `toml:"meshes"`
	Root   NodeDescription   `toml:"root"`
}

type MeshDescription struct {
	Name      string      `toml:"name"`
	Positions [][]float32 `toml:"positions"`
	Normals   [][]float32 `toml:"normals"`
	Texcoords [][]float32 `toml:"texcoords"`
	Indices   []uint32    `toml:"indices"`

	Material MaterialDescription `toml:"material"`
}

type MaterialDescription struct {
	DiffuseMap  string  `toml:"diffuse_map"`
	SpecularMap string  `toml:"specular_map"`
	Shininess   float32 `toml:"shininess"`
}

type NodeDescription struct {
	Name string `toml:"name"`
	// Row-major 4x4 local transform, 16 values. Empty means identity.
	Transform   []float32         `toml:"transform"`
	MeshIndexes []int             `toml:"mesh_indexes"`
	Children    []NodeDescription `toml:"children"`
}

// ParseScene decodes a TOML scene document and validates it. A malformed
// document is a build failure; no partial description is returned.
func ParseScene(data []byte, source string) (*SceneDescription, error) {
	desc := &SceneDescription{}
	if err := toml.Unmarshal(data, desc); err != nil {
		return nil, fmt.Errorf("failed to parse scene '%s': %w", source, err)
	}
	desc.Source = source
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene '%s': %w", source, err)
	}
	return desc, nil
}

func (sd *SceneDescription) Validate() error {
	for i := range sd.Meshes {
		if err := sd.Meshes[i].validate(); err != nil {
			return fmt.Errorf("mesh %d: %w", i, err)
		}
	}
	return sd.Root.validate(len(sd.Meshes))
}

func (md *MeshDescription) validate() error {
	if len(md.Positions) == 0 {
		return fmt.Errorf("no vertex positions")
	}
	for i, p := range md.Positions {
		if len(p) != 3 {
			return fmt.Errorf("position %d has %d components, want 3", i, len(p))
		}
	}
	if len(md.Normals) != len(md.Positions) {
		return fmt.Errorf("normal count %d does not match position count %d", len(md.Normals), len(md.Positions))
	}
	for i, n := range md.Normals {
		if len(n) != 3 {
			return fmt.Errorf("normal %d has %d components, want 3", i, len(n))
		}
	}
	if len(md.Texcoords) != 0 && len(md.Texcoords) != len(md.Positions) {
		return fmt.Errorf("texcoord count %d does not match position count %d", len(md.Texcoords), len(md.Positions))
	}
	for i, t := range md.Texcoords {
		if len(t) != 2 {
			return fmt.Errorf("texcoord %d has %d components, want 2", i, len(t))
		}
	}
	if len(md.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(md.Indices))
	}
	for i, idx := range md.Indices {
		if idx >= uint32(len(md.Positions)) {
			return fmt.Errorf("index %d references vertex %d, have %d vertices", i, idx, len(md.Positions))
		}
	}
	return nil
}

func (nd *NodeDescription) validate(meshCount int) error {
	if len(nd.Transform) != 0 && len(nd.Transform) != 16 {
		return fmt.Errorf("node '%s': transform has %d values, want 16", nd.Name, len(nd.Transform))
	}
	for _, mi := range nd.MeshIndexes {
		if mi < 0 || mi >= meshCount {
			return fmt.Errorf("node '%s': mesh index %d out of range, have %d meshes", nd.Name, mi, meshCount)
		}
	}
	for i := range nd.Children {
		if err := nd.Children[i].validate(meshCount); err != nil {
			return err
		}
	}
	return nil
}
