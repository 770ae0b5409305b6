package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/vetro/engine/core"
)

// ShaderConfig names the shader files resolved through the asset manager
// when a model is built. Which pixel shader is used depends on the material:
// specular-mapped materials get the specular variant, everything else the
// phong one.
type ShaderConfig struct {
	VertexShader        string `toml:"vertex_shader"`
	PixelShader         string `toml:"pixel_shader"`
	SpecularPixelShader string `toml:"specular_pixel_shader"`
}

type SamplerConfig struct {
	Filter string `toml:"filter"`
	Repeat string `toml:"repeat"`
}

type Config struct {
	// The application name, used in logs.
	AppName string `toml:"app_name"`
	// Log level name: debug, info, warn, error, fatal.
	LogLevel string `toml:"log_level"`
	// The relative base path for assets.
	AssetBasePath string `toml:"asset_base_path"`
	// Target seconds per frame for the run loop. Zero disables throttling.
	TargetFrameSeconds float64 `toml:"target_frame_seconds"`

	Shaders ShaderConfig  `toml:"shaders"`
	Sampler SamplerConfig `toml:"sampler"`
}

func Default() *Config {
	return &Config{
		AppName:            "Vetro Engine",
		LogLevel:           "info",
		AssetBasePath:      "assets",
		TargetFrameSeconds: 1.0 / 60.0,
		Shaders: ShaderConfig{
			VertexShader:        "phong.vert.glsl",
			PixelShader:         "phong.frag.glsl",
			SpecularPixelShader: "phong_specular.frag.glsl",
		},
		Sampler: SamplerConfig{
			Filter: "linear",
			Repeat: "repeat",
		},
	}
}

// Load reads a TOML configuration file on top of the defaults. A missing
// file is not an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			core.LogDebug("no config file at '%s', using defaults", path)
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		err := fmt.Errorf("failed to parse config file '%s': %w", path, err)
		core.LogError(err.Error())
		return nil, err
	}
	return cfg, nil
}
