package loaders

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const ConfigHelp = `
The render configuration is TOML. Every key is optional; omitted keys keep
their defaults and command-line flags override the file.

  scene = "cornell"          # built-in scene: cornell or skylit
  output = "render.png"
  width = 400
  height = 400

  [integrator]
  emitted = true
  direct_diffuse = true
  direct_specular = true
  indirect = true
  environment_lighting = false
  medium_attenuation = false
  super_samples = 1
  max_depth = 64

  [camera]
  dof = false
  dof_samples = 5
  lens_radius = 0.2
  focus_distance = 4.8

  [environment]
  root = "cubemap"           # directory holding the sky sets
  set = "sponza"             # sponza or hipshot
  fog_density = 0.0          # homogeneous medium extinction, 0 disables

  [render]
  passes = 100
  workers = 0                # 0 uses every CPU
  seed = 42
`

// RenderConfig is one render session as read from a TOML file
type RenderConfig struct {
	Scene       string            `toml:"scene"`
	Output      string            `toml:"output"`
	Width       int               `toml:"width"`
	Height      int               `toml:"height"`
	Integrator  IntegratorConfig  `toml:"integrator"`
	Camera      CameraConfig      `toml:"camera"`
	Environment EnvironmentConfig `toml:"environment"`
	Render      PassConfig        `toml:"render"`
}

// IntegratorConfig toggles the light transport terms
type IntegratorConfig struct {
	Emitted             bool `toml:"emitted"`
	DirectDiffuse       bool `toml:"direct_diffuse"`
	DirectSpecular      bool `toml:"direct_specular"`
	Indirect            bool `toml:"indirect"`
	EnvironmentLighting bool `toml:"environment_lighting"`
	MediumAttenuation   bool `toml:"medium_attenuation"`
	SuperSamples        int  `toml:"super_samples"`
	MaxDepth            int  `toml:"max_depth"`
}

// CameraConfig holds the depth of field parameters
type CameraConfig struct {
	DOF           bool    `toml:"dof"`
	DOFSamples    int     `toml:"dof_samples"`
	LensRadius    float64 `toml:"lens_radius"`
	FocusDistance float64 `toml:"focus_distance"`
}

// EnvironmentConfig selects the cubemap sky set and the participating medium
type EnvironmentConfig struct {
	Root       string  `toml:"root"`
	Set        string  `toml:"set"`
	FogDensity float64 `toml:"fog_density"`
}

// PassConfig controls the progressive pass loop
type PassConfig struct {
	Passes  int   `toml:"passes"`
	Workers int   `toml:"workers"`
	Seed    int64 `toml:"seed"`
}

// DefaultRenderConfig returns the configuration used when no file is given
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Scene:  "cornell",
		Output: "render.png",
		Width:  400,
		Height: 400,
		Integrator: IntegratorConfig{
			Emitted:        true,
			DirectDiffuse:  true,
			DirectSpecular: true,
			Indirect:       true,
			SuperSamples:   1,
			MaxDepth:       64,
		},
		Camera: CameraConfig{
			DOFSamples:    5,
			LensRadius:    0.2,
			FocusDistance: 4.8,
		},
		Environment: EnvironmentConfig{
			Root: "cubemap",
			Set:  "sponza",
		},
		Render: PassConfig{
			Passes: 100,
			Seed:   42,
		},
	}
}

// LoadRenderConfig reads a TOML file over the defaults
func LoadRenderConfig(filename string) (RenderConfig, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := ParseRenderConfig(string(b))
	if err != nil {
		return RenderConfig{}, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// ParseRenderConfig decodes TOML text over the defaults. Unknown keys are an error.
func ParseRenderConfig(data string) (RenderConfig, error) {
	cfg := DefaultRenderConfig()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return RenderConfig{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return RenderConfig{}, err
	}
	return cfg, nil
}

// Validate rejects settings a render cannot start with
func (c RenderConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	case c.Render.Passes <= 0:
		return fmt.Errorf("passes must be positive, got %d", c.Render.Passes)
	case c.Render.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", c.Render.Workers)
	case c.Integrator.SuperSamples < 1:
		return fmt.Errorf("super_samples must be at least 1, got %d", c.Integrator.SuperSamples)
	case c.Integrator.MaxDepth < 1:
		return fmt.Errorf("max_depth must be at least 1, got %d", c.Integrator.MaxDepth)
	case c.Camera.DOF && c.Camera.DOFSamples < 1:
		return fmt.Errorf("dof_samples must be at least 1, got %d", c.Camera.DOFSamples)
	case c.Environment.FogDensity < 0:
		return fmt.Errorf("fog_density must not be negative, got %g", c.Environment.FogDensity)
	}
	return nil
}

// Encode writes the configuration as TOML
func (c RenderConfig) Encode() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", err
	}
	return b.String(), nil
}
