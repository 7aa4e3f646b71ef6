// Package settings reads the application configuration and the descriptor list files it
// points to.
package settings

import (
	"os"

	"github.com/Carmen-Shannon/oxy-assets/common"
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names the environment variable consulted when LoadConf gets an empty path.
const ConfigPathEnv = "OXY_ASSETS_CONFIG"

// DefaultConfigPath is used when neither a path nor ConfigPathEnv is given.
const DefaultConfigPath = "assets/config/app.yaml"

// AppConfig is the root of the application configuration file.
type AppConfig struct {
	Resources ResourcesConfig  `yaml:"resources"`
	Pipelines []PipelineConfig `yaml:"pipelines"`
	Scene     SceneConfig      `yaml:"scene"`
	// Workers bounds the number of objects preloaded concurrently.
	Workers int `yaml:"workers"`
}

// ResourcesConfig locates asset files and the four descriptor lists.
type ResourcesConfig struct {
	TexturesDirectory string `yaml:"textures_directory"`
	MeshesDirectory   string `yaml:"meshes_directory"`
	TexturesConfig    string `yaml:"textures_config"`
	MaterialsConfig   string `yaml:"materials_config"`
	MeshesConfig      string `yaml:"meshes_config"`
	ModelsConfig      string `yaml:"models_config"`
}

// PipelineConfig declares a pipeline to register at startup.
type PipelineConfig struct {
	Name          string               `yaml:"name"`
	MaterialKinds []asset.MaterialKind `yaml:"material_kinds"`
	// Shader optionally replaces the built-in WGSL of the pipeline.
	Shader string `yaml:"shader,omitempty"`
}

// SceneConfig lists the objects placed in the scene.
type SceneConfig struct {
	Objects []ObjectConfig `yaml:"objects"`
}

// ObjectConfig places one model instance.
type ObjectConfig struct {
	Name     string     `yaml:"name"`
	Model    string     `yaml:"model"`
	Position mgl32.Vec3 `yaml:"position"`
	Scale    float32    `yaml:"scale"`
}

// DefaultResourcesConfig returns the asset locations used when the configuration leaves them empty.
//
// Returns:
//   - ResourcesConfig: the default resource locations
func DefaultResourcesConfig() ResourcesConfig {
	return ResourcesConfig{
		TexturesDirectory: "assets/textures",
		MeshesDirectory:   "assets/meshes",
		TexturesConfig:    "assets/config/textures.yaml",
		MaterialsConfig:   "assets/config/materials.yaml",
		MeshesConfig:      "assets/config/meshes.yaml",
		ModelsConfig:      "assets/config/models.yaml",
	}
}

// DefaultAppConfig returns the configuration used when no file can be read.
//
// Returns:
//   - AppConfig: the default configuration
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Resources: DefaultResourcesConfig(),
		Pipelines: []PipelineConfig{
			{Name: "textures_pipeline", MaterialKinds: []asset.MaterialKind{asset.MaterialKindTexture}},
			{Name: "colors_pipeline", MaterialKinds: []asset.MaterialKind{asset.MaterialKindColor}},
			{Name: "light_pipeline"},
		},
		Scene: SceneConfig{
			Objects: []ObjectConfig{
				{Name: "zodiac", Model: "color_zod", Scale: 1},
				{Name: "z2", Model: "texture_zod", Position: mgl32.Vec3{10, 0, 10}, Scale: 1},
				{Name: "sea", Model: "sea_square", Scale: 1},
				{Name: "surface", Model: "fake_terrain", Scale: 1},
			},
		},
		Workers: 4,
	}
}

// ConfigPath resolves the configuration file location: path when set, otherwise
// ConfigPathEnv, otherwise DefaultConfigPath.
//
// Parameters:
//   - path: the explicit path, may be empty
//
// Returns:
//   - string: the path to read
func ConfigPath(path string) string {
	return common.Coalesce(path, os.Getenv(ConfigPathEnv), DefaultConfigPath)
}

// ReadConf reads and decodes the configuration file at path. Empty fields are back-filled
// from DefaultAppConfig.
//
// Parameters:
//   - path: the configuration file
//
// Returns:
//   - AppConfig: the decoded configuration
//   - error: error if the file cannot be read or decoded
func ReadConf(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, errors.Wrapf(err, "failed to read configuration %s", path)
	}

	var conf AppConfig
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return AppConfig{}, errors.Wrapf(err, "failed to parse configuration %s", path)
	}
	conf.fillDefaults()
	return conf, nil
}

// LoadConf loads the configuration. A missing or malformed file is not fatal: the failure is
// logged as a warning and DefaultAppConfig is returned.
//
// Parameters:
//   - path: the configuration file; empty selects ConfigPathEnv or DefaultConfigPath
//   - logger: the logger receiving the warning, nil for the standard logger
//
// Returns:
//   - AppConfig: the loaded or default configuration
func LoadConf(path string, logger log.FieldLogger) AppConfig {
	if logger == nil {
		logger = log.StandardLogger()
	}
	path = ConfigPath(path)
	logger.WithField("path", path).Info("loading configuration")

	conf, err := ReadConf(path)
	if err != nil {
		logger.WithField("path", path).WithError(err).Warn("falling back to default configuration")
		return DefaultAppConfig()
	}
	return conf
}

func (c *AppConfig) fillDefaults() {
	def := DefaultAppConfig()
	c.Resources.TexturesDirectory = common.Coalesce(c.Resources.TexturesDirectory, def.Resources.TexturesDirectory)
	c.Resources.MeshesDirectory = common.Coalesce(c.Resources.MeshesDirectory, def.Resources.MeshesDirectory)
	c.Resources.TexturesConfig = common.Coalesce(c.Resources.TexturesConfig, def.Resources.TexturesConfig)
	c.Resources.MaterialsConfig = common.Coalesce(c.Resources.MaterialsConfig, def.Resources.MaterialsConfig)
	c.Resources.MeshesConfig = common.Coalesce(c.Resources.MeshesConfig, def.Resources.MeshesConfig)
	c.Resources.ModelsConfig = common.Coalesce(c.Resources.ModelsConfig, def.Resources.ModelsConfig)
	c.Workers = common.Coalesce(c.Workers, def.Workers)

	if c.Pipelines == nil {
		c.Pipelines = def.Pipelines
	}
	for i := range c.Scene.Objects {
		c.Scene.Objects[i].Scale = common.Coalesce(c.Scene.Objects[i].Scale, 1)
	}
}
