package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadConfFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.yaml")},
		{name: "malformed file", path: writeFile(t, dir, "broken.yaml", "resources: [unclosed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()

			conf := LoadConf(tt.path, logger)

			if len(conf.Pipelines) != 3 || conf.Pipelines[0].Name != "textures_pipeline" {
				t.Errorf("expected the default pipelines, got %+v", conf.Pipelines)
			}
			if conf.Resources != DefaultResourcesConfig() {
				t.Errorf("expected default resources, got %+v", conf.Resources)
			}
			entry := hook.LastEntry()
			if entry == nil || entry.Level != log.WarnLevel {
				t.Fatalf("expected a warning, got %v", entry)
			}
			if entry.Data["path"] != tt.path {
				t.Errorf("expected path field %s, got %v", tt.path, entry.Data["path"])
			}
		})
	}
}

func TestReadConf(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", `
resources:
  textures_directory: /data/textures
  models_config: /data/models.yaml
pipelines:
  - name: colors_pipeline
    material_kinds: [color]
  - name: mixed_pipeline
    material_kinds: [Texture, color]
scene:
  objects:
    - name: zodiac
      model: color_zod
      position: [1, 2, 3]
workers: 8
`)

	conf, err := ReadConf(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if conf.Resources.TexturesDirectory != "/data/textures" || conf.Resources.ModelsConfig != "/data/models.yaml" {
		t.Errorf("unexpected resources %+v", conf.Resources)
	}
	if conf.Resources.MeshesDirectory != DefaultResourcesConfig().MeshesDirectory {
		t.Errorf("expected empty fields to be back-filled, got %s", conf.Resources.MeshesDirectory)
	}
	if len(conf.Pipelines) != 2 {
		t.Fatalf("expected 2 pipelines, got %d", len(conf.Pipelines))
	}
	kinds := conf.Pipelines[1].MaterialKinds
	if len(kinds) != 2 || kinds[0] != asset.MaterialKindTexture || kinds[1] != asset.MaterialKindColor {
		t.Errorf("unexpected kinds %v", kinds)
	}
	obj := conf.Scene.Objects[0]
	if obj.Position != (mgl32.Vec3{1, 2, 3}) || obj.Scale != 1 {
		t.Errorf("unexpected object %+v", obj)
	}
	if conf.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", conf.Workers)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	if got := ConfigPath(""); got != DefaultConfigPath {
		t.Errorf("expected %s, got %s", DefaultConfigPath, got)
	}

	t.Setenv(ConfigPathEnv, "/etc/oxy.yaml")
	if got := ConfigPath(""); got != "/etc/oxy.yaml" {
		t.Errorf("expected the environment path, got %s", got)
	}
	if got := ConfigPath("local.yaml"); got != "local.yaml" {
		t.Errorf("expected the explicit path to win, got %s", got)
	}
}

func writeCatalogFiles(t *testing.T, models string) ResourcesConfig {
	t.Helper()
	dir := t.TempDir()
	return ResourcesConfig{
		TexturesConfig: writeFile(t, dir, "textures.yaml", `
- name: d_wall
  path: wall.png
  kind: diffuse
- name: n_wall
  path: wall_normal.png
  kind: normal
`),
		MaterialsConfig: writeFile(t, dir, "materials.yaml", `
- name: wall
  texture:
    diffuse: d_wall
    normal: n_wall
- name: white
  color:
    ambient: [1, 1, 1]
    diffuse: [1, 1, 1]
    specular: [0.5, 0.5, 0.5]
`),
		MeshesConfig: writeFile(t, dir, "meshes.yaml", `
- name: zodiac
  source:
    obj: zodiac_001.obj
  geometries:
    - name: hull
    - name: inflatable
`),
		ModelsConfig: writeFile(t, dir, "models.yaml", models),
	}
}

func TestLoadCatalog(t *testing.T) {
	conf := writeCatalogFiles(t, `
- name: color_zod
  mesh: zodiac
  geometries_materials:
    - geometry: hull
      material: white
    - geometry: inflatable
      material: white
  pipeline: colors_pipeline
`)

	catalog, err := LoadCatalog(conf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.Len() != 6 {
		t.Errorf("expected 6 descriptors, got %d", catalog.Len())
	}

	normal, err := catalog.Texture("n_wall")
	if err != nil || normal.Kind != asset.TextureKindNormal {
		t.Errorf("expected a normal texture, got %v, %v", normal, err)
	}
	white, err := catalog.Material("white")
	if err != nil || white.Kind() != asset.MaterialKindColor || white.Color.Specular != (mgl32.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("unexpected white material %+v, %v", white, err)
	}
	mesh, err := catalog.Mesh("zodiac")
	if err != nil || mesh.CountGeometries() != 2 || mesh.Source.Obj != "zodiac_001.obj" {
		t.Errorf("unexpected zodiac mesh %+v, %v", mesh, err)
	}
	model, err := catalog.Model("color_zod")
	if err != nil || model.Pipeline != "colors_pipeline" {
		t.Errorf("unexpected model %+v, %v", model, err)
	}
	if m, ok := model.MaterialFor("inflatable"); !ok || m != "white" {
		t.Errorf("expected white on inflatable, got %s", m)
	}
}

func TestLoadCatalogRejectsInvalidDescriptors(t *testing.T) {
	conf := writeCatalogFiles(t, `
- name: headless
  mesh: zodiac
`)

	if _, err := LoadCatalog(conf); err == nil {
		t.Error("expected an error for a model without pipeline")
	}

	conf.ModelsConfig = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := LoadCatalog(conf)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a wrapped not-exist error, got %v", err)
	}
}
