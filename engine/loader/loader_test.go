package loader

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/model"
	"github.com/Carmen-Shannon/oxy-assets/engine/profiler"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/texture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus/hooks/test"
)

// fakeGeometryBackend returns canned geometries per file name.
type fakeGeometryBackend struct {
	mu    sync.Mutex
	files map[string][]model.GeometryVertices
	calls int
}

func (f *fakeGeometryBackend) Load(path string) ([]model.GeometryVertices, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	geoms, ok := f.files[filepath.Base(path)]
	if !ok {
		return nil, os.ErrNotExist
	}
	return geoms, nil
}

func triangle(name asset.GeometryName) model.GeometryVertices {
	g := model.GeometryVertices{
		Name: name,
		Vertices: []model.ModelVertex{
			{Position: [3]float32{0, 0, 0}, TexCoords: [2]float32{0, 0}, Normal: [3]float32{0, 0, 1}},
			{Position: [3]float32{1, 0, 0}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{0, 0, 1}},
			{Position: [3]float32{0, 1, 0}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{0, 0, 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
	g.ComputeTangents()
	return g
}

type loaderFixture struct {
	loader   Loader
	device   *renderertest.Backend
	geometry *fakeGeometryBackend
	catalog  asset.Catalog
}

func zodiacDescriptors() []asset.Descriptor {
	return []asset.Descriptor{
		&asset.MeshDescriptor{
			Name:       "zodiac",
			Source:     asset.VerticesSource{Obj: "zodiac.obj"},
			Geometries: []asset.GeometryDescriptor{{Name: "hull"}, {Name: "inflatable"}},
		},
		asset.NewColorMaterialDescriptor("white", mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0.5, 0.5, 0.5}),
		asset.NewColorMaterialDescriptor("grey", mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{0, 0, 0}),
		&asset.ModelDescriptor{
			Name: "color_zod",
			Mesh: "zodiac",
			GeometriesMaterials: []asset.GeometryMaterial{
				{Geometry: "hull", Material: "white"},
				{Geometry: "inflatable", Material: "grey"},
			},
			Pipeline: "colors_pipeline",
		},
	}
}

func newFixture(t *testing.T, descriptors []asset.Descriptor, options ...LoaderBuilderOption) *loaderFixture {
	t.Helper()
	logger, _ := test.NewNullLogger()
	f := &loaderFixture{
		device: renderertest.NewBackend(),
		geometry: &fakeGeometryBackend{files: map[string][]model.GeometryVertices{
			// file order differs from declared order on purpose
			"zodiac.obj": {triangle("inflatable"), triangle("hull")},
		}},
		catalog: asset.NewCatalog(asset.WithDescriptors(descriptors...)),
	}
	opts := []LoaderBuilderOption{
		WithRenderer(renderer.NewRenderer(f.device, renderer.WithLogger(logger))),
		WithCatalog(f.catalog),
		WithBackend(BackendTypeOBJ, f.geometry),
		WithBackend(BackendTypeGLTF, f.geometry),
		WithLogger(logger),
	}
	f.loader = NewLoader(append(opts, options...)...)

	err := f.loader.RegisterPipelines(
		pipeline.NewPipeline("colors_pipeline", pipeline.WithMaterialKinds(asset.MaterialKindColor)),
		pipeline.NewPipeline("textures_pipeline", pipeline.WithMaterialKinds(asset.MaterialKindTexture)),
		pipeline.NewPipeline("light_pipeline"),
	)
	if err != nil {
		t.Fatalf("failed to register pipelines: %v", err)
	}
	return f
}

func writePNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	file, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
}

func materialNames(m model.Model) []asset.MaterialName {
	var names []asset.MaterialName
	for _, mat := range m.Materials() {
		names = append(names, mat.Name())
	}
	return names
}

func TestLoadModelZodiac(t *testing.T) {
	f := newFixture(t, zodiacDescriptors())

	v, err := f.loader.Resolve(asset.ModelName("color_zod").AssetName())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := v.(model.Model)
	if !ok {
		t.Fatalf("expected model.Model, got %T", v)
	}

	names := materialNames(m)
	if len(names) != 2 || names[0] != "white" || names[1] != "grey" {
		t.Errorf("expected [white grey], got %v", names)
	}
	geometries := m.Mesh().GeometryNames()
	if len(geometries) != 2 || geometries[0] != "hull" || geometries[1] != "inflatable" {
		t.Errorf("expected geometries in declared order, got %v", geometries)
	}
	if m.Pipeline().Name() != "colors_pipeline" {
		t.Errorf("expected colors_pipeline, got %s", m.Pipeline().Name())
	}
	for _, label := range []string{"zodiac/hull", "zodiac/inflatable", "white", "grey"} {
		if n := f.device.Calls(label); n != 1 {
			t.Errorf("expected 1 create call for %s, got %d", label, n)
		}
	}
	if mat, ok := m.MaterialFor("inflatable"); !ok || mat.Name() != "grey" {
		t.Errorf("expected grey on inflatable, got %v", mat)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	f := newFixture(t, zodiacDescriptors())

	first, err := f.loader.LoadModel("color_zod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	calls := f.device.TotalCalls()

	second, err := f.loader.LoadModel("color_zod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the cached model to be returned")
	}
	if f.device.TotalCalls() != calls {
		t.Errorf("expected no new device calls, got %d more", f.device.TotalCalls()-calls)
	}
	if f.geometry.calls != 1 {
		t.Errorf("expected the mesh file to be read once, got %d", f.geometry.calls)
	}

	counts := f.loader.Store().Counts()
	if counts["models"] != 1 || counts["meshes"] != 1 || counts["materials"] != 2 {
		t.Errorf("unexpected store counts %v", counts)
	}
}

func TestMaterialsFollowMeshOrder(t *testing.T) {
	descriptors := zodiacDescriptors()
	descriptors[3] = &asset.ModelDescriptor{
		Name: "color_zod",
		Mesh: "zodiac",
		GeometriesMaterials: []asset.GeometryMaterial{
			{Geometry: "inflatable", Material: "grey"},
			{Geometry: "hull", Material: "white"},
		},
		Pipeline: "colors_pipeline",
	}
	f := newFixture(t, descriptors)

	m, err := f.loader.LoadModel("color_zod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := materialNames(m)
	if len(names) != 2 || names[0] != "white" || names[1] != "grey" {
		t.Errorf("expected materials ordered by geometry, got %v", names)
	}
}

func TestModelMaterialPairing(t *testing.T) {
	tests := []struct {
		name     string
		pairs    []asset.GeometryMaterial
		pipeline string
		check    func(t *testing.T, err error)
	}{
		{
			name:     "too few pairs",
			pairs:    []asset.GeometryMaterial{{Geometry: "hull", Material: "white"}},
			pipeline: "colors_pipeline",
			check: func(t *testing.T, err error) {
				var target *InvalidMaterialCountError
				if !errors.As(err, &target) {
					t.Fatalf("expected InvalidMaterialCountError, got %v", err)
				}
				if target.DescriptorMaterialsCount != 1 || target.ModelGeometriesCount != 2 {
					t.Errorf("unexpected counts %d/%d", target.DescriptorMaterialsCount, target.ModelGeometriesCount)
				}
			},
		},
		{
			name: "dangling geometry",
			pairs: []asset.GeometryMaterial{
				{Geometry: "hull", Material: "white"},
				{Geometry: "keel", Material: "grey"},
			},
			pipeline: "colors_pipeline",
			check: func(t *testing.T, err error) {
				var target *DanglingGeometryError
				if !errors.As(err, &target) || target.Geometry != "keel" {
					t.Fatalf("expected DanglingGeometryError for keel, got %v", err)
				}
			},
		},
		{
			name: "geometry without material",
			pairs: []asset.GeometryMaterial{
				{Geometry: "hull", Material: "white"},
				{Geometry: "hull", Material: "grey"},
			},
			pipeline: "colors_pipeline",
			check: func(t *testing.T, err error) {
				var target *MaterialNotSetForGeometryError
				if !errors.As(err, &target) || target.Geometry != "inflatable" {
					t.Fatalf("expected MaterialNotSetForGeometryError for inflatable, got %v", err)
				}
			},
		},
		{
			name: "pipeline without materials",
			pairs: []asset.GeometryMaterial{
				{Geometry: "hull", Material: "white"},
				{Geometry: "inflatable", Material: "grey"},
			},
			pipeline: "light_pipeline",
			check: func(t *testing.T, err error) {
				var target *InvalidMaterialAndPipelineError
				if !errors.As(err, &target) {
					t.Fatalf("expected InvalidMaterialAndPipelineError, got %v", err)
				}
			},
		},
		{
			name: "incompatible material kind",
			pairs: []asset.GeometryMaterial{
				{Geometry: "hull", Material: "white"},
				{Geometry: "inflatable", Material: "grey"},
			},
			pipeline: "textures_pipeline",
			check: func(t *testing.T, err error) {
				var target *IncompatibleMaterialError
				if !errors.As(err, &target) || target.Kind != asset.MaterialKindColor {
					t.Fatalf("expected IncompatibleMaterialError, got %v", err)
				}
			},
		},
		{
			name: "unregistered pipeline",
			pairs: []asset.GeometryMaterial{
				{Geometry: "hull", Material: "white"},
				{Geometry: "inflatable", Material: "grey"},
			},
			pipeline: "missing_pipeline",
			check: func(t *testing.T, err error) {
				var target *PipelineNotFoundInStoreError
				if !errors.As(err, &target) || target.Pipeline != "missing_pipeline" {
					t.Fatalf("expected PipelineNotFoundInStoreError, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descriptors := zodiacDescriptors()
			descriptors[3] = &asset.ModelDescriptor{
				Name:                "color_zod",
				Mesh:                "zodiac",
				GeometriesMaterials: tt.pairs,
				Pipeline:            tt.pipeline,
			}
			f := newFixture(t, descriptors)

			_, err := f.loader.LoadModel("color_zod")
			tt.check(t, err)
			if f.loader.Store().ContainsModel("color_zod") {
				t.Error("expected a failed model not to be cached")
			}
		})
	}
}

func TestModelWithoutMaterials(t *testing.T) {
	descriptors := zodiacDescriptors()
	descriptors[3] = &asset.ModelDescriptor{Name: "lamp", Mesh: "zodiac", Pipeline: "light_pipeline"}
	f := newFixture(t, descriptors)

	m, err := f.loader.LoadModel("lamp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Materials()) != 0 {
		t.Errorf("expected no materials, got %d", len(m.Materials()))
	}
}

func TestLoadMeshFailsClosed(t *testing.T) {
	tests := []struct {
		name  string
		file  []model.GeometryVertices
		check func(t *testing.T, err error)
	}{
		{
			name: "undeclared geometry",
			file: []model.GeometryVertices{triangle("hull"), triangle("inflatable"), triangle("outboard")},
			check: func(t *testing.T, err error) {
				var target *UnexpectedGeometryError
				if !errors.As(err, &target) || target.Geometry != "outboard" {
					t.Fatalf("expected UnexpectedGeometryError for outboard, got %v", err)
				}
			},
		},
		{
			name: "missing geometry",
			file: []model.GeometryVertices{triangle("hull")},
			check: func(t *testing.T, err error) {
				var target *MissingGeometryError
				if !errors.As(err, &target) || target.Geometry != "inflatable" {
					t.Fatalf("expected MissingGeometryError for inflatable, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, zodiacDescriptors())
			f.geometry.files["zodiac.obj"] = tt.file
			before := f.device.TotalCalls()

			_, err := f.loader.LoadMesh("zodiac")
			tt.check(t, err)
			if f.loader.Store().ContainsMesh("zodiac") {
				t.Error("expected a failed mesh not to be cached")
			}
			if n := f.device.Calls("zodiac/hull"); n != 0 {
				t.Errorf("expected nothing uploaded, got %d geometry calls", n)
			}
			if n := f.device.TotalCalls() - before; n != 0 {
				t.Errorf("expected no device calls, got %d", n)
			}
		})
	}
}

func TestLoadTextureMaterial(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "wood.png", 4, 2)
	writePNG(t, dir, "wood_normal.png", 4, 2)

	f := newFixture(t, []asset.Descriptor{
		&asset.TextureDescriptor{Name: "wood", Path: "wood.png", Kind: asset.TextureKindDiffuse},
		&asset.TextureDescriptor{Name: "wood_normal", Path: "wood_normal.png", Kind: asset.TextureKindNormal},
		asset.NewTextureMaterialDescriptor("planks", "wood", "wood_normal"),
		asset.NewTextureMaterialDescriptor("crates", "wood", "wood_normal"),
	}, WithTexturesDirectory(dir))

	planks, err := f.loader.LoadMaterial("planks")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.loader.LoadMaterial("crates"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tm, ok := planks.(material.TextureMaterial)
	if !ok {
		t.Fatalf("expected a TextureMaterial, got %T", planks)
	}
	if tm.Kind() != asset.MaterialKindTexture {
		t.Errorf("expected texture kind, got %s", tm.Kind())
	}
	if tm.Diffuse().Width() != 4 || tm.Diffuse().Height() != 2 {
		t.Errorf("expected 4x2 diffuse, got %dx%d", tm.Diffuse().Width(), tm.Diffuse().Height())
	}

	formats := map[texture.Texture]renderer.TextureFormat{
		tm.Diffuse(): renderer.TextureFormatRGBA8UnormSrgb,
		tm.Normal():  renderer.TextureFormatRGBA8Unorm,
	}
	for tex, want := range formats {
		if got := tex.Resource().(*renderertest.Resource).Format; got != want {
			t.Errorf("expected %s for %s, got %s", want, tex.Name(), got)
		}
	}

	if n := f.device.Calls("wood"); n != 1 {
		t.Errorf("expected the shared texture to be uploaded once, got %d", n)
	}
}

func TestLoadConcurrentRequestsShareOneMaterialization(t *testing.T) {
	f := newFixture(t, zodiacDescriptors())
	f.device.Delay = 5 * time.Millisecond

	const workers = 16
	results := make([]model.Model, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := f.loader.LoadModel("color_zod")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results[i] = m
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatal("expected every caller to receive the same model")
		}
	}
	for _, label := range []string{"zodiac/hull", "zodiac/inflatable", "white", "grey"} {
		if n := f.device.Calls(label); n != 1 {
			t.Errorf("expected 1 create call for %s, got %d", label, n)
		}
	}
}

func TestFailedLoadKeepsSubResources(t *testing.T) {
	f := newFixture(t, zodiacDescriptors())
	f.device.FailOn("grey", errors.New("out of memory"))

	if _, err := f.loader.LoadModel("color_zod"); err == nil {
		t.Fatal("expected an error")
	}
	if !f.loader.Store().ContainsMaterial("white") || !f.loader.Store().ContainsMesh("zodiac") {
		t.Error("expected sub-resources loaded before the failure to stay cached")
	}
	if f.loader.Store().ContainsMaterial("grey") || f.loader.Store().ContainsModel("color_zod") {
		t.Error("expected nothing cached for the failed names")
	}

	f.device.FailOn("grey", nil)
	if _, err := f.loader.LoadModel("color_zod"); err != nil {
		t.Fatalf("expected a retry to succeed, got %v", err)
	}
	if n := f.device.Calls("white"); n != 1 {
		t.Errorf("expected white to be created once, got %d", n)
	}
}

func TestLoadUnknownNames(t *testing.T) {
	f := newFixture(t, zodiacDescriptors())

	var notFound *asset.AssetNotFoundError
	if _, err := f.loader.LoadTexture("nope"); !errors.As(err, &notFound) {
		t.Errorf("expected AssetNotFoundError, got %v", err)
	}
	if _, err := f.loader.Resolve(asset.MeshName("nope").AssetName()); !errors.As(err, &notFound) {
		t.Errorf("expected AssetNotFoundError, got %v", err)
	}
	if _, err := f.loader.Resolve(asset.AssetName{Kind: asset.AssetKind(99), Name: "x"}); err == nil {
		t.Error("expected an error for an unknown kind")
	}
}

func TestLoadTextureRejectsInvalidDescriptor(t *testing.T) {
	f := newFixture(t, nil)
	f.catalog.Push(&asset.TextureDescriptor{Name: "blank", Kind: asset.TextureKindDiffuse})
	before := f.device.TotalCalls()

	_, err := f.loader.LoadTexture("blank")
	if err == nil || !strings.Contains(err.Error(), "has no path") {
		t.Fatalf("expected a missing path error, got %v", err)
	}
	if f.loader.Store().ContainsTexture("blank") {
		t.Error("expected an invalid texture not to be cached")
	}
	if n := f.device.TotalCalls() - before; n != 0 {
		t.Errorf("expected no device calls, got %d", n)
	}
}

func TestLoadWithoutRenderer(t *testing.T) {
	l := NewLoader(WithCatalog(asset.NewCatalog(asset.WithDescriptors(zodiacDescriptors()...))))

	if _, err := l.LoadMaterial("white"); !errors.Is(err, ErrNoRenderer) {
		t.Errorf("expected ErrNoRenderer, got %v", err)
	}
	if _, err := l.LoadMesh("zodiac"); !errors.Is(err, ErrNoRenderer) {
		t.Errorf("expected ErrNoRenderer, got %v", err)
	}
}

func TestRegisterPipelines(t *testing.T) {
	f := newFixture(t, nil)

	if n := f.device.Calls("colors_pipeline"); n != 1 {
		t.Errorf("expected one device pipeline, got %d", n)
	}
	again := pipeline.NewPipeline("colors_pipeline", pipeline.WithMaterialKinds(asset.MaterialKindTexture))
	if err := f.loader.RegisterPipelines(again); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := f.device.Calls("colors_pipeline"); n != 1 {
		t.Errorf("expected a duplicate registration to be skipped, got %d calls", n)
	}
	p, _ := f.loader.Store().Pipeline("colors_pipeline")
	if !p.CanUse(asset.MaterialKindColor) {
		t.Error("expected the first registration to win")
	}
	if p.Resource() == nil {
		t.Error("expected the device pipeline to be attached")
	}

	f.device.FailOn("broken", errors.New("shader error"))
	if err := f.loader.RegisterPipelines(pipeline.NewPipeline("broken")); err == nil {
		t.Error("expected an error from the device")
	}
	if f.loader.Store().ContainsPipeline("broken") {
		t.Error("expected a failed pipeline not to be registered")
	}
}

func TestLoadTracksProfiler(t *testing.T) {
	logger, _ := test.NewNullLogger()
	p := profiler.NewProfiler(profiler.WithLogger(logger))
	f := newFixture(t, zodiacDescriptors(), WithProfiler(p))

	if _, err := f.loader.LoadModel("color_zod"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.loader.LoadModel("color_zod"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := p.Counts()
	if counts["Model"] != 1 || counts["Mesh"] != 1 || counts["Material"] != 2 {
		t.Errorf("unexpected profiler counts %v", counts)
	}
}
