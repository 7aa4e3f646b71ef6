package scene

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/model"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/pipeline"
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeResolver struct {
	models map[asset.ModelName]model.Model
	calls  atomic.Int32
}

func (f *fakeResolver) LoadModel(name asset.ModelName) (model.Model, error) {
	f.calls.Add(1)
	// uneven latency so completion order differs from declaration order
	time.Sleep(time.Duration(len(name)%3) * time.Millisecond)
	m, ok := f.models[name]
	if !ok {
		return nil, fmt.Errorf("model %s not found", name)
	}
	return m, nil
}

func newModel(name asset.ModelName, pipelineName string, meshName asset.MeshName) model.Model {
	return model.NewModel(name,
		model.WithPipeline(pipeline.NewPipeline(pipelineName)),
		model.WithMesh(model.NewMesh(meshName)),
	)
}

func TestPreloadSkipsFailures(t *testing.T) {
	logger, hook := test.NewNullLogger()
	resolver := &fakeResolver{models: map[asset.ModelName]model.Model{
		"color_zod":   newModel("color_zod", "colors_pipeline", "zodiac"),
		"texture_zod": newModel("texture_zod", "textures_pipeline", "zodiac"),
		"sea_square":  newModel("sea_square", "textures_pipeline", "sea"),
	}}

	z2 := NewObject("z2", "texture_zod")
	z2.Position = mgl32.Vec3{10, 0, 10}
	s := NewScene("main",
		WithLogger(logger),
		WithPreloadWorkers(3),
		WithObjects(
			NewObject("zodiac", "color_zod"),
			z2,
			NewObject("sea", "sea_square"),
			NewObject("surface", "fake_terrain"),
		),
	)
	defer s.Release()

	linked := s.Preload(resolver)

	if len(linked) != 3 {
		t.Fatalf("expected 3 linked objects, got %d", len(linked))
	}
	want := []string{"zodiac", "z2", "sea"}
	for i, name := range want {
		if linked[i].Object.Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, linked[i].Object.Name)
		}
	}
	if linked[1].Object.Position != (mgl32.Vec3{10, 0, 10}) {
		t.Errorf("expected z2 to keep its position, got %v", linked[1].Object.Position)
	}
	if resolver.calls.Load() != 4 {
		t.Errorf("expected 4 resolutions, got %d", resolver.calls.Load())
	}

	var warnings int
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.WarnLevel {
			warnings++
			if entry.Data["object"] != "surface" || entry.Data["model"] != "fake_terrain" {
				t.Errorf("unexpected warning fields %v", entry.Data)
			}
		}
	}
	if warnings != 1 {
		t.Errorf("expected 1 warning, got %d", warnings)
	}

	if got := s.LinkedObjects(); len(got) != 3 {
		t.Errorf("expected the preload result to be kept, got %d", len(got))
	}
}

func TestPreloadEmptyScene(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := NewScene("empty", WithLogger(logger))
	defer s.Release()

	if linked := s.Preload(&fakeResolver{}); len(linked) != 0 {
		t.Errorf("expected no linked objects, got %d", len(linked))
	}
}

func TestSortByPipeline(t *testing.T) {
	objects := []LinkedObject{
		{Object: NewObject("a", "m1"), Model: newModel("m1", "textures_pipeline", "zodiac")},
		{Object: NewObject("b", "m2"), Model: newModel("m2", "colors_pipeline", "zodiac")},
		{Object: NewObject("c", "m3"), Model: newModel("m3", "textures_pipeline", "sea")},
		{Object: NewObject("d", "m4"), Model: newModel("m4", "colors_pipeline", "zodiac")},
	}

	SortByPipeline(objects)

	want := []string{"b", "d", "c", "a"}
	for i, name := range want {
		if objects[i].Object.Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, objects[i].Object.Name)
		}
	}
}

func TestObjectTransform(t *testing.T) {
	obj := NewObject("zodiac", "color_zod")
	obj.Position = mgl32.Vec3{1, 2, 3}
	obj.Scale = 2

	got := obj.Transform().Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	if !got.ApproxEqual(mgl32.Vec4{3, 4, 5, 1}) {
		t.Errorf("expected (3,4,5,1), got %v", got)
	}
	if obj.Opacity != 1 {
		t.Errorf("expected full opacity, got %f", obj.Opacity)
	}
}
