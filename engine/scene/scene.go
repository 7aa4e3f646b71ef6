package scene

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/model"
	log "github.com/sirupsen/logrus"
)

// ModelResolver materializes models by name. loader.Loader satisfies it.
type ModelResolver interface {
	LoadModel(name asset.ModelName) (model.Model, error)
}

// Scene defines the interface for a named set of objects whose models are resolved in
// one batch before anything is drawn.
type Scene interface {
	// Name returns the scene name.
	//
	// Returns:
	//   - string: the name of the scene
	Name() string

	// AddObject appends an object to the scene. It is resolved by the next Preload.
	//
	// Parameters:
	//   - obj: the object to add
	AddObject(obj Object)

	// Objects returns a copy of the declared objects, in declaration order.
	//
	// Returns:
	//   - []Object: the declared objects
	Objects() []Object

	// Preload resolves the model of every object concurrently. An object whose model fails
	// to load is logged as a warning and skipped; the others are returned in declaration
	// order and kept as the scene's linked objects.
	//
	// Parameters:
	//   - r: the resolver materializing models
	//
	// Returns:
	//   - []LinkedObject: the objects whose model loaded
	Preload(r ModelResolver) []LinkedObject

	// LinkedObjects returns a copy of the result of the last Preload.
	//
	// Returns:
	//   - []LinkedObject: the linked objects
	LinkedObjects() []LinkedObject

	// Release stops the preload workers. The scene must not be preloaded afterwards.
	Release()
}

type scene struct {
	mu sync.RWMutex

	name    string
	objects []Object
	linked  []LinkedObject

	logger log.FieldLogger

	// preloadPool runs model resolution off the caller's goroutine; at most preloadWorkers
	// objects are resolved at once.
	preloadPool    worker.DynamicWorkerPool
	preloadWorkers int
}

var _ Scene = &scene{}

// NewScene creates a new Scene with the given name and options.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		name:           name,
		logger:         log.StandardLogger(),
		preloadWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the pool after options so WithPreloadWorkers can override the default.
	s.preloadPool = worker.NewDynamicWorkerPool(s.preloadWorkers, 64, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) AddObject(obj Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = append(s.objects, obj)
}

func (s *scene) Objects() []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *scene) Preload(r ModelResolver) []LinkedObject {
	objects := s.Objects()
	models := make([]model.Model, len(objects))

	// Pool.Wait only returns once workers idle out, so a WaitGroup is the barrier.
	var wg sync.WaitGroup
	for i, obj := range objects {
		wg.Add(1)
		id, o := i, obj
		s.preloadPool.SubmitTask(worker.Task{
			ID:      id,
			Payload: o.Model,
			Do: func() (any, error) {
				defer wg.Done()
				m, err := r.LoadModel(o.Model)
				if err != nil {
					s.logger.WithFields(log.Fields{
						"object": o.Name,
						"model":  string(o.Model),
					}).WithError(err).Warn("failed while trying to load object")
					return nil, err
				}
				models[id] = m
				return m, nil
			},
		})
	}
	wg.Wait()

	linked := make([]LinkedObject, 0, len(objects))
	for i, obj := range objects {
		if models[i] != nil {
			linked = append(linked, LinkedObject{Object: obj, Model: models[i]})
		}
	}

	s.mu.Lock()
	s.linked = linked
	s.mu.Unlock()

	s.logger.WithFields(log.Fields{
		"scene":   s.name,
		"objects": len(objects),
		"linked":  len(linked),
	}).Info("scene preloaded")
	return s.LinkedObjects()
}

func (s *scene) LinkedObjects() []LinkedObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LinkedObject, len(s.linked))
	copy(out, s.linked)
	return out
}

func (s *scene) Release() {
	s.preloadPool.Stop()
}
