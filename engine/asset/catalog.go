package asset

import (
	"slices"
	"sync"
)

// catalog is the implementation of the Catalog interface.
type catalog struct {
	mu          sync.RWMutex
	descriptors map[AssetName]Descriptor
}

// Catalog indexes every asset descriptor by its kind-qualified name.
// It is filled once at startup and read by the loaders afterwards; reads are safe from
// multiple goroutines.
type Catalog interface {
	// Push stores the descriptor under its AssetName. A descriptor already stored under the
	// same name is replaced.
	//
	// Parameters:
	//   - d: the descriptor to store
	Push(d Descriptor)

	// Find looks up a descriptor.
	//
	// Parameters:
	//   - name: the typed or kind-qualified name to look up
	//
	// Returns:
	//   - Descriptor: the stored descriptor, or nil
	//   - bool: true if a descriptor was found
	Find(name Named) (Descriptor, bool)

	// Get looks up a descriptor and fails when it is absent.
	//
	// Parameters:
	//   - name: the typed or kind-qualified name to look up
	//
	// Returns:
	//   - Descriptor: the stored descriptor
	//   - error: *AssetNotFoundError if nothing is stored under name
	Get(name Named) (Descriptor, error)

	// Texture returns the texture descriptor stored under name.
	Texture(name TextureName) (*TextureDescriptor, error)

	// Material returns the material descriptor stored under name.
	Material(name MaterialName) (*MaterialDescriptor, error)

	// Mesh returns the mesh descriptor stored under name.
	Mesh(name MeshName) (*MeshDescriptor, error)

	// Model returns the model descriptor stored under name.
	Model(name ModelName) (*ModelDescriptor, error)

	// Len returns the number of stored descriptors.
	Len() int

	// Names returns every stored key, ordered by kind then name.
	Names() []AssetName
}

var _ Catalog = &catalog{}

// NewCatalog creates an empty Catalog and applies the provided options.
//
// Parameters:
//   - options: a variadic list of CatalogBuilderOption functions to configure the Catalog
//
// Returns:
//   - Catalog: the new catalog
func NewCatalog(options ...CatalogBuilderOption) Catalog {
	c := &catalog{
		descriptors: make(map[AssetName]Descriptor),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *catalog) Push(d Descriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.descriptors[d.AssetName()] = d
}

func (c *catalog) Find(name Named) (Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.descriptors[name.AssetName()]
	return d, ok
}

func (c *catalog) Get(name Named) (Descriptor, error) {
	d, ok := c.Find(name)
	if !ok {
		return nil, &AssetNotFoundError{Key: name.AssetName()}
	}
	return d, nil
}

func (c *catalog) Texture(name TextureName) (*TextureDescriptor, error) {
	d, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return AsTexture(d)
}

func (c *catalog) Material(name MaterialName) (*MaterialDescriptor, error) {
	d, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return AsMaterial(d)
}

func (c *catalog) Mesh(name MeshName) (*MeshDescriptor, error) {
	d, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return AsMesh(d)
}

func (c *catalog) Model(name ModelName) (*ModelDescriptor, error) {
	d, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return AsModel(d)
}

func (c *catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.descriptors)
}

func (c *catalog) Names() []AssetName {
	c.mu.RLock()
	names := make([]AssetName, 0, len(c.descriptors))
	for name := range c.descriptors {
		names = append(names, name)
	}
	c.mu.RUnlock()

	slices.SortFunc(names, func(a, b AssetName) int {
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return names
}

// AsTexture returns d as a *TextureDescriptor.
//
// Parameters:
//   - d: the descriptor to convert
//
// Returns:
//   - *TextureDescriptor: the texture descriptor
//   - error: *TryAsRefFailedError if d is of another kind
func AsTexture(d Descriptor) (*TextureDescriptor, error) {
	return tryAs[*TextureDescriptor](d, "TextureDescriptor")
}

// AsMaterial returns d as a *MaterialDescriptor, or a *TryAsRefFailedError.
func AsMaterial(d Descriptor) (*MaterialDescriptor, error) {
	return tryAs[*MaterialDescriptor](d, "MaterialDescriptor")
}

// AsMesh returns d as a *MeshDescriptor, or a *TryAsRefFailedError.
func AsMesh(d Descriptor) (*MeshDescriptor, error) {
	return tryAs[*MeshDescriptor](d, "MeshDescriptor")
}

// AsModel returns d as a *ModelDescriptor, or a *TryAsRefFailedError.
func AsModel(d Descriptor) (*ModelDescriptor, error) {
	return tryAs[*ModelDescriptor](d, "ModelDescriptor")
}

func tryAs[T Descriptor](d Descriptor, target string) (T, error) {
	typed, ok := d.(T)
	if !ok {
		var zero T
		var name AssetName
		if d != nil {
			name = d.AssetName()
		}
		return zero, &TryAsRefFailedError{Descriptor: name, TargetType: target}
	}
	return typed, nil
}
