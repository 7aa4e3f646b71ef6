package settings

import (
	"os"

	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadCatalog reads the four descriptor list files named by conf and pushes every
// descriptor into a new Catalog. Textures are read first and models last, so within a
// kind a later entry replaces an earlier one with the same name.
//
// Parameters:
//   - conf: the resource locations
//
// Returns:
//   - asset.Catalog: the filled catalog
//   - error: error if a file cannot be read, decoded or holds an invalid descriptor
func LoadCatalog(conf ResourcesConfig) (asset.Catalog, error) {
	catalog := asset.NewCatalog()

	textures, err := readDescriptors[asset.TextureDescriptor](conf.TexturesConfig)
	if err != nil {
		return nil, err
	}
	materials, err := readDescriptors[asset.MaterialDescriptor](conf.MaterialsConfig)
	if err != nil {
		return nil, err
	}
	meshes, err := readDescriptors[asset.MeshDescriptor](conf.MeshesConfig)
	if err != nil {
		return nil, err
	}
	models, err := readDescriptors[asset.ModelDescriptor](conf.ModelsConfig)
	if err != nil {
		return nil, err
	}

	for _, list := range [][]asset.Descriptor{textures, materials, meshes, models} {
		for _, d := range list {
			catalog.Push(d)
		}
	}
	return catalog, nil
}

// readDescriptors decodes a YAML sequence of descriptors and validates each one.
func readDescriptors[T any, PT interface {
	*T
	asset.Descriptor
}](path string) ([]asset.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read descriptors %s", path)
	}

	var entries []T
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrapf(err, "failed to parse descriptors %s", path)
	}

	descriptors := make([]asset.Descriptor, 0, len(entries))
	for i := range entries {
		d := PT(&entries[i])
		if err := d.Validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid descriptor #%d in %s", i, path)
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}
