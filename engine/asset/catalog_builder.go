package asset

// CatalogBuilderOption is a functional option for configuring a Catalog via NewCatalog.
type CatalogBuilderOption func(*catalog)

// WithDescriptors is an option builder that pushes descriptors into the new catalog, in order.
// Later descriptors replace earlier ones stored under the same name.
//
// Parameters:
//   - descriptors: the descriptors to push
//
// Returns:
//   - CatalogBuilderOption: a function that applies the descriptors to a catalog
func WithDescriptors(descriptors ...Descriptor) CatalogBuilderOption {
	return func(c *catalog) {
		for _, d := range descriptors {
			c.descriptors[d.AssetName()] = d
		}
	}
}
