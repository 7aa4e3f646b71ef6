package asset

import "fmt"

// AssetNotFoundError is returned when no descriptor is stored under the requested key.
type AssetNotFoundError struct {
	Key AssetName
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Key)
}

// TryAsRefFailedError is returned when a descriptor exists but is not of the requested type.
type TryAsRefFailedError struct {
	Descriptor AssetName
	TargetType string
}

func (e *TryAsRefFailedError) Error() string {
	return fmt.Sprintf("could not get reference of %s from %s", e.TargetType, e.Descriptor)
}
