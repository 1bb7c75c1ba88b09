package model

import "fmt"

// Catalog names used by FetchError.
const (
	CatalogCurrent  = "current"
	CatalogDefaults = "defaults"
	CatalogPaths    = "paths"
)

// FetchError reports which catalog could not be built. The wrapped error
// carries one of the services markers.
type FetchError struct {
	Catalog string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("build %s catalog: %v", e.Catalog, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
