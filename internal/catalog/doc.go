// Package catalog defines the typed configuration model shared by the parser,
// the model builder, and the presentation layer.
//
// Value is the tagged union of boolean, number and string field values.
// Defaults, Current and Paths are read-only catalogs built once per snapshot;
// StagedEdits is the one mutable catalog, handed around as a shared pointer
// and guarded by a mutex. Target and Page name which file, section and
// subsection a model covers.
package catalog
