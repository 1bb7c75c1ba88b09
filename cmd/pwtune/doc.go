// Package main hosts the pwtune CLI entrypoint and command graph.
//
// The Cobra-based command tree loads settings, builds a Config Model for the
// selected target through pw-config, and renders its catalogs as tables or
// JSON. Staged edits are validated against the model and persisted to the
// drafts database so they survive between invocations; nothing here writes
// PipeWire configuration files.
//
// Keep this package lean: parsing, merging and grouping live in the internal
// packages, and commands only select a target and present results.
package main
