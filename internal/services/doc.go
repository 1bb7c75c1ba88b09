// Package services defines shared utilities consumed by the catalog builders
// and the pw-config integration.
//
// Key responsibilities:
//   - Context helpers that stamp snapshot IDs and catalog names for logging.
//   - Structured error markers plus the Wrap helper that classify failures as
//     process invocation, output parse, missing subsection, not-found,
//     validation, or configuration errors.
//
// Use these helpers when wiring new catalog logic so error handling and
// observability stay uniform across the model.
package services
