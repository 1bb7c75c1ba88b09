// Package pwconfig wraps the pw-config command-line tool.
//
// It builds the three fixed argument shapes the configuration model relies on
// (live dump, packaged-default dump, search-path listing), runs them through an
// injectable Executor, and returns stdout as text. Any non-zero exit or I/O
// failure is reported as services.ErrProcessInvocation; stderr is never
// inspected. Parsing of the returned text lives in the catalog and spajson
// packages so this layer stays a thin process boundary.
package pwconfig
