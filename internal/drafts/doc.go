// Package drafts persists staged edits between pwtune invocations.
//
// Drafts live in a small SQLite database keyed by configuration file,
// section and key. Each row records the snapshot that staged it so a later
// run can tell which model construction produced the edit. Writers take an
// advisory file lock next to the database, which keeps concurrent CLI
// invocations from interleaving multi-row updates.
package drafts
