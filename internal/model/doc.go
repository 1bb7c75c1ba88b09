// Package model assembles the Config Model for one configuration target.
//
// New runs the three pw-config queries through a Fetcher, turns the output
// into the Current, Default and Paths catalogs, and attaches a Staged Edit
// Catalog. Construction is all or nothing: a failed query or an unparsable
// dump returns a *FetchError and no model.
package model
