// Package sections groups a Default Catalog into display sections keyed by
// the first dotted segment of each key.
package sections
