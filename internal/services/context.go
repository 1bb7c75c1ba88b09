package services

import "context"

type contextKey string

const (
	snapshotIDKey contextKey = "snapshot_id"
	catalogKey    contextKey = "catalog"
)

// WithSnapshotID annotates context with the model snapshot identifier.
func WithSnapshotID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, snapshotIDKey, id)
}

// SnapshotIDFromContext extracts the snapshot identifier if present.
func SnapshotIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(snapshotIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithCatalog annotates context with the catalog currently being fetched.
func WithCatalog(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, catalogKey, name)
}

// CatalogFromContext returns the catalog name if present.
func CatalogFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(catalogKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
