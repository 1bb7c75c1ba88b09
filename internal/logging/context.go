package logging

import (
	"context"
	"log/slog"

	"pwtune/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldSnapshotID is the standardized structured logging key for model snapshot identifiers.
	FieldSnapshotID = "snapshot_id"
	// FieldCatalog is the standardized structured logging key for the catalog being built.
	FieldCatalog = "catalog"
	// FieldRaw carries unparsed pw-config output. The JSON handler nests it
	// when it is valid JSON.
	FieldRaw = "raw"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := services.SnapshotIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSnapshotID, id))
	}
	if name, ok := services.CatalogFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCatalog, name))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
