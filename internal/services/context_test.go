package services_test

import (
	"context"
	"testing"

	"pwtune/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSnapshotID(ctx, "snap-1")
	ctx = services.WithCatalog(ctx, "defaults")

	if id, ok := services.SnapshotIDFromContext(ctx); !ok || id != "snap-1" {
		t.Fatalf("unexpected snapshot id: %v %v", id, ok)
	}
	if name, ok := services.CatalogFromContext(ctx); !ok || name != "defaults" {
		t.Fatalf("unexpected catalog: %v %v", name, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithCatalog(ctx, "")
	ctx = services.WithSnapshotID(ctx, "")
	if _, ok := services.CatalogFromContext(ctx); ok {
		t.Fatal("expected no catalog value")
	}
	if _, ok := services.SnapshotIDFromContext(ctx); ok {
		t.Fatal("expected no snapshot value")
	}
}
