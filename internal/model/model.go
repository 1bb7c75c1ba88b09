package model

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"pwtune/internal/catalog"
	"pwtune/internal/logging"
	"pwtune/internal/services"
	"pwtune/internal/services/pwconfig"
	"pwtune/internal/spajson"
)

// Options tune model construction.
type Options struct {
	// Staged is shared with the caller when set. A nil handle gives the model
	// a fresh, empty catalog.
	Staged *catalog.StagedEdits
	// ValidateOptions makes StageEdit reject values outside a key's option list.
	ValidateOptions bool
	Logger          *slog.Logger
}

// Model is a point-in-time view of one configuration target.
type Model struct {
	target     catalog.Target
	snapshotID string
	current    catalog.Current
	defaults   catalog.Defaults
	paths      catalog.Paths
	staged     *catalog.StagedEdits
	validate   bool
	logger     *slog.Logger
}

// New fetches and parses every catalog for target.
func New(ctx context.Context, fetcher pwconfig.Fetcher, target catalog.Target, opts Options) (*Model, error) {
	if fetcher == nil {
		return nil, services.Wrap(services.ErrConfiguration, "model", "new", "fetcher is required", nil)
	}
	if err := target.Validate(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "model", "new", "", err)
	}

	snapshotID := uuid.NewString()
	ctx = services.WithSnapshotID(ctx, snapshotID)

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "model").With(logging.String("target", target.String()))

	m := &Model{
		target:     target,
		snapshotID: snapshotID,
		staged:     opts.Staged,
		validate:   opts.ValidateOptions,
		logger:     logger,
	}
	if m.staged == nil {
		m.staged = catalog.NewStagedEdits()
	}

	var err error
	if m.current, err = m.buildCurrent(services.WithCatalog(ctx, CatalogCurrent), fetcher); err != nil {
		return nil, &FetchError{Catalog: CatalogCurrent, Err: err}
	}
	if m.defaults, err = m.buildDefaults(services.WithCatalog(ctx, CatalogDefaults), fetcher); err != nil {
		return nil, &FetchError{Catalog: CatalogDefaults, Err: err}
	}
	if m.paths, err = m.buildPaths(services.WithCatalog(ctx, CatalogPaths), fetcher); err != nil {
		return nil, &FetchError{Catalog: CatalogPaths, Err: err}
	}

	logging.WithContext(ctx, logger).Info("config model ready",
		logging.Int("current", m.current.Len()),
		logging.Int("defaults", m.defaults.Len()),
		logging.Int("paths", len(m.paths.Entries)),
	)
	return m, nil
}

func (m *Model) buildCurrent(ctx context.Context, fetcher pwconfig.Fetcher) (catalog.Current, error) {
	raw, err := fetcher.Current(ctx, m.target.File, m.target.Section)
	if err != nil {
		return catalog.Current{}, err
	}
	obj, err := catalog.ParseObject(raw)
	if err != nil {
		return catalog.Current{}, services.Wrap(services.ErrOutputParse, "model", "current", "live dump", err)
	}
	values, skipped := flattenCurrent(obj)
	for _, key := range skipped {
		logging.WithContext(ctx, m.logger).Debug("skipping non-scalar live value", logging.String("key", key))
	}
	for key := range values {
		if !m.target.Contains(key) {
			delete(values, key)
		}
	}
	return catalog.NewCurrent(values), nil
}

func (m *Model) buildDefaults(ctx context.Context, fetcher pwconfig.Fetcher) (catalog.Defaults, error) {
	raw, err := fetcher.Defaults(ctx, m.target.File, m.target.Section)
	if err != nil {
		return catalog.Defaults{}, err
	}
	res, err := spajson.Parse(raw, spajson.WithLogger(logging.WithContext(ctx, m.logger)))
	if err != nil {
		return catalog.Defaults{}, err
	}
	fields, err := spajson.Decode(res)
	if err != nil {
		return catalog.Defaults{}, err
	}

	entries := make(map[string]catalog.DefaultEntry, len(fields))
	for _, field := range fields {
		if !m.target.Contains(field.Key) {
			continue
		}
		entries[field.Key] = catalog.DefaultEntry{Value: field.Value, Options: res.Options[field.Key]}
	}
	if len(fields) > 0 && len(entries) == 0 {
		return catalog.Defaults{}, services.Wrap(services.ErrMissingSubsection, "model", "defaults",
			fmt.Sprintf("no keys under %q", m.target.Subsection), nil)
	}
	return catalog.NewDefaults(entries), nil
}

func (m *Model) buildPaths(ctx context.Context, fetcher pwconfig.Fetcher) (catalog.Paths, error) {
	raw, err := fetcher.Paths(ctx, m.target.File)
	if err != nil {
		return catalog.Paths{}, err
	}
	paths, err := catalog.ParsePaths(raw)
	if err != nil {
		return catalog.Paths{}, services.Wrap(services.ErrOutputParse, "model", "paths", "search path listing", err)
	}
	return paths, nil
}

// Target returns the configuration target the model covers.
func (m *Model) Target() catalog.Target { return m.target }

// SnapshotID identifies this construction in logs and drafts.
func (m *Model) SnapshotID() string { return m.snapshotID }

func (m *Model) Current() catalog.Current { return m.current }

func (m *Model) Defaults() catalog.Defaults { return m.defaults }

func (m *Model) Paths() catalog.Paths { return m.paths }

// Staged returns the shared staged edit handle.
func (m *Model) Staged() *catalog.StagedEdits { return m.staged }

// CurrentValue looks up a live value.
func (m *Model) CurrentValue(key string) (catalog.Value, error) {
	v, ok := m.current.Get(key)
	if !ok {
		return catalog.Value{}, services.Wrap(services.ErrNotFound, "model", "current", key, nil)
	}
	return v, nil
}

// DefaultEntry looks up a packaged default.
func (m *Model) DefaultEntry(key string) (catalog.DefaultEntry, error) {
	entry, ok := m.defaults.Get(key)
	if !ok {
		return catalog.DefaultEntry{}, services.Wrap(services.ErrNotFound, "model", "defaults", key, nil)
	}
	return entry, nil
}

// StagedValue looks up a staged edit.
func (m *Model) StagedValue(key string) (catalog.Value, error) {
	v, ok := m.staged.Get(key)
	if !ok {
		return catalog.Value{}, services.Wrap(services.ErrNotFound, "model", "staged", key, nil)
	}
	return v, nil
}

// StageEdit records value for key. The key must exist in the Default Catalog.
// With option validation enabled the value must also be one of the key's
// enumerated options.
func (m *Model) StageEdit(key string, value catalog.Value) error {
	entry, err := m.DefaultEntry(key)
	if err != nil {
		return err
	}
	if m.validate && !entry.Allows(value, spajson.InferValue) {
		return services.Wrap(services.ErrValidation, "model", "stage",
			fmt.Sprintf("%s: %q is not one of %v", key, value.Text(), entry.Options), nil)
	}
	if err := m.staged.Set(key, value); err != nil {
		return services.Wrap(services.ErrValidation, "model", "stage", key, err)
	}
	m.logger.Debug("staged edit",
		logging.String(logging.FieldSnapshotID, m.snapshotID),
		logging.String("key", key),
		logging.String("value", value.Text()),
	)
	return nil
}
