package model_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"pwtune/internal/catalog"
	"pwtune/internal/model"
	"pwtune/internal/services"
	"pwtune/internal/services/pwconfig"
)

type fakeFetcher struct {
	current  string
	defaults string
	paths    string

	currentErr  error
	defaultsErr error
	pathsErr    error

	mu    sync.Mutex
	calls []string
}

func (f *fakeFetcher) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeFetcher) Current(_ context.Context, file, section string) (string, error) {
	f.record("current " + file + " " + section)
	return f.current, f.currentErr
}

func (f *fakeFetcher) Defaults(_ context.Context, file, section string) (string, error) {
	f.record("defaults " + file + " " + section)
	return f.defaults, f.defaultsErr
}

func (f *fakeFetcher) Paths(_ context.Context, file string) (string, error) {
	f.record("paths " + file)
	return f.paths, f.pathsErr
}

const defaultsDump = `{
  "stream.properties": {
    #node.latency = 1024/48000
    #resample.quality = 4
    #channelmix.normalize = false
    #channelmix.upmix = true
    #channelmix.upmix-method = psd # none, simple
  }
}`

func newFetcher() *fakeFetcher {
	return &fakeFetcher{
		current: `{
  "/usr/share/pipewire/pipewire-pulse.conf": {"resample.quality": 4, "channelmix.upmix": true, "node.latency": "1024/48000"},
  "/etc/pipewire/pipewire-pulse.conf.d/20-late.conf": {"resample.quality": 10},
  "/etc/pipewire/pipewire-pulse.conf.d/5-early.conf": {"resample.quality": 7, "channelmix.upmix": false},
  "channelmix.normalize": true,
  "channelmix.mix-lfe": [1, 2]
}`,
		defaults: defaultsDump,
		paths:    `{"config.path":"/usr/share/pipewire/pipewire-pulse.conf","override.paths":["/etc/pipewire/pipewire-pulse.conf.d/5-early.conf"]}`,
	}
}

var streamTarget = catalog.Target{File: "pipewire-pulse.conf", Section: "stream.properties"}

func TestNewBuildsAllCatalogs(t *testing.T) {
	fetcher := newFetcher()
	m, err := model.New(context.Background(), fetcher, streamTarget, model.Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	wantCalls := []string{
		"current pipewire-pulse.conf stream.properties",
		"defaults pipewire-pulse.conf stream.properties",
		"paths pipewire-pulse.conf",
	}
	if !reflect.DeepEqual(fetcher.calls, wantCalls) {
		t.Fatalf("unexpected fetcher calls %v", fetcher.calls)
	}

	if got, _ := m.Current().Get("resample.quality"); !got.Equal(catalog.Number(10)) {
		t.Fatalf("expected highest drop-in to win, got %v", got)
	}
	if got, _ := m.Current().Get("channelmix.upmix"); !got.Equal(catalog.Bool(false)) {
		t.Fatalf("expected drop-in to override main file, got %v", got)
	}
	if got, _ := m.Current().Get("channelmix.normalize"); !got.Equal(catalog.Bool(true)) {
		t.Fatalf("expected top-level scalar to be kept, got %v", got)
	}
	if _, ok := m.Current().Get("channelmix.mix-lfe"); ok {
		t.Fatal("expected array value to be skipped")
	}

	if m.Defaults().Len() != 5 {
		t.Fatalf("expected 5 defaults, got %d", m.Defaults().Len())
	}
	entry, err := m.DefaultEntry("channelmix.upmix-method")
	if err != nil {
		t.Fatalf("DefaultEntry returned error: %v", err)
	}
	if !reflect.DeepEqual(entry.Options, []string{"psd", "none", "simple"}) {
		t.Fatalf("unexpected options %v", entry.Options)
	}

	if len(m.Paths().Entries) != 2 || m.Paths().Entries[0].Key != "config.path" {
		t.Fatalf("unexpected paths %v", m.Paths().Entries)
	}
	if m.Staged().Len() != 0 {
		t.Fatal("expected empty staged catalog")
	}
	if m.SnapshotID() == "" {
		t.Fatal("expected snapshot id")
	}
}

func TestNewAppliesSubsectionFilter(t *testing.T) {
	target := streamTarget
	target.Subsection = "channelmix"
	m, err := model.New(context.Background(), newFetcher(), target, model.Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if want := []string{"channelmix.normalize", "channelmix.upmix", "channelmix.upmix-method"}; !reflect.DeepEqual(m.Defaults().Keys(), want) {
		t.Fatalf("unexpected default keys %v", m.Defaults().Keys())
	}
	if want := []string{"channelmix.normalize", "channelmix.upmix"}; !reflect.DeepEqual(m.Current().Keys(), want) {
		t.Fatalf("unexpected current keys %v", m.Current().Keys())
	}
}

func TestNewMissingSubsection(t *testing.T) {
	target := streamTarget
	target.Subsection = "dither"
	m, err := model.New(context.Background(), newFetcher(), target, model.Options{})
	if m != nil {
		t.Fatal("expected no model")
	}
	var fetchErr *model.FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Catalog != model.CatalogDefaults {
		t.Fatalf("expected defaults FetchError, got %v", err)
	}
	if !errors.Is(err, services.ErrMissingSubsection) {
		t.Fatalf("expected ErrMissingSubsection, got %v", err)
	}
}

func TestNewEmptyDefaultsWithSubsection(t *testing.T) {
	fetcher := newFetcher()
	fetcher.defaults = "{}"
	target := streamTarget
	target.Subsection = "channelmix"
	m, err := model.New(context.Background(), fetcher, target, model.Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if m.Defaults().Len() != 0 {
		t.Fatalf("expected empty defaults, got %d", m.Defaults().Len())
	}
}

func TestNewReportsFailingCatalog(t *testing.T) {
	boom := services.Wrap(services.ErrProcessInvocation, "pwconfig", "run", "exit status 1", nil)
	cases := []struct {
		name    string
		mutate  func(*fakeFetcher)
		catalog string
		marker  error
	}{
		{"current invocation", func(f *fakeFetcher) { f.currentErr = boom }, model.CatalogCurrent, services.ErrProcessInvocation},
		{"current parse", func(f *fakeFetcher) { f.current = "not json" }, model.CatalogCurrent, services.ErrOutputParse},
		{"defaults invocation", func(f *fakeFetcher) { f.defaultsErr = boom }, model.CatalogDefaults, services.ErrProcessInvocation},
		{"defaults parse", func(f *fakeFetcher) { f.defaults = `#a = "x"y` }, model.CatalogDefaults, services.ErrOutputParse},
		{"paths invocation", func(f *fakeFetcher) { f.pathsErr = boom }, model.CatalogPaths, services.ErrProcessInvocation},
		{"paths parse", func(f *fakeFetcher) { f.paths = "[" }, model.CatalogPaths, services.ErrOutputParse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := newFetcher()
			tc.mutate(fetcher)
			m, err := model.New(context.Background(), fetcher, streamTarget, model.Options{})
			if m != nil {
				t.Fatal("expected nil model on failure")
			}
			var fetchErr *model.FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("expected FetchError, got %T %v", err, err)
			}
			if fetchErr.Catalog != tc.catalog {
				t.Fatalf("unexpected catalog %q", fetchErr.Catalog)
			}
			if !errors.Is(err, tc.marker) {
				t.Fatalf("expected %v, got %v", tc.marker, err)
			}
		})
	}
}

func TestNewWithMissingBinary(t *testing.T) {
	client, err := pwconfig.New(filepath.Join(t.TempDir(), "missing-pw-config"), "", 5)
	if err != nil {
		t.Fatalf("pwconfig.New returned error: %v", err)
	}
	m, err := model.New(context.Background(), client, streamTarget, model.Options{})
	if m != nil {
		t.Fatal("expected nil model")
	}
	if !errors.Is(err, services.ErrProcessInvocation) {
		t.Fatalf("expected ErrProcessInvocation, got %v", err)
	}
}

func TestNewRejectsInvalidTarget(t *testing.T) {
	_, err := model.New(context.Background(), newFetcher(), catalog.Target{File: "x"}, model.Options{})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	_, err = model.New(context.Background(), nil, streamTarget, model.Options{})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for nil fetcher, got %v", err)
	}
}

func TestSnapshotIDsDiffer(t *testing.T) {
	a, err := model.New(context.Background(), newFetcher(), streamTarget, model.Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	b, err := model.New(context.Background(), newFetcher(), streamTarget, model.Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if a.SnapshotID() == b.SnapshotID() {
		t.Fatal("expected distinct snapshot ids")
	}
}

func TestStageEdit(t *testing.T) {
	shared := catalog.NewStagedEdits()
	m, err := model.New(context.Background(), newFetcher(), streamTarget, model.Options{Staged: shared})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := m.StageEdit("resample.quality", catalog.Number(8)); err != nil {
		t.Fatalf("StageEdit returned error: %v", err)
	}
	if got, ok := shared.Get("resample.quality"); !ok || !got.Equal(catalog.Number(8)) {
		t.Fatalf("expected shared handle to see edit, got %v %v", got, ok)
	}
	if got, err := m.StagedValue("resample.quality"); err != nil || !got.Equal(catalog.Number(8)) {
		t.Fatalf("unexpected staged value %v %v", got, err)
	}

	err = m.StageEdit("does.not-exist", catalog.Bool(true))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if shared.Len() != 1 {
		t.Fatalf("expected rejected edit to leave catalog unchanged, got %d", shared.Len())
	}

	if err := m.StageEdit("channelmix.upmix-method", catalog.String("fancy")); err != nil {
		t.Fatalf("expected unvalidated edit to succeed, got %v", err)
	}
}

func TestStageEditValidatesOptions(t *testing.T) {
	m, err := model.New(context.Background(), newFetcher(), streamTarget, model.Options{ValidateOptions: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := m.StageEdit("channelmix.upmix-method", catalog.String("fancy")); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := m.StageEdit("channelmix.upmix-method", catalog.String("simple")); err != nil {
		t.Fatalf("StageEdit returned error: %v", err)
	}
	if err := m.StageEdit("resample.quality", catalog.Number(12)); err != nil {
		t.Fatalf("expected keys without options to accept anything, got %v", err)
	}
}

func TestStageEditMatchesDecimalOptions(t *testing.T) {
	fetcher := newFetcher()
	fetcher.defaults = `{
  "stream.properties": {
    #channelmix.lfe-cutoff = 12.0 # 6.0, 24.0
  }
}`
	m, err := model.New(context.Background(), fetcher, streamTarget, model.Options{ValidateOptions: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := m.StageEdit("channelmix.lfe-cutoff", catalog.Number(6)); err != nil {
		t.Fatalf("expected 6 to match option 6.0, got %v", err)
	}
	if err := m.StageEdit("channelmix.lfe-cutoff", catalog.Number(9)); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation for 9, got %v", err)
	}
}

func TestLookupsReportNotFound(t *testing.T) {
	m, err := model.New(context.Background(), newFetcher(), streamTarget, model.Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := m.CurrentValue("nope"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := m.DefaultEntry("nope"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := m.StagedValue("nope"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
