package catalog_test

import (
	"strings"
	"testing"

	"pwtune/internal/catalog"
)

func TestPageFromIndex(t *testing.T) {
	for i, want := range catalog.Pages() {
		page, err := catalog.PageFromIndex(i)
		if err != nil {
			t.Fatalf("PageFromIndex(%d) returned error: %v", i, err)
		}
		if page != want {
			t.Fatalf("PageFromIndex(%d) = %v, want %v", i, page, want)
		}
	}
	for _, bad := range []int{-1, 2, 99} {
		_, err := catalog.PageFromIndex(bad)
		if err == nil {
			t.Fatalf("expected error for index %d", bad)
		}
		if !strings.Contains(err.Error(), "not one of 0, 1") {
			t.Fatalf("expected valid indexes in error, got %v", err)
		}
	}
}

func TestPageTargets(t *testing.T) {
	surround, err := catalog.PageSurround.Target()
	if err != nil {
		t.Fatalf("Target returned error: %v", err)
	}
	if surround.File != "pipewire-pulse.conf" || surround.Section != "stream.properties" || surround.Subsection != "channelmix" {
		t.Fatalf("unexpected surround target %+v", surround)
	}
	main, err := catalog.PageMain.Target()
	if err != nil {
		t.Fatalf("Target returned error: %v", err)
	}
	if main.Subsection != "" {
		t.Fatalf("expected main page to cover the whole section, got %+v", main)
	}
	if _, err := catalog.Page(7).Target(); err == nil {
		t.Fatal("expected error for unknown page")
	}
	if !strings.Contains(catalog.Page(7).Title(), "7") {
		t.Fatalf("unexpected title for unknown page: %q", catalog.Page(7).Title())
	}
}

func TestTargetValidateAndString(t *testing.T) {
	if err := (catalog.Target{Section: "x"}).Validate(); err == nil {
		t.Fatal("expected error for missing file")
	}
	if err := (catalog.Target{File: "x"}).Validate(); err == nil {
		t.Fatal("expected error for missing section")
	}
	target := catalog.Target{File: "pipewire-pulse.conf", Section: "stream.properties", Subsection: "channelmix"}
	if target.String() != "pipewire-pulse.conf:stream.properties/channelmix" {
		t.Fatalf("unexpected String(): %q", target.String())
	}
	if !target.Contains("channelmix.upmix") || target.Contains("dither.noise") {
		t.Fatal("unexpected Contains result")
	}
}

func TestParsePathsKeepsDocumentOrder(t *testing.T) {
	paths, err := catalog.ParsePaths(`{"z.path":"/etc/pipewire/pipewire-pulse.conf","a.paths":["/usr/share/a.conf","/etc/b.conf"]}`)
	if err != nil {
		t.Fatalf("ParsePaths returned error: %v", err)
	}
	if len(paths.Entries) != 2 || paths.Entries[0].Key != "z.path" || paths.Entries[1].Key != "a.paths" {
		t.Fatalf("unexpected entries %v", paths.Entries)
	}
	if got := paths.Entries[0].Strings(); len(got) != 1 || got[0] != "/etc/pipewire/pipewire-pulse.conf" {
		t.Fatalf("unexpected strings %v", got)
	}
	if got := paths.Entries[1].Strings(); len(got) != 2 || got[1] != "/etc/b.conf" {
		t.Fatalf("unexpected strings %v", got)
	}
	if _, err := catalog.ParsePaths("not json"); err == nil {
		t.Fatal("expected error for invalid listing")
	}
}
