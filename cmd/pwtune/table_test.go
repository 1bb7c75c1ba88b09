package main

import (
	"strings"
	"testing"
)

func TestRenderTableKeepsPathsWhole(t *testing.T) {
	path := "/etc/pipewire/pipewire-pulse.conf.d/10-quality.conf"
	out := renderTable(tableLayout{
		headers: []string{"Key", "Files"},
		rows: [][]string{
			{"override.paths", path + "\n" + strings.Repeat("/very/long/directory", 4) + "/20-extra.conf"},
		},
	})
	if !strings.Contains(out, path) {
		t.Fatalf("expected %q unbroken in:\n%s", path, out)
	}
	if !strings.Contains(out, strings.Repeat("/very/long/directory", 4)+"/20-extra.conf") {
		t.Fatalf("expected long path unbroken in:\n%s", out)
	}
}

func TestRenderTableWrapsCappedColumns(t *testing.T) {
	options := strings.Repeat("choice,", 12)
	out := renderTable(tableLayout{
		headers: []string{"Key", "Options"},
		widths:  []int{0, optionsWidth},
		rows:    [][]string{{"channelmix.upmix-method", options}},
	})
	if strings.Contains(out, options) {
		t.Fatalf("expected options wider than %d to wrap:\n%s", optionsWidth, out)
	}
	if !strings.Contains(out, "channelmix.upmix-method") {
		t.Fatalf("expected key unbroken in:\n%s", out)
	}
}
