package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"pwtune/internal/catalog"
	"pwtune/internal/model"
	"pwtune/internal/sections"
)

type entryView struct {
	Key      string         `json:"key"`
	Property string         `json:"property"`
	Label    string         `json:"label"`
	Kind     string         `json:"kind"`
	Default  catalog.Value  `json:"default"`
	Options  []string       `json:"options,omitempty"`
	Current  *catalog.Value `json:"current,omitempty"`
	Staged   *catalog.Value `json:"staged,omitempty"`
}

type sectionView struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Entries []entryView `json:"entries"`
}

type showView struct {
	Target     catalog.Target `json:"target"`
	SnapshotID string         `json:"snapshot_id"`
	Sections   []sectionView  `json:"sections"`
}

func buildShowView(m *model.Model, policy sections.Policy) showView {
	groups := sections.Group(m.Defaults(), policy)
	view := showView{
		Target:     m.Target(),
		SnapshotID: m.SnapshotID(),
		Sections:   make([]sectionView, 0, len(groups)),
	}
	for _, group := range groups {
		sv := sectionView{ID: group.ID, Title: group.Title}
		for _, entry := range group.Entries {
			ev := entryView{
				Key:      entry.Key,
				Property: entry.Property,
				Label:    entry.Label,
				Kind:     entry.Kind.String(),
				Default:  entry.Default.Value,
				Options:  entry.Default.Options,
			}
			if v, ok := m.Current().Get(entry.Key); ok {
				ev.Current = &v
			}
			if v, ok := m.Staged().Get(entry.Key); ok {
				ev.Staged = &v
			}
			sv.Entries = append(sv.Entries, ev)
		}
		view.Sections = append(view.Sections, sv)
	}
	return view
}

func valueCell(v *catalog.Value) string {
	if v == nil {
		return "-"
	}
	return v.Text()
}

func optionsCell(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return strings.Join(options, ", ")
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
