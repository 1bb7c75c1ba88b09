package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// optionsWidth wraps long option lists instead of stretching the table.
const optionsWidth = 48

type tableLayout struct {
	title   string
	headers []string
	aligns  []columnAlignment
	// widths caps column widths by position. Zero or missing leaves the
	// column unbounded so keys and paths are never split.
	widths []int
	rows   [][]string
}

func renderTable(layout tableLayout) string {
	columns := len(layout.headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if layout.title != "" {
		tw.SetTitle(layout.title)
	}

	header := make(table.Row, columns)
	for i, h := range layout.headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range layout.rows {
		r := make(table.Row, columns)
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(layout.aligns) && layout.aligns[i] == alignRight {
			align = text.AlignRight
		}
		width := 0
		if i < len(layout.widths) {
			width = layout.widths[i]
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    width,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
