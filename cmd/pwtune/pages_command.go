package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pwtune/internal/catalog"
)

func newPagesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "pages",
		Short:       "List display pages usable with --page",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			type pageView struct {
				Index  int            `json:"index"`
				Title  string         `json:"title"`
				Target catalog.Target `json:"target"`
			}
			var pages []pageView
			for i, page := range catalog.Pages() {
				target, err := page.Target()
				if err != nil {
					return err
				}
				pages = append(pages, pageView{Index: i, Title: page.Title(), Target: target})
			}
			if asJSON {
				return writeJSON(cmd, pages)
			}
			rows := make([][]string, 0, len(pages))
			for _, p := range pages {
				sub := p.Target.Subsection
				if sub == "" {
					sub = "-"
				}
				rows = append(rows, []string{strconv.Itoa(p.Index), p.Title, p.Target.File, p.Target.Section, sub})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableLayout{
				headers: []string{"Index", "Title", "File", "Section", "Subsection"},
				aligns:  []columnAlignment{alignRight},
				rows:    rows,
			}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
