package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pwtune/internal/catalog"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show grouped defaults next to live and staged values",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.openSession(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			view := buildShowView(sess.model, ctx.groupPolicy())
			if asJSON {
				return writeJSON(cmd, view)
			}
			return renderShow(cmd, view)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of tables")
	return cmd
}

func renderShow(cmd *cobra.Command, view showView) error {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	fmt.Fprintf(out, "Target: %s\n", view.Target)
	if len(view.Sections) == 0 {
		fmt.Fprintln(out, "No packaged defaults found for this target.")
		return nil
	}
	for _, sec := range view.Sections {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderSectionHeader(sec.Title, colorize))
		rows := make([][]string, 0, len(sec.Entries))
		for _, e := range sec.Entries {
			def := e.Default
			rows = append(rows, []string{
				e.Property,
				e.Label,
				e.Kind,
				valueCell(&def),
				valueCell(e.Current),
				valueCell(e.Staged),
				optionsCell(e.Options),
			})
		}
		fmt.Fprintln(out, renderTable(tableLayout{
			headers: []string{"Property", "Label", "Kind", "Default", "Current", "Staged", "Options"},
			widths:  []int{0, 0, 0, 0, 0, 0, optionsWidth},
			rows:    rows,
		}))
	}
	return nil
}

func newCatalogCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newCurrentCommand(ctx),
		newDefaultsCommand(ctx),
		newPathsCommand(ctx),
	}
}

func newCurrentCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "current",
		Short: "List live values merged across config layers",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.openSession(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			current := sess.model.Current()
			if asJSON {
				return writeJSON(cmd, current.Values())
			}
			rows := make([][]string, 0, current.Len())
			for _, key := range current.Keys() {
				v, _ := current.Get(key)
				rows = append(rows, []string{key, v.Kind().String(), v.Text()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableLayout{
				title:   "Current: " + sess.model.Target().String(),
				headers: []string{"Key", "Type", "Value"},
				rows:    rows,
			}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newDefaultsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "List packaged defaults and their enumerated options",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.openSession(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			defaults := sess.model.Defaults()
			if asJSON {
				return writeJSON(cmd, defaults.Entries())
			}
			rows := make([][]string, 0, defaults.Len())
			for _, key := range defaults.Keys() {
				entry, _ := defaults.Get(key)
				rows = append(rows, []string{key, entry.Value.Kind().String(), entry.Value.Text(), optionsCell(entry.Options)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableLayout{
				title:   "Defaults: " + sess.model.Target().String(),
				headers: []string{"Key", "Type", "Default", "Options"},
				widths:  []int{0, 0, 0, optionsWidth},
				rows:    rows,
			}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newPathsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "List the config files contributing to the live configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.openSession(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			paths := sess.model.Paths()
			if asJSON {
				return writeJSON(cmd, json.RawMessage(paths.Raw))
			}
			rows := make([][]string, 0, len(paths.Entries))
			for _, entry := range paths.Entries {
				rows = append(rows, []string{entry.Key, pathsCell(entry)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableLayout{
				title:   "Paths: " + sess.model.Target().File,
				headers: []string{"Key", "Files"},
				rows:    rows,
			}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func pathsCell(entry catalog.PathEntry) string {
	if files := entry.Strings(); len(files) > 0 {
		return strings.Join(files, "\n")
	}
	return entry.Raw
}
