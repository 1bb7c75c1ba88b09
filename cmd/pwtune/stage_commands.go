package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pwtune/internal/catalog"
	"pwtune/internal/spajson"
)

func newStageCommand(ctx *commandContext) *cobra.Command {
	var asString bool

	cmd := &cobra.Command{
		Use:   "stage KEY VALUE",
		Short: "Stage an edit for a key present in the packaged defaults",
		Long: "Stage an edit for a key present in the packaged defaults.\n\n" +
			"VALUE is typed the same way packaged defaults are: numbers and true/false\n" +
			"become numbers and booleans, anything else is a string. Use --string to\n" +
			"keep a numeric-looking value as text.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.openSession(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			value := parseEditValue(args[1], asString)
			if err := stageAndPersist(cmd.Context(), sess, args[0], value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Staged %s = %s (%s)\n", args[0], value.Text(), value.Kind())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asString, "string", false, "Treat VALUE as a string")
	return cmd
}

func parseEditValue(text string, asString bool) catalog.Value {
	if asString {
		return catalog.String(text)
	}
	return spajson.InferValue(text)
}

// stageAndPersist validates the edit against the model and writes it to the
// drafts store under the model's snapshot.
func stageAndPersist(ctx context.Context, sess *session, key string, value catalog.Value) error {
	if err := sess.model.StageEdit(key, value); err != nil {
		return err
	}
	edit := []catalog.Edit{{Key: key, Value: value}}
	if err := sess.drafts.Save(ctx, sess.model.Target(), sess.model.SnapshotID(), edit); err != nil {
		return fmt.Errorf("persist staged edit: %w", err)
	}
	return nil
}

func newStagedCommand(ctx *commandContext) *cobra.Command {
	stagedCmd := &cobra.Command{
		Use:   "staged",
		Short: "Inspect or discard persisted staged edits",
	}
	list := newStagedListCommand(ctx)
	stagedCmd.RunE = list.RunE
	stagedCmd.Flags().AddFlagSet(list.Flags())
	stagedCmd.AddCommand(list)
	stagedCmd.AddCommand(newStagedClearCommand(ctx))
	return stagedCmd
}

func newStagedListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List staged edits for the selected target",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := ctx.resolveTarget(cmd)
			if err != nil {
				return err
			}
			store, err := ctx.openDrafts()
			if err != nil {
				return err
			}
			defer store.Close()

			list, err := store.List(cmd.Context(), target)
			if err != nil {
				return err
			}
			if asJSON {
				edits := make([]catalog.Edit, 0, len(list))
				for _, d := range list {
					edits = append(edits, catalog.Edit{Key: d.Key, Value: d.Value})
				}
				return writeJSON(cmd, edits)
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintf(out, "No staged edits for %s\n", target)
				return nil
			}
			rows := make([][]string, 0, len(list))
			for _, d := range list {
				rows = append(rows, []string{
					d.Key,
					d.Value.Text(),
					d.Value.Kind().String(),
					shortSnapshot(d.SnapshotID),
					formatUpdated(d.UpdatedAt),
				})
			}
			fmt.Fprintln(out, renderTable(tableLayout{
				title:   "Staged: " + target.String(),
				headers: []string{"Key", "Value", "Type", "Snapshot", "Updated"},
				rows:    rows,
			}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newStagedClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard persisted staged edits for the selected target",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := ctx.resolveTarget(cmd)
			if err != nil {
				return err
			}
			store, err := ctx.openDrafts()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context(), target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d staged edit(s) for %s\n", removed, target)
			return nil
		},
	}
}

func shortSnapshot(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatUpdated(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}
