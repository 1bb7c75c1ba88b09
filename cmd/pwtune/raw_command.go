package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

func newRawCommand(ctx *commandContext) *cobra.Command {
	rawCmd := &cobra.Command{
		Use:       "raw current|defaults|paths",
		Short:     "Print unprocessed pw-config output for the selected target",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"current", "defaults", "paths"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := ctx.resolveTarget(cmd)
			if err != nil {
				return err
			}
			client, err := ctx.newClient()
			if err != nil {
				return err
			}

			var text string
			switch args[0] {
			case "current":
				text, err = client.Current(cmd.Context(), target.File, target.Section)
			case "defaults":
				text, err = client.Defaults(cmd.Context(), target.File, target.Section)
			default:
				text, err = client.Paths(cmd.Context(), target.File)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !gjson.Valid(text) {
				fmt.Fprint(out, text)
				return nil
			}
			formatted := pretty.Pretty([]byte(text))
			if shouldColorize(out) {
				formatted = pretty.Color(formatted, nil)
			}
			_, err = out.Write(formatted)
			return err
		},
	}
	return rawCmd
}
