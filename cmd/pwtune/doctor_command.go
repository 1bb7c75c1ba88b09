package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pwtune/internal/deps"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that pw-config and packaged templates are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target, err := ctx.resolveTarget(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			statuses = append(statuses, deps.CheckTemplates(cfg.PWConfig.TemplateDir, target.File))

			fmt.Fprintln(out, renderSectionHeader("Dependencies", colorize))
			failed := false
			for _, st := range statuses {
				switch {
				case st.Available:
					fmt.Fprintln(out, renderStatusLine(st.Name, statusOK, st.Resolved, colorize))
				case st.Optional:
					fmt.Fprintln(out, renderStatusLine(st.Name, statusWarn, st.Detail, colorize))
				default:
					failed = true
					fmt.Fprintln(out, renderStatusLine(st.Name, statusError, st.Detail, colorize))
				}
			}
			fmt.Fprintln(out, renderStatusLine("target", statusInfo, target.String(), colorize))
			fmt.Fprintln(out, renderStatusLine("drafts", statusInfo, cfg.Staging.DraftsPath, colorize))
			fmt.Fprintln(out, renderStatusLine("validation", statusInfo, "option lists enforced: "+yesNo(cfg.Staging.ValidateOptions), colorize))
			if failed {
				return errors.New("required dependencies are missing")
			}
			return nil
		},
	}
}
