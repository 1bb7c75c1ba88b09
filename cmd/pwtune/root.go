package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &targetFlags{page: -1}
	var configFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag, flags)

	rootCmd := &cobra.Command{
		Use:           "pwtune",
		Short:         "Inspect PipeWire configuration defaults and stage edits",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	pf.StringVar(&logLevelFlag, "log-level", "", "Override logging.level (debug, info, warn, error)")
	pf.IntVar(&flags.page, "page", -1, "Display page index (see `pwtune pages`)")
	pf.StringVar(&flags.file, "file", "", "Configuration file name passed to pw-config --name")
	pf.StringVar(&flags.section, "section", "", "Top-level section to model")
	pf.StringVar(&flags.subsection, "subsection", "", "Only keep keys under this dotted prefix")

	rootCmd.AddCommand(newShowCommand(ctx))
	for _, cmd := range newCatalogCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newStageCommand(ctx))
	rootCmd.AddCommand(newStagedCommand(ctx))
	rootCmd.AddCommand(newShellCommand(ctx))
	rootCmd.AddCommand(newRawCommand(ctx))
	rootCmd.AddCommand(newPagesCommand())
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
