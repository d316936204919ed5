package main

import (
	"github.com/spf13/cobra"
)

// buildRootCommand returns the shared command context alongside the root so
// the caller can release its resources after Execute.
func buildRootCommand() (*cobra.Command, *commandContext) {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:           "texbridge",
		Short:         "Convert LaTeX fragments through a latexmls daemon",
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

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.host, "host", "", "Daemon host (overrides server.host)")
	rootCmd.PersistentFlags().IntVar(&flags.port, "port", 0, "Daemon port (overrides server.port)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newConvertCommand(ctx))
	for _, cmd := range newDaemonCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newParseLogCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd, ctx
}
