package cmd

import (
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

type rootOptions struct {
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "paperswipe",
		Short:         "PaperSwipe: triage recommended research papers by swiping",
		Long:          "paperswipe asks a hosted recommendation workflow for papers on a research topic, lets you swipe through them in the terminal and keeps the ones you save in a local library.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsApp(cmd) {
				return nil
			}
			return app.wire(*opts, cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return app.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default: ~/.paperswipe/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSearchCmd(app),
		newLibraryCmd(app),
		newParseCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}

func needsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return false
	default:
		return true
	}
}
