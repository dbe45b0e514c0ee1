package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/wikimill/wikimill/internal/version"
	"github.com/wikimill/wikimill/pkg/logging"
)

var (
	verbosity int
	rootDir   string

	rootCmd = &cobra.Command{
		Use:   "wikimill",
		Short: "A static wiki compiler",
		Long: `wikimill compiles a tree of Markdown wiki pages into HTML and
publishes it into an HTML root, merging the rendered output with bundled
and user static assets using native mirror-with-delete semantics.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Error().Err(err).Msg("command failed")
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Wiki root (default: discovered from the working directory)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(syncHTMLCmd)
	rootCmd.AddCommand(syncStaticCmd)
	rootCmd.AddCommand(cleanHTMLCmd)
	rootCmd.AddCommand(cleanTempCmd)
	rootCmd.AddCommand(vcsIgnoreCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(showConfigCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wikimill version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}
