// Package commands provides the moodline command line.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/moodline/internal/app"
)

// rootOptions holds flags shared by the root command and its subcommands.
type rootOptions struct {
	configPath string
	apiURL     string
	prefsPath  string
	file       string
	last       int
	version    bool
}

func (o *rootOptions) appOptions() app.Options {
	return app.Options{
		ConfigPath:      o.configPath,
		APIURL:          o.apiURL,
		PrefsPath:       o.prefsPath,
		TranscriptPath:  o.file,
		TranscriptLines: o.last,
	}
}

// NewRootCommand builds the moodline command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "moodline",
		Short: "Terminal client for a conversation sentiment service",
		Long: `moodline sends conversation text to a sentiment analysis service and
shows a label for every sentence.

Examples:
  moodline                                  Start the interactive UI
  moodline --file chat.txt --last 20        Start with the last 20 lines of chat.txt
  moodline check                            Check that the service is reachable
  moodline analyze "I'm tired but hopeful"  Analyze text and print the results
  cat chat.txt | moodline analyze --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.version {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "moodline %s\n", app.Version)
				return err
			}
			return app.Run(cmd.Context(), opts.appOptions())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file path (default ~/.config/moodline/config.toml)")
	flags.StringVar(&opts.apiURL, "api-url", "", "sentiment service base URL (overrides MOODLINE_API_URL and config)")
	flags.StringVarP(&opts.file, "file", "f", "", "read conversation text from a transcript file")
	flags.IntVarP(&opts.last, "last", "n", 0, "with --file, use only the last N lines")
	cmd.Flags().StringVar(&opts.prefsPath, "prefs", "", "prefs file path (default ~/.config/moodline/prefs.toml)")
	cmd.Flags().BoolVarP(&opts.version, "version", "v", false, "show version and exit")

	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newAnalyzeCommand(opts))
	return cmd
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "moodline: %v\n", err)
		return 1
	}
	return 0
}
