package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/moodline/internal/app"
	"github.com/five82/moodline/internal/report"
	"github.com/five82/moodline/internal/state"
)

// ErrNoInput is returned when analyze has neither an argument, a --file nor
// piped stdin.
var ErrNoInput = errors.New("no input: pass text, use --file, or pipe to stdin")

// ErrNothingToAnalyze is returned when the input holds no sentences.
var ErrNothingToAnalyze = errors.New("nothing to analyze: input has no non-empty lines")

func newAnalyzeCommand(root *rootOptions) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Analyze conversation text and print one label per sentence",
		Long: `Analyze sends each non-empty line of the input to the sentiment service
and prints the labelled results.

Input comes from the text argument, --file (optionally --last N), or stdin.
Output defaults to styled markdown on a terminal and plain text otherwise.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			text, err := readInput(cmd, root, args)
			if err != nil {
				return err
			}

			a, err := app.New(root.appOptions())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if !a.Controller.Analyze(cmd.Context(), text) {
				return ErrNothingToAnalyze
			}
			snap := a.Store.Snapshot()
			if snap.Status == state.StatusError {
				return errors.New(snap.ErrorMessage)
			}
			return report.Write(cmd.OutOrStdout(), snap.Results, outputOptions(cmd.OutOrStdout(), format))
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "", "output format: plain, markdown or json")
	return cmd
}

// readInput resolves the analyze input in order: argument, --file, stdin.
func readInput(cmd *cobra.Command, root *rootOptions, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if root.file != "" {
		return app.LoadTranscript(root.appOptions())
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return "", ErrNoInput
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func outputOptions(w io.Writer, format report.Format) report.Options {
	if f, ok := w.(*os.File); ok {
		return report.ForTerminal(f, format)
	}
	if format == "" {
		format = report.FormatPlain
	}
	return report.Options{Format: format}
}
