package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/moodline/internal/app"
	"github.com/five82/moodline/internal/state"
)

func newCheckCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the sentiment service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(root.appOptions())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			a.Controller.CheckHealth(cmd.Context())
			snap := a.Store.Snapshot()
			if snap.Status != state.StatusConnected {
				return errors.New(snap.ErrorMessage)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "connected to %s\n", a.Client.BaseURL())
			return err
		},
	}
}
