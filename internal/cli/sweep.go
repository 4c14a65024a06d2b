package cli

import (
	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove player lists left behind by deleted groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := roster.Sweep(cmd.Context())
			if err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
