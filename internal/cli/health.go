package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the store or server is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := roster.Health(cmd.Context())
			if err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
