package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Group management commands",
	}

	cmd.AddCommand(newGroupListCmd())
	cmd.AddCommand(newGroupCreateCmd())
	cmd.AddCommand(newGroupRemoveCmd())

	return cmd
}

func newGroupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List groups in creation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := roster.ListGroups(cmd.Context())
			if err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newGroupCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := roster.CreateGroup(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newGroupRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a group and all of its players",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := roster.RemoveGroup(cmd.Context(), args[0]); err != nil {
				return err
			}

			output(cmd).PrintMessage(fmt.Sprintf("Removed group: %s", args[0]))
			return nil
		},
	}
}
