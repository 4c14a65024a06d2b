package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/teamsplit/internal/model"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerRemoveCmd())

	return cmd
}

func newPlayerAddCmd() *cobra.Command {
	var group, team string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a player to a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := model.ParseTeam(team)
			if err != nil {
				return err
			}

			result, err := roster.AddPlayer(cmd.Context(), group, model.Player{Name: args[0], Team: t})
			if err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Group name (required)")
	cmd.Flags().StringVarP(&team, "team", "t", "", "Team: A or B (required)")
	_ = cmd.MarkFlagRequired("group")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	var group, team string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the players of a group, optionally for one team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var t model.Team
			if team != "" {
				parsed, err := model.ParseTeam(team)
				if err != nil {
					return err
				}
				t = parsed
			}

			result, err := roster.ListPlayers(cmd.Context(), group, t)
			if err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Group name (required)")
	cmd.Flags().StringVarP(&team, "team", "t", "", "Only list this team: A or B")
	_ = cmd.MarkFlagRequired("group")

	return cmd
}

func newPlayerRemoveCmd() *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a player from a group",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := roster.RemovePlayer(cmd.Context(), group, args[0]); err != nil {
				return err
			}

			output(cmd).PrintMessage(fmt.Sprintf("Removed %s from %s", args[0], group))
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Group name (required)")
	_ = cmd.MarkFlagRequired("group")

	return cmd
}
