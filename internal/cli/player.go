package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerCreateCmd())
	cmd.AddCommand(newPlayerStatsCmd())
	cmd.AddCommand(newPlayerScoresCmd())

	return cmd
}

func newPlayerCreateCmd() *cobra.Command {
	var nickname string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Get or create the player for the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if nickname == "" {
				return fmt.Errorf("--nickname is required")
			}

			req := map[string]string{"nickname": nickname}
			var result Player

			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "Nickname (required)")
	_ = cmd.MarkFlagRequired("nickname")

	return cmd
}

func newPlayerStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <player-id>",
		Short: "Show a player's aggregate stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerStats

			if err := client.Get("/api/v1/players/"+args[0]+"/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	return cmd
}

func newPlayerScoresCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "scores <player-id>",
		Short: "Show a player's most recent scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/players/" + args[0] + "/scores"
			if limit > 0 {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}

			var result []ScoreRecord
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of scores (server default if unset)")

	return cmd
}
