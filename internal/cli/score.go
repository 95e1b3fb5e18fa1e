package cli

import (
	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score submission commands",
	}

	cmd.AddCommand(newScoreSubmitCmd())

	return cmd
}

func newScoreSubmitCmd() *cobra.Command {
	var (
		score              int64
		duration           int64
		enemiesKilled      int64
		asteroidsDestroyed int64
		nukesUsed          int64
	)

	cmd := &cobra.Command{
		Use:   "submit <player-id>",
		Short: "Submit a completed match result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int64{
				"score":               score,
				"duration_seconds":    duration,
				"enemies_killed":      enemiesKilled,
				"asteroids_destroyed": asteroidsDestroyed,
				"nukes_used":          nukesUsed,
			}

			var result PlayerStats
			if err := client.Post("/api/v1/players/"+args[0]+"/scores", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&score, "score", 0, "Final score (required)")
	cmd.Flags().Int64Var(&duration, "duration", 0, "Match duration in seconds")
	cmd.Flags().Int64Var(&enemiesKilled, "enemies", 0, "Enemies killed")
	cmd.Flags().Int64Var(&asteroidsDestroyed, "asteroids", 0, "Asteroids destroyed")
	cmd.Flags().Int64Var(&nukesUsed, "nukes", 0, "Nukes used")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}
