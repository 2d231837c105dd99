package cli

import (
	"github.com/spf13/cobra"
)

func newCreditCmd() *cobra.Command {
	var amount int64

	cmd := &cobra.Command{
		Use:   "credit <player-id>",
		Short: "Credit a player's balance via the internal vault endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"player_id": args[0],
				"amount":    amount,
			}

			var result CreditResult
			if err := client.PostInternal("/api/v1/internal/credit", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "Signed amount to credit")

	return cmd
}
