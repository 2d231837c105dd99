package cli

import (
	"github.com/spf13/cobra"
)

func newConnectCmd() *cobra.Command {
	var hwid string
	var sensitivity float64

	cmd := &cobra.Command{
		Use:   "connect <player-id>",
		Short: "Connect a player session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"player_id": args[0],
				"hwid":      hwid,
				"behavior": map[string]any{
					"sensitivity": sensitivity,
				},
			}

			var result ConnectResult
			if err := client.Post("/api/v1/game/connect", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&hwid, "hwid", "", "Device fingerprint (required)")
	cmd.Flags().Float64Var(&sensitivity, "sensitivity", 0, "Input sensitivity sample")
	_ = cmd.MarkFlagRequired("hwid")

	return cmd
}

func newSyncCmd() *cobra.Command {
	var x, y, recoil float64
	var shooting bool

	cmd := &cobra.Command{
		Use:   "sync <player-id>",
		Short: "Send a telemetry sync packet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"player_id": args[0],
				"packet": map[string]any{
					"x":           x,
					"y":           y,
					"is_shooting": shooting,
					"recoil":      recoil,
				},
			}

			var result SyncResult
			if err := client.Post("/api/v1/game/sync", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "X coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "Y coordinate")
	cmd.Flags().BoolVar(&shooting, "shooting", false, "Packet reports shooting")
	cmd.Flags().Float64Var(&recoil, "recoil", 0, "Reported recoil")

	return cmd
}

func newDisconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect <player-id>",
		Short: "Disconnect a player session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"player_id": args[0],
			}

			if err := client.Post("/api/v1/game/disconnect", body, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("disconnected")
			return nil
		},
	}
}
