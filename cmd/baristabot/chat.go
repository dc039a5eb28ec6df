package main

import (
	"context"

	"github.com/aretw0/baristabot/internal/cli"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Order drinks interactively",
	Long: `Starts an ordering conversation in the terminal. Type q, quit or exit to leave.
With --session the conversation is saved after each turn and can be resumed later.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		sessionID, _ := cmd.Flags().GetString("session")
		jsonMode, _ := cmd.Flags().GetBool("json")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		err = cli.RunChat(sigCtx, app, cli.ChatOptions{
			SessionID: sessionID,
			JSON:      jsonMode,
		})
		if interrupted := sigCtx.Interrupted(); interrupted != nil {
			return interrupted
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringP("session", "s", "", "Session ID to create or resume (default: a new random ID)")
	chatCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
}
