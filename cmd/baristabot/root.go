package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/baristabot/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "baristabot",
	Short: "BaristaBot is a conversational cafe ordering agent",
	Long: `BaristaBot takes drink orders in natural language: it answers menu questions,
collects the order, confirms it with the customer and sends it to the kitchen.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an interrupted chat to 128+signal and every other failure to 1.
func exitCode(err error) int {
	var interrupted *cli.InterruptedError
	if errors.As(err, &interrupted) {
		return interrupted.ExitCode()
	}
	return 1
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Project directory; file sessions live in <dir>/.baristabot/sessions")
	rootCmd.PersistentFlags().String("store", cli.StoreFile, "Session store: file, memory or redis")
	rootCmd.PersistentFlags().String("redis-url", "", "Redis URL for --store redis (default $BARISTABOT_REDIS_URL)")
	rootCmd.PersistentFlags().String("menu", "", "YAML menu file (default: built-in menu)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("redact-pii", false, "Mask e-mail addresses and phone numbers before saving sessions")
}

// openApp builds the application from the global flags.
func openApp(cmd *cobra.Command) (*cli.App, error) {
	flags := cmd.Flags()
	opts := cli.Options{}
	opts.Dir, _ = flags.GetString("dir")
	opts.Store, _ = flags.GetString("store")
	opts.RedisURL, _ = flags.GetString("redis-url")
	opts.MenuPath, _ = flags.GetString("menu")
	opts.LogLevel, _ = flags.GetString("log-level")
	opts.RedactPII, _ = flags.GetBool("redact-pii")
	return cli.NewApp(opts)
}
