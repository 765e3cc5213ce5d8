package cmd

import (
	"os"

	"elternaccounts/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the elternaccounts command. Subcommands register themselves in init.
var RootCmd = &cobra.Command{
	Use:   "elternaccounts",
	Short: "Parent account reconciliation",
	Long: `Elternaccounts matches the children listed on parent registration forms against
the school registry export and derives the parent accounts to create.

Run "elternaccounts run" for a full reconciliation against object storage, or
"elternaccounts start" to serve the same operations over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}
	l := logger.CLI()
	l.Error("Command failed", zap.String("command", commandPath(os.Args[1:])), zap.Error(err))
	_ = l.Sync()
	os.Exit(1)
}

func commandPath(args []string) string {
	cmd, _, err := RootCmd.Find(args)
	if err != nil || cmd == nil {
		return RootCmd.Name()
	}
	return cmd.CommandPath()
}
