package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/familyboard/familyboard/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// NewRootCmd constructs the familyboard command tree. Flags are bound onto
// the same viper keys as the environment, so a flag wins over its variable.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "familyboard",
		Short:         "Shared board of family recipes and wishes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(viper.GetString("LOG_LEVEL"))
		},
	}

	cmd.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error")
	bindFlag(cmd, "LOG_LEVEL", "log-level", true)

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newBackupCmd())
	cmd.AddCommand(newRestoreCmd())
	cmd.AddCommand(newWatchCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }
	return cmd
}

func bindFlag(cmd *cobra.Command, key, flag string, persistent bool) {
	fs := cmd.Flags()
	if persistent {
		fs = cmd.PersistentFlags()
	}
	_ = viper.BindPFlag(key, fs.Lookup(flag))
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}
