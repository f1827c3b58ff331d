package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/orderbot/internal/config"
	"github.com/dshills/orderbot/internal/logging"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// Loaded once per invocation by the root pre-run hook
var (
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "orderbot",
	Short: "Restaurant ordering bot served over MCP",
	Long: `orderbot walks chat users through a demo restaurant menu, keeps their
carts and records confirmed orders in SQLite. The operator receives a
notification for every new order.

Configuration is read from .env, the YAML file named by ORDERBOT_CONFIG and
the environment (BOT_TOKEN, ADMIN_ID, ORDERBOT_DB_PATH, ...).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}

		// Logs go to stderr; stdout carries the MCP protocol
		l, err := logging.New(c.LogLevel, c.Env)
		if err != nil {
			return err
		}

		cfg, logger = c, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
