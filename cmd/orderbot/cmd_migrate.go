package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/orderbot/internal/storage"
)

// migrateCmd groups schema maintenance commands
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd, storage.ApplyMigrations, "Migrations applied")
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Long: `Roll back the most recent migration.

Rolling back the initial schema drops every table, orders included.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd, storage.RollbackMigration, "Rolled back the latest migration")
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

func runMigration(cmd *cobra.Command, fn func(context.Context, *sql.DB) error, done string) error {
	path, err := cfg.ResolveDBPath()
	if err != nil {
		return err
	}

	if err := migrate(cmd.Context(), path, fn); err != nil {
		return err
	}

	logger.Info("migration finished", zap.String("db_path", path), zap.String("result", done))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), done)
	return err
}

// migrate opens the database without the migrate-and-seed step of
// NewSQLiteStorage and runs fn against it
func migrate(ctx context.Context, path string, fn func(context.Context, *sql.DB) error) error {
	db, err := storage.OpenDatabase(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	return fn(ctx, db)
}
