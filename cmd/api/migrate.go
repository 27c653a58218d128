package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/calendario-app/calendario-backend/config"
	"github.com/calendario-app/calendario-backend/internal/db"
	"github.com/calendario-app/calendario-backend/internal/storage/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(db.Up)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the last migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(db.Down)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}

func runMigrations(dir db.Direction) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	conn, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.Migrate(conn, dir); err != nil {
		return err
	}
	log.Printf("[info] operation=migrate direction=%s done", dir)
	return nil
}
