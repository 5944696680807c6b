package main

import (
	"fmt"
	"time"

	"github.com/fekuna/termas-hotel-service/migrations"
	"github.com/fekuna/termas-hotel-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *options) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := connect(opts)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := migrations.Up(cmd.Context(), db)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", v)
			}
			return nil
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revert the most recent migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := connect(opts)
			if err != nil {
				return err
			}
			defer db.Close()

			v, err := migrations.Down(cmd.Context(), db)
			if err != nil {
				return err
			}
			if v == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No migrations to revert")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reverted %s\n", v)
			return nil
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List embedded migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			versions, err := migrations.Versions()
			if err != nil {
				return err
			}
			for _, v := range versions {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	})

	return migrateCmd
}

func connect(opts *options) (*sqlx.DB, error) {
	pg := opts.cfg.Postgres
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            pg.Host,
		Port:            pg.Port,
		User:            pg.User,
		Password:        pg.Password,
		DBName:          pg.DBName,
		SSLMode:         pg.SSLMode,
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Duration(pg.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(pg.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}
