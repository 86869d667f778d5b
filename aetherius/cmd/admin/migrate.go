package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "Create missing tables and bring existing ones up to date",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if err = db.InitializeSchema(ctx); err != nil {
			return err
		}

		slog.Info("Schema is up to date", slog.String("type", "db"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCMD)
}
