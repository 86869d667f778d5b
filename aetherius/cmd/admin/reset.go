package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var resetConfirmed bool

var resetCMD = &cobra.Command{
	Use:   "reset",
	Short: "Truncate every Aetherius table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetConfirmed {
			return errors.New("refusing to wipe progress without --yes")
		}
		ctx := cmd.Context()

		db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		return db.ResetAppTables(ctx)
	},
}

func init() {
	resetCMD.Flags().BoolVar(&resetConfirmed, "yes", false, "confirm the reset")
	rootCmd.AddCommand(resetCMD)
}
