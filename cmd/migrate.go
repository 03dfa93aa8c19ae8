package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	config "task-service.com/task-service/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := config.NewLogger(os.Stdout, cfg.LogLevel)

		if cfg.DatabaseDriver == "memory" {
			return fmt.Errorf("nothing to migrate for the memory driver")
		}

		// NewDatabaseClient migrates on open.
		db, err := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer config.CloseDatabase(db)

		logger.Info("schema migrated", "driver", cfg.DatabaseDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
