package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database"
	"github.com/guardian-of-arcadia/aetherius/aetherius/logger"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "aetherius-admin",
	Short:         "Maintenance tasks for the Aetherius database",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler("Aetherius", slog.LevelInfo)))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("Command failed", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(1)
	}
}

// openDB loads the config and connects. The bot token is not needed here.
func openDB(ctx context.Context) (*database.DB, error) {
	cfg, err := aetherius.LoadDBConfig(configPath)
	if err != nil {
		return nil, err
	}
	return database.New(ctx, database.DBConfig{
		Host:         cfg.Host,
		Port:         cfg.Port,
		User:         cfg.User,
		Password:     cfg.Password,
		Database:     cfg.Database,
		PoolSize:     cfg.PoolSize,
		MaxIdleConns: cfg.MaxIdleConns,
		MaxLifetime:  cfg.MaxLifetime,
		URL:          cfg.URL,
	})
}
