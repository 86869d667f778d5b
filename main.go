package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/guardian-of-arcadia/aetherius/aetherius/commands"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database"
	"github.com/guardian-of-arcadia/aetherius/aetherius/gateway"
	"github.com/guardian-of-arcadia/aetherius/aetherius/handlers"
	"github.com/guardian-of-arcadia/aetherius/aetherius/health"
	"github.com/guardian-of-arcadia/aetherius/aetherius/logger"
	"golang.org/x/sync/errgroup"
)

var (
	version = "dev"
	commit  = "unknown"
)

const questCleanupInterval = 24 * time.Hour

func main() {
	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	slog.SetDefault(slog.New(logger.NewHandler("Aetherius", slog.LevelInfo)))

	cfg, err := aetherius.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(logger.NewHandler("Aetherius", cfg.Log.Level)))

	logger.LogSystem("Starting Aetherius",
		slog.String("version", version),
		slog.String("commit", commit))

	dbStartTime := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	db, err := database.New(ctx, database.DBConfig{
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Database:     cfg.DB.Database,
		PoolSize:     cfg.DB.PoolSize,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxLifetime:  cfg.DB.MaxLifetime,
		URL:          cfg.DB.URL,
	})
	if err != nil {
		cancel()
		slog.Error("Database connection failed",
			slog.String("type", "db"),
			slog.Any("error", err),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	if err = db.InitializeSchema(ctx); err != nil {
		cancel()
		slog.Error("Failed to initialize database schema", slog.String("type", "db"), slog.Any("error", err))
		os.Exit(-1)
	}
	cancel()
	slog.Info("Database ready",
		slog.String("type", "db"),
		slog.Duration("took", time.Since(dbStartTime)))

	b := aetherius.New(*cfg, version, commit)

	h := handler.New()
	commands.Register(h, b)

	// Listeners only dereference b's services once events arrive, after Init.
	if err = b.SetupBot(h,
		bot.NewListenerFunc(b.OnReady),
		handlers.MessageHandler(b),
		handlers.ReactionHandler(b),
		handlers.VoiceJoinHandler(b),
		handlers.VoiceMoveHandler(b),
		handlers.VoiceLeaveHandler(b),
		handlers.MemberJoinHandler(b),
		handlers.GuildLeaveHandler(b),
	); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)))
		os.Exit(-1)
	}
	b.Init(db, gateway.NewDiscord(b.Client))
	defer b.Close()

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands || cfg.Bot.Sync {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands", slog.String("type", "sys"), slog.Any("error", err))
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = b.Client.OpenGateway(ctx)
	cancel()
	if err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)))
		os.Exit(-1)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)

	if cfg.Health.Enabled {
		server := health.New(db)
		g.Go(func() error {
			if err := server.Listen(cfg.Health.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("health server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(ctx)
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(questCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(gctx, time.Minute)
				n, err := b.Quests.Service().Cleanup(ctx)
				cancel()
				if err != nil {
					logger.LogError("Quest signal cleanup failed", err)
					continue
				}
				logger.LogSystem("Quest signals cleaned", slog.Int64("deleted", n))
			case <-gctx.Done():
				return nil
			}
		}
	})

	slog.Info("Aetherius is running. Press CTRL-C to exit.", slog.String("type", "sys"))
	if err = g.Wait(); err != nil {
		logger.LogError("Shutting down after failure", err)
		return
	}
	logger.LogSystem("Shutting down Aetherius...")
}
