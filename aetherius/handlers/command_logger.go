package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/handler"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/metrics"
	"github.com/guardian-of-arcadia/aetherius/aetherius/quests"
)

// WrapWithLogging wraps a command handler with logging, duration metrics
// and command quest tracking. tracker may be nil.
func WrapWithLogging(name string, tracker *quests.Tracker, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		userID := e.User().ID.String()

		slog.Info("Command started",
			slog.String("type", "cmd"),
			slog.String("name", name),
			slog.String("user_id", userID),
			slog.String("user_name", e.User().Username),
			slog.String("guild_id", guildString(e)),
			slog.String("channel_id", e.ChannelID().String()),
		)

		done := make(chan error, 1)
		go func() {
			done <- h(e)
		}()

		select {
		case err := <-done:
			duration := time.Since(start)

			attrs := []any{
				slog.String("type", "cmd"),
				slog.String("name", name),
				slog.String("user_id", userID),
				slog.String("user_name", e.User().Username),
				slog.Duration("took", duration),
			}

			if err != nil {
				metrics.ObserveCommand(name, "failed", duration)
				slog.Error("Command failed", append(attrs,
					slog.Any("error", err),
					slog.String("status", "failed"),
				)...)
				return err
			}

			if duration > config.SlowCommandThreshold {
				metrics.ObserveCommand(name, "slow", duration)
				slog.Warn("Command executed slowly", append(attrs,
					slog.String("status", "slow"),
				)...)
			} else {
				metrics.ObserveCommand(name, "success", duration)
				slog.Info("Command completed", append(attrs,
					slog.String("status", "success"),
				)...)
			}

			ctx, cancel := context.WithTimeout(context.Background(), config.EventHandlerTimeout)
			defer cancel()
			tracker.TrackCommand(ctx, userID, name)
			return nil

		case <-time.After(config.CommandExecutionTimeout):
			metrics.ObserveCommand(name, "timeout", config.CommandExecutionTimeout)
			slog.Error("Command timed out",
				slog.String("type", "cmd"),
				slog.String("name", name),
				slog.String("user_id", userID),
				slog.String("user_name", e.User().Username),
				slog.String("status", "timeout"),
				slog.Duration("timeout", config.CommandExecutionTimeout),
			)
			return fmt.Errorf("command timed out after %s", config.CommandExecutionTimeout)
		}
	}
}

func guildString(e *handler.CommandEvent) string {
	if id := e.GuildID(); id != nil {
		return id.String()
	}
	return "dm"
}
