package announce

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/gateway"
	"github.com/guardian-of-arcadia/aetherius/aetherius/leveling"
	"github.com/guardian-of-arcadia/aetherius/aetherius/metrics"
	"github.com/guardian-of-arcadia/aetherius/aetherius/progress"
)

// Herald announces level ups and hands out role rewards. Role grants are
// best effort: the points behind them are already committed.
type Herald struct {
	effects gateway.Effects
	calc    *leveling.Calculator
}

func NewHerald(effects gateway.Effects, calc *leveling.Calculator) *Herald {
	return &Herald{effects: effects, calc: calc}
}

// LevelUp posts the ascension embed in channelID when outcome raised the
// member's level. It returns the role granted, if any.
func (h *Herald) LevelUp(ctx context.Context, channelID, guildID, userID snowflake.ID, outcome *progress.Outcome) (string, error) {
	if !outcome.LeveledUp() {
		return "", nil
	}
	metrics.LevelUps.Inc()

	granted := h.grantRole(ctx, guildID, userID, outcome)
	embed := h.LevelUpEmbed(userID, outcome.Rank, granted)

	if _, err := h.effects.SendMessage(ctx, channelID, discord.MessageCreate{
		Embeds: []discord.Embed{embed},
	}); err != nil {
		return granted, fmt.Errorf("failed to announce level up: %w", err)
	}
	return granted, nil
}

func (h *Herald) LevelUpEmbed(userID snowflake.ID, level int, role string) discord.Embed {
	emoji := leveling.BlessingEmoji(level)
	builder := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("%s RANK ASCENSION %s", emoji, emoji)).
		SetDescription(fmt.Sprintf("🎉 <@%s> has ascended to **Level %d**!\n\nThe Arcane energies flow stronger within you...", userID, level)).
		SetColor(config.GoldColor)

	if role != "" {
		builder.AddField("🏆 New Title Bestowed!", fmt.Sprintf("You have earned the rank of **%s**!", role), false)
	}

	span := h.calc.PointsRequiredFor(level+1) - h.calc.PointsRequiredFor(level)
	builder.SetFooter(fmt.Sprintf("Next rank in %d XP • %s Blessing received", span, emoji), "")
	return builder.Build()
}

// grantRole gives the highest reward crossed by this level up.
func (h *Herald) grantRole(ctx context.Context, guildID, userID snowflake.ID, outcome *progress.Outcome) string {
	crossed := leveling.RolesCrossed(outcome.PreviousRank, outcome.Rank)
	if len(crossed) == 0 {
		return ""
	}
	role := crossed[len(crossed)-1].Role

	err := h.effects.GrantRole(ctx, guildID, userID, role)
	switch {
	case err == nil:
		metrics.RoleGrants.WithLabelValues("granted").Inc()
		return role
	case errors.Is(err, gateway.ErrPermissionDenied):
		metrics.RoleGrants.WithLabelValues("permission_denied").Inc()
		slog.Warn("Role grant refused",
			slog.String("type", "event"),
			slog.String("status", "permission_denied"),
			slog.String("role", role),
			slog.String("user_id", userID.String()),
			slog.String("guild_id", guildID.String()))
	case errors.Is(err, gateway.ErrRoleNotFound):
		metrics.RoleGrants.WithLabelValues("missing_role").Inc()
		slog.Warn("Role reward missing in guild",
			slog.String("type", "event"),
			slog.String("role", role),
			slog.String("guild_id", guildID.String()))
	default:
		metrics.RoleGrants.WithLabelValues("error").Inc()
		slog.Error("Role grant failed",
			slog.String("type", "event"),
			slog.String("role", role),
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
	}
	return ""
}
