package progression

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/models"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/repositories"
	"github.com/guardian-of-arcadia/aetherius/aetherius/gateway"
	"github.com/guardian-of-arcadia/aetherius/aetherius/leveling"
	"github.com/guardian-of-arcadia/aetherius/aetherius/utils"
)

var ProfileCommand = discord.SlashCommandCreate{
	Name:        "profile",
	Description: "View your Guardian profile and stats",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "member",
			Description: "The Guardian to look up",
			Required:    false,
		},
	},
}

func ProfileHandler(b *aetherius.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		target := e.User()
		if u, ok := e.SlashCommandInteractionData().OptUser("member"); ok {
			target = u
		}

		user, err := b.UserRepository.GetByUserID(ctx, target.ID.String())
		if repositories.IsNotFound(err) {
			return utils.EH.CreateEmbed(e, discord.NewEmbedBuilder().
				SetTitle("📜 Guardian Profile").
				SetDescriptionf("<@%s> has not yet begun their journey in Arcadia...", target.ID).
				SetColor(config.FadedColor).
				Build(), false)
		}
		if err != nil {
			slog.Error("Failed to load profile",
				slog.String("type", "db"),
				slog.String("user_id", target.ID.String()),
				slog.Any("error", err))
			return utils.EH.CreateEphemeralError(e, "⚠️ An error occurred while fetching the profile.")
		}

		position, err := b.UserRepository.GetPosition(ctx, user.UserID)
		if err != nil {
			slog.Warn("Failed to load leaderboard position",
				slog.String("type", "db"),
				slog.String("user_id", user.UserID),
				slog.Any("error", err))
			position = 0
		}

		embed := profileEmbed(b.Calculator, user, displayName(target), position,
			highestRole(ctx, b.Effects, e.GuildID(), target.ID))
		embed.Thumbnail = &discord.EmbedResource{URL: target.EffectiveAvatarURL()}
		return utils.EH.CreateEmbed(e, embed, false)
	}
}

// highestRole is the top guild role of the member, or "" outside a guild or
// when Discord cannot tell.
func highestRole(ctx context.Context, fx gateway.Effects, guildID *snowflake.ID, userID snowflake.ID) string {
	if guildID == nil {
		return ""
	}
	roles, err := fx.MemberRoles(ctx, *guildID, userID)
	if err != nil {
		slog.Warn("Failed to read member roles",
			slog.String("type", "event"),
			slog.String("guild_id", guildID.String()),
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
		return ""
	}
	if len(roles) == 0 {
		return ""
	}
	return roles[0]
}

func displayName(u discord.User) string {
	if u.GlobalName != nil && *u.GlobalName != "" {
		return *u.GlobalName
	}
	return u.Username
}

func profileEmbed(calc *leveling.Calculator, user *models.User, name string, position int, topRole string) discord.Embed {
	into, span := calc.Progress(user.Points)

	builder := discord.NewEmbedBuilder().
		SetTitlef("⚔️ %s's Guardian Profile", name).
		SetColor(config.InfoColor).
		AddField("📊 Level", fmt.Sprintf("**%d**", user.Rank), true).
		AddField("✨ Total XP", fmt.Sprintf("**%s**", utils.FormatNumber(user.Points)), true).
		AddField("💬 Messages", fmt.Sprintf("**%s**", utils.FormatNumber(user.ActivityCount)), true).
		AddField("📈 Progress to Next Level",
			fmt.Sprintf("%s\n`%d/%d XP`", utils.ProgressBar(into, span, config.ProgressBarLength), into, span), false).
		AddField("💎 Crystal Shards", fmt.Sprintf("**%d**", user.CollectibleCount), true).
		AddField("🙏 Blessings Given", fmt.Sprintf("**%d**", user.RewardsGiven), true).
		AddField("✨ Blessings Received", fmt.Sprintf("**%d**", user.RewardsReceived), true)

	if role, ok := leveling.RoleFor(user.Rank); ok {
		builder.AddField("🏅 Title", role, true)
	}
	if position > 0 {
		builder.AddField("🏆 Standing", fmt.Sprintf("#%d", position), true)
	}
	if topRole != "" {
		builder.AddField("🎖️ Highest Rank", fmt.Sprintf("**%s**", topRole), false)
	}

	footer := fmt.Sprintf("%s XP to Level %d", utils.FormatNumber(calc.PointsToNext(user.Points)), user.Rank+1)
	if next, ok := leveling.NextRole(user.Rank); ok {
		footer = fmt.Sprintf("%s • %s awaits at Level %d", footer, next.Role, next.Level)
	}
	builder.SetFooter(footer, "")
	return builder.Build()
}
