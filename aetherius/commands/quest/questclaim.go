package quest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/quests"
	"github.com/guardian-of-arcadia/aetherius/aetherius/utils"
)

var QuestClaimCommand = discord.SlashCommandCreate{
	Name:        "questclaim",
	Description: "🎁 Claim your completed quest reward!",
}

func QuestClaimHandler(b *aetherius.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		userID := e.User().ID.String()
		result, err := b.Quests.Service().Claim(ctx, userID, e.User().Username)
		if err != nil {
			return utils.EH.CreateEphemeralWarning(e, claimRejection(err, userID))
		}

		def, _ := quests.Lookup(quests.Kind(result.Quest.Kind))
		embed := discord.NewEmbedBuilder().
			SetTitle("🎉 Quest Reward Claimed!").
			SetDescriptionf("**%s** completed **%s**!\n\n**+%d XP** ⚡", e.User().Username, def.Name, result.Quest.Reward).
			SetColor(config.SuccessColor).
			SetFooter(fmt.Sprintf("Total XP: %s", utils.FormatNumber(result.Outcome.User.Points)), "").
			Build()
		if err = utils.EH.CreateEmbed(e, embed, false); err != nil {
			return err
		}

		if guildID := e.GuildID(); guildID != nil && result.Outcome.LeveledUp() {
			if _, err = b.Herald.LevelUp(ctx, e.ChannelID(), *guildID, e.User().ID, result.Outcome); err != nil {
				slog.Warn("Failed to announce level up",
					slog.String("type", "event"),
					slog.String("user_id", userID),
					slog.Any("error", err))
			}
		}
		return nil
	}
}

func claimRejection(err error, userID string) string {
	switch {
	case errors.Is(err, quests.ErrNoQuest):
		return "You have no quest today! Use `/quest` to receive one."
	case errors.Is(err, quests.ErrQuestNotCompleted):
		return "Your quest is not complete yet. Keep going, Guardian!"
	case errors.Is(err, quests.ErrQuestAlreadyClaimed):
		return "You have already claimed today's reward. A new quest awaits tomorrow!"
	default:
		slog.Error("Failed to claim quest reward",
			slog.String("type", "db"),
			slog.String("user_id", userID),
			slog.Any("error", err))
		return "A database error occurred. Please try again in a moment."
	}
}
