package quest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/models"
	"github.com/guardian-of-arcadia/aetherius/aetherius/quests"
	"github.com/guardian-of-arcadia/aetherius/aetherius/utils"
)

var QuestCommand = discord.SlashCommandCreate{
	Name:        "quest",
	Description: "🗺️ View your daily quest and its progress",
}

func QuestHandler(b *aetherius.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		service := b.Quests.Service()
		quest, err := service.Today(ctx, e.User().ID.String())
		if err != nil {
			slog.Error("Failed to load daily quest",
				slog.String("type", "db"),
				slog.String("user_id", e.User().ID.String()),
				slog.Any("error", err))
			return utils.EH.CreateEphemeralError(e, "Quest system is not available right now. Please try again later.")
		}

		now := time.Now()
		return utils.EH.CreateEmbed(e, questEmbed(quest, service.NextReset(now).Sub(now)), true)
	}
}

func questEmbed(q *models.DailyQuest, untilReset time.Duration) discord.Embed {
	name := q.Kind
	if def, ok := quests.Lookup(quests.Kind(q.Kind)); ok {
		name = def.Name
	}

	builder := discord.NewEmbedBuilder().
		SetTitle("🗺️ DAILY QUEST").
		SetDescriptionf("**%s**\n\n%s", name, q.Description).
		SetColor(config.SuccessColor).
		AddField("📈 Progress", fmt.Sprintf("%s\n`%s`",
			utils.ProgressBar(q.Progress, q.Target, config.ProgressBarLength), progressLabel(q)), false).
		AddField("💰 Reward", fmt.Sprintf("+%d XP", q.Reward), true)

	switch {
	case q.Claimed:
		builder.AddField("Status", "✅ Claimed", true)
	case q.Completed:
		builder.AddField("Status", "🎁 Complete! Use `/questclaim`", true)
	default:
		builder.AddField("Status", "⏳ In progress", true)
	}

	builder.SetFooter(fmt.Sprintf("A new quest arrives in %s", utils.FormatUntil(untilReset)), "")
	return builder.Build()
}

func progressLabel(q *models.DailyQuest) string {
	label := fmt.Sprintf("%d/%d", min(q.Progress, q.Target), q.Target)
	if quests.Kind(q.Kind) == quests.KindVoiceOfArcadia {
		label = fmt.Sprintf("%d/%d minutes", min(q.Progress, q.Target)/60, q.Target/60)
	}
	return fmt.Sprintf("%s • %.0f%%", label, q.GetProgressPercentage())
}
