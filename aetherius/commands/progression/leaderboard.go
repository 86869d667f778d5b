package progression

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/models"
	"github.com/guardian-of-arcadia/aetherius/aetherius/utils"
)

var LeaderboardCommand = discord.SlashCommandCreate{
	Name:        "leaderboard",
	Description: "View the top Guardians of Arcadia",
}

var medals = []string{"🥇", "🥈", "🥉"}

func LeaderboardHandler(b *aetherius.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		total, err := b.UserRepository.Count(ctx)
		if err != nil {
			slog.Error("Failed to count users",
				slog.String("type", "db"),
				slog.Any("error", err))
			return utils.EH.CreateEphemeralError(e, "⚠️ An error occurred while fetching the leaderboard.")
		}
		if total == 0 {
			return utils.EH.CreateSuccessEmbed(e, "The leaderboard is empty! Begin your journey to claim glory!")
		}

		total = min(total, config.LeaderboardMaxUsers)
		pages := (total + config.LeaderboardPageSize - 1) / config.LeaderboardPageSize

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				offset := page * config.LeaderboardPageSize
				pageCtx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
				defer cancel()

				users, err := b.UserRepository.GetTopUsers(pageCtx, config.LeaderboardPageSize, offset)
				if err != nil {
					slog.Error("Failed to load leaderboard page",
						slog.String("type", "db"),
						slog.Int("page", page),
						slog.Any("error", err))
					users = nil
				}

				embed.
					SetTitle("🏆 HALL OF LEGENDS 🏆").
					SetDescription(leaderboardPage(users, offset)).
					SetColor(config.GoldColor).
					SetFooter(fmt.Sprintf("Page %d/%d • %d Guardians", page+1, pages, total), "")
			},
			Pages:      pages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func leaderboardPage(users []*models.User, offset int) string {
	if len(users) == 0 {
		return "*The mists hide these Guardians for now...*"
	}

	var sb strings.Builder
	sb.WriteString("*The most valiant Guardians of Arcadia*\n\n")
	for i, u := range users {
		place := offset + i + 1
		marker := fmt.Sprintf("**%d.**", place)
		if place <= len(medals) {
			marker = medals[place-1]
		}
		fmt.Fprintf(&sb, "%s %s\nLevel %d • %s XP\n", marker, u.Username, u.Rank, utils.FormatNumber(u.Points))
	}
	return sb.String()
}
