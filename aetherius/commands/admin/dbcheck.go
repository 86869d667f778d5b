package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database"
	"github.com/guardian-of-arcadia/aetherius/aetherius/utils"
)

var DBCheckCommand = discord.SlashCommandCreate{
	Name:        "dbcheck",
	Description: "[Admin] Check database health",
}

func DBCheckHandler(b *aetherius.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.CreateEphemeralError(e, "This command can only be used in a server.")
		}
		guild, ok := e.Client().Caches().Guild(*guildID)
		if !ok || guild.OwnerID != e.User().ID {
			return utils.EH.CreateEphemeralError(e, "Only the server owner can check the database!")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		info, err := b.DB.Health(ctx)
		if err != nil {
			slog.Error("Database health check failed",
				slog.String("type", "db"),
				slog.Any("error", err))
			return utils.EH.CreateEphemeralError(e, fmt.Sprintf("❌ Database error: %v", err))
		}
		return utils.EH.CreateEmbed(e, healthEmbed(info), true)
	}
}

func healthEmbed(info *database.HealthInfo) discord.Embed {
	columns := strings.Join(info.Columns, ", ")
	if columns == "" {
		columns = "none"
	}
	return discord.NewEmbedBuilder().
		SetTitle("🔍 Database Health Check").
		SetColor(config.SuccessColor).
		AddField("Total Users", utils.FormatNumber(int64(info.UserCount)), true).
		AddField("Database Type", "PostgreSQL", true).
		AddField("Latency", info.Latency.Round(100*time.Microsecond).String(), true).
		AddField("Columns", columns, false).
		SetFooter("Database is operational ✅", "").
		Build()
}
