package progression

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/leveling"
	"github.com/guardian-of-arcadia/aetherius/aetherius/utils"
)

var RankCommand = discord.SlashCommandCreate{
	Name:        "rank",
	Description: "View all ranks and their XP requirements",
}

var RanksCommand = discord.SlashCommandCreate{
	Name:        "ranks",
	Description: "View all available ranks and their requirements",
}

func RankHandler(b *aetherius.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return utils.EH.CreateEmbed(e, rankTable(b.Calculator,
			"🎖️ GUARDIAN RANKS & HIERARCHY",
			"Rise through the ranks and earn your place among legends!",
			"Earn XP by being active in the server!",
			true), false)
	}
}

func RanksHandler(b *aetherius.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return utils.EH.CreateEmbed(e, rankTable(b.Calculator,
			"⚔️ GUARDIAN RANK HIERARCHY ⚔️",
			"*Ascend through the ranks to unlock greater power*",
			"Keep engaging to climb the ranks! ⚡",
			false), false)
	}
}

func rankTable(calc *leveling.Calculator, title, description, footer string, inline bool) discord.Embed {
	builder := discord.NewEmbedBuilder().
		SetTitle(title).
		SetDescription(description).
		SetColor(config.GoldColor).
		SetFooter(footer, "")

	for _, r := range leveling.RoleRewards() {
		builder.AddField(
			fmt.Sprintf("Level %d - %s", r.Level, r.Role),
			fmt.Sprintf("Requires %s total XP", utils.FormatNumber(calc.PointsRequiredFor(r.Level))),
			inline)
	}
	return builder.Build()
}
