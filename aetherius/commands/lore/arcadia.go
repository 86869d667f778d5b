package lore

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/utils"
)

var ArcadiaCommand = discord.SlashCommandCreate{
	Name:        "arcadia",
	Description: "Get information about the Guardian of Arcadia server",
}

func ArcadiaHandler(b *aetherius.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return utils.EH.CreateEmbed(e, arcadiaEmbed(b.Cfg), false)
	}
}

func arcadiaEmbed(cfg aetherius.Config) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle("🏰 Welcome to Guardian of Arcadia").
		SetDescription("A mystical realm where legends are born among the floating isles!").
		SetColor(config.InfoColor).
		AddField("🌟 About Us", "Guardian of Arcadia is a fantasy-themed community where adventure, friendship, and magic unite!", false).
		AddField("⚔️ Join the Journey", "Participate, level up, earn ranks, and become a legend!", false).
		AddField("📜 Available Commands", "`/profile` `/leaderboard` `/prophecy` `/lore` `/rank` `/quest` `/questclaim` `/bless`", false).
		AddField("💎 Special Features", fmt.Sprintf(
			"• Crystal Shard drops (type `!claim` when they appear, +%d XP)\n• Guardian's Blessing system (`/bless @user`, +%d XP each)\n• Daily quests with bonus XP\n• Keyword responses in chat",
			cfg.Crystal.Reward, cfg.Blessing.Reward), false).
		Build()
}
