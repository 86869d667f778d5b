package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/guardian-of-arcadia/aetherius/aetherius/commands/admin"
	"github.com/guardian-of-arcadia/aetherius/aetherius/commands/lore"
	"github.com/guardian-of-arcadia/aetherius/aetherius/commands/progression"
	"github.com/guardian-of-arcadia/aetherius/aetherius/commands/quest"
	"github.com/guardian-of-arcadia/aetherius/aetherius/handlers"
)

var Commands = []discord.ApplicationCommandCreate{}

func init() {
	Commands = append(Commands, progression.Commands...)
	Commands = append(Commands, quest.Commands...)
	Commands = append(Commands, lore.Commands...)
	Commands = append(Commands, admin.Commands...)
}

// Register routes every slash command through the logging wrapper.
func Register(r handler.Router, b *aetherius.Bot) {
	cmd := func(name string, h handler.CommandHandler) {
		r.Command("/"+name, handlers.WrapWithLogging(name, b.Quests, h))
	}

	cmd("profile", progression.ProfileHandler(b))
	cmd("bless", progression.BlessHandler(b))
	cmd("leaderboard", progression.LeaderboardHandler(b))
	cmd("rank", progression.RankHandler(b))
	cmd("ranks", progression.RanksHandler(b))

	cmd("quest", quest.QuestHandler(b))
	cmd("questclaim", quest.QuestClaimHandler(b))

	cmd("lore", lore.LoreHandler(b))
	r.Autocomplete("/lore", lore.LoreAutocompleteHandler)
	cmd("prophecy", lore.ProphecyHandler)
	cmd("arcadia", lore.ArcadiaHandler(b))

	cmd("dbcheck", admin.DBCheckHandler(b))
}
