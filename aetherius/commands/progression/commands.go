package progression

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	ProfileCommand,
	BlessCommand,
	LeaderboardCommand,
	RankCommand,
	RanksCommand,
}
