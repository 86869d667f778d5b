package quest

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	QuestCommand,
	QuestClaimCommand,
}
