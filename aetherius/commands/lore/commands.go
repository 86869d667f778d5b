package lore

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	LoreCommand,
	ProphecyCommand,
	ArcadiaCommand,
}
