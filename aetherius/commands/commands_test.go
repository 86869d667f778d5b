package commands

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/stretchr/testify/assert"
)

func TestCommandNames(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Commands {
		name := c.CommandName()
		assert.False(t, seen[name], "duplicate command %s", name)
		seen[name] = true

		slash, ok := c.(discord.SlashCommandCreate)
		if assert.True(t, ok) {
			assert.NotEmpty(t, slash.Description)
			assert.LessOrEqual(t, len([]rune(slash.Description)), 100)
		}
	}

	for _, name := range []string{
		"profile", "bless", "leaderboard", "rank", "ranks",
		"quest", "questclaim", "lore", "prophecy", "arcadia", "dbcheck",
	} {
		assert.True(t, seen[name], "missing /%s", name)
	}
}
