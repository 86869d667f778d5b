package gateway

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
)

func TestHeldRoleNames(t *testing.T) {
	roles := []discord.Role{
		{ID: 1, Name: "@everyone", Position: 0},
		{ID: 2, Name: "Mist-Warden", Position: 3},
		{ID: 3, Name: "Moderator", Position: 9},
		{ID: 4, Name: "Aether-Guard", Position: 5},
	}

	assert.Equal(t,
		[]string{"Moderator", "Aether-Guard", "Mist-Warden"},
		heldRoleNames(roles, []snowflake.ID{2, 4, 3}))
	assert.Empty(t, heldRoleNames(roles, nil))
	assert.Empty(t, heldRoleNames(roles, []snowflake.ID{99}), "roles missing from the guild are skipped")
}
