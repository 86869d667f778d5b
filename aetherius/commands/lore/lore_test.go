package lore

import (
	"testing"

	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	tests := []struct {
		topic string
		key   string
		found bool
	}{
		{"arcadia", "arcadia", true},
		{"  Crystals ", "crystals", true},
		{"guard", "guardians", true},
		{"hstry", "history", true},
		{"", "", false},
		{"zzz", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			entry, ok := Find(tt.topic)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.key, entry.Key)
		})
	}
}

func TestSuggest(t *testing.T) {
	assert.Len(t, Suggest(""), len(entries))
	assert.Equal(t, []string{"isles"}, Suggest("isl"))
}

func TestIndexEmbed(t *testing.T) {
	embed := indexEmbed()
	require.Len(t, embed.Fields, len(entries))
	assert.Equal(t, "Use `/lore arcadia` to read more", embed.Fields[0].Value)
}

func TestProphecyEmbed(t *testing.T) {
	embed := prophecyEmbed(prophecies[0], "aria")
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "Omen Type: Fortune • Received by aria", embed.Footer.Text)
}

func TestArcadiaEmbed(t *testing.T) {
	embed := arcadiaEmbed(*aetherius.DefaultConfig())
	require.Len(t, embed.Fields, 4)
	assert.Contains(t, embed.Fields[3].Value, "+100 XP")
	assert.Contains(t, embed.Fields[3].Value, "+25 XP each")
}
