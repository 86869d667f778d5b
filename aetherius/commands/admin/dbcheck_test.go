package admin

import (
	"testing"
	"time"

	"github.com/guardian-of-arcadia/aetherius/aetherius/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEmbed(t *testing.T) {
	embed := healthEmbed(&database.HealthInfo{
		UserCount: 1234,
		Columns:   []string{"user_id", "username", "points"},
		Latency:   3*time.Millisecond + 420*time.Microsecond,
	})

	require.Len(t, embed.Fields, 4)
	assert.Equal(t, "1,234", embed.Fields[0].Value)
	assert.Equal(t, "3.4ms", embed.Fields[2].Value)
	assert.Equal(t, "user_id, username, points", embed.Fields[3].Value)
}

func TestHealthEmbed_NoColumns(t *testing.T) {
	embed := healthEmbed(&database.HealthInfo{})
	assert.Equal(t, "none", embed.Fields[3].Value)
}
