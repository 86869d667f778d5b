package collectible

import (
	"context"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/guardian-of-arcadia/aetherius/aetherius/gateway/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEffectsAnnouncer(t *testing.T) {
	ctrl := gomock.NewController(t)
	effects := mock.NewMockEffects(ctrl)
	a := NewEffectsAnnouncer(effects, 100)
	ctx := context.Background()

	drop := Drop{GuildID: 1, ChannelID: 2}
	effects.EXPECT().
		SendMessage(ctx, snowflake.ID(2), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ snowflake.ID, msg discord.MessageCreate) (snowflake.ID, error) {
			require.Len(t, msg.Embeds, 1)
			assert.Contains(t, msg.Embeds[0].Description, "!claim")
			return snowflake.ID(3), nil
		})

	id, err := a.Announce(ctx, drop)
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(3), id)

	drop.MessageID = id
	effects.EXPECT().
		EditMessage(ctx, snowflake.ID(2), snowflake.ID(3), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ snowflake.ID, msg discord.MessageUpdate) error {
			require.NotNil(t, msg.Embeds)
			assert.Equal(t, "💎 Crystal Shard Vanished", (*msg.Embeds)[0].Title)
			return nil
		})
	require.NoError(t, a.Expired(ctx, drop))

	// Nothing to edit without a message.
	require.NoError(t, a.Expired(ctx, Drop{ChannelID: 2}))
}
