package collectible

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/gateway"
)

// EffectsAnnouncer posts and edits drop embeds through the gateway.
type EffectsAnnouncer struct {
	effects gateway.Effects
	reward  int64
}

var _ Announcer = (*EffectsAnnouncer)(nil)

func NewEffectsAnnouncer(effects gateway.Effects, reward int64) *EffectsAnnouncer {
	return &EffectsAnnouncer{effects: effects, reward: reward}
}

func (a *EffectsAnnouncer) Announce(ctx context.Context, drop Drop) (snowflake.ID, error) {
	embed := discord.NewEmbedBuilder().
		SetTitle("💎 CRYSTAL SHARD DISCOVERED!").
		SetDescription(fmt.Sprintf("A mystical **Crystal Shard** has appeared! Type `!claim` in this channel to collect it and gain **%d bonus XP**!", a.reward)).
		SetColor(config.CrystalColor).
		SetFooter("It will fade back into the mists soon...", "").
		Build()

	return a.effects.SendMessage(ctx, drop.ChannelID, discord.MessageCreate{
		Embeds: []discord.Embed{embed},
	})
}

func (a *EffectsAnnouncer) Claimed(ctx context.Context, drop Drop, userID snowflake.ID) error {
	embed := discord.NewEmbedBuilder().
		SetTitle("💎 Crystal Shard Claimed").
		SetDescription(fmt.Sprintf("<@%s> reached the shard first.", userID)).
		SetColor(config.SuccessColor).
		Build()
	return a.edit(ctx, drop, embed)
}

func (a *EffectsAnnouncer) Expired(ctx context.Context, drop Drop) error {
	embed := discord.NewEmbedBuilder().
		SetTitle("💎 Crystal Shard Vanished").
		SetDescription("The Crystal Shard has faded back into the Arcane mists...").
		SetColor(config.FadedColor).
		Build()
	return a.edit(ctx, drop, embed)
}

func (a *EffectsAnnouncer) edit(ctx context.Context, drop Drop, embed discord.Embed) error {
	if drop.MessageID == 0 {
		return nil
	}
	return a.effects.EditMessage(ctx, drop.ChannelID, drop.MessageID, discord.MessageUpdate{
		Embeds: &[]discord.Embed{embed},
	})
}
