package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/guardian-of-arcadia/aetherius/aetherius/collectible"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/progress"
)

const claimCommand = "!claim"

// Message is the part of a guild message the engine looks at.
type Message struct {
	ID        snowflake.ID
	GuildID   snowflake.ID
	ChannelID snowflake.ID
	AuthorID  snowflake.ID
	Username  string
	Bot       bool
	Content   string
	// ReplyTo is the author of the message being replied to, if any.
	ReplyTo *snowflake.ID
	At      time.Time
}

func messageFromEvent(e *events.GuildMessageCreate) Message {
	m := Message{
		ID:        e.MessageID,
		GuildID:   e.GuildID,
		ChannelID: e.ChannelID,
		AuthorID:  e.Message.Author.ID,
		Username:  e.Message.Author.Username,
		Bot:       e.Message.Author.Bot || e.Message.Author.System,
		Content:   e.Message.Content,
		At:        e.Message.CreatedAt,
	}
	if ref := e.Message.ReferencedMessage; ref != nil {
		author := ref.Author.ID
		m.ReplyTo = &author
	}
	if m.At.IsZero() {
		m.At = time.Now()
	}
	return m
}

func MessageHandler(b *aetherius.Bot) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.GuildMessageCreate) {
		ctx, cancel := context.WithTimeout(context.Background(), config.EventHandlerTimeout)
		defer cancel()
		HandleMessage(ctx, b, messageFromEvent(e))
	})
}

// HandleMessage runs every message through the crystal counter, keyword
// replies, message XP and quest tracking, then the !claim text command.
func HandleMessage(ctx context.Context, b *aetherius.Bot, m Message) {
	if m.Bot {
		return
	}
	userID := m.AuthorID.String()

	if _, err := b.Crystals.Observe(ctx, m.GuildID, m.ChannelID); err != nil {
		slog.Warn("Crystal shard spawn failed",
			slog.String("type", "event"),
			slog.String("guild_id", m.GuildID.String()),
			slog.String("channel_id", m.ChannelID.String()),
			slog.Any("error", err))
	}

	if reply, ok := b.Keywords.Respond(userID, m.Content, m.At); ok {
		if _, err := b.Effects.SendMessage(ctx, m.ChannelID, discord.MessageCreate{Content: reply}); err != nil {
			slog.Warn("Failed to send keyword reply",
				slog.String("type", "event"),
				slog.String("channel_id", m.ChannelID.String()),
				slog.Any("error", err))
		}
	}

	outcome, err := b.Activity.AwardMessage(ctx, m.GuildID.String(), userID, m.Username, m.At)
	if err != nil {
		slog.Error("Failed to award message XP",
			slog.String("type", "db"),
			slog.String("user_id", userID),
			slog.Any("error", err))
	} else if outcome != nil {
		announceLevelUp(ctx, b, m.ChannelID, m.GuildID, m.AuthorID, outcome)
	}

	b.Quests.TrackMessage(ctx, userID, m.ChannelID.String(), m.At)
	if isHelpReply(b, m) {
		b.Quests.TrackHelp(ctx, userID)
	}

	if isClaim(m.Content) {
		ClaimCrystal(ctx, b, m)
	}
}

func isClaim(content string) bool {
	fields := strings.Fields(content)
	return len(fields) > 0 && strings.EqualFold(fields[0], claimCommand)
}

// isHelpReply is a reply to another member inside a configured help channel.
func isHelpReply(b *aetherius.Bot, m Message) bool {
	if m.ReplyTo == nil || *m.ReplyTo == m.AuthorID {
		return false
	}
	return slices.Contains(b.Cfg.Quests.HelpChannels, m.ChannelID)
}

// ClaimCrystal handles the !claim text command. A claim with no live drop
// is ignored silently.
func ClaimCrystal(ctx context.Context, b *aetherius.Bot, m Message) {
	result, err := b.Crystals.Claim(ctx, m.GuildID, m.ChannelID, m.AuthorID, m.Username)
	switch {
	case err == nil:
	case errors.Is(err, collectible.ErrNoActiveDrop):
		return
	case errors.Is(err, collectible.ErrWrongChannel):
		reply(ctx, b, m, discord.MessageCreate{Content: "⚠️ The crystal is in a different channel!"})
		return
	default:
		reply(ctx, b, m, discord.MessageCreate{Content: "⚠️ The Crystal Shard slipped away in the mists. Please try again later."})
		return
	}

	embed := discord.NewEmbedBuilder().
		SetTitle("💎 CRYSTAL SHARD CLAIMED!").
		SetDescription(fmt.Sprintf("<@%s> has claimed the Crystal Shard!\n\n**+%d XP** ⚡\n**+1 Crystal Shard** 💎",
			m.AuthorID, b.Cfg.Crystal.Reward)).
		SetColor(config.SuccessColor).
		Build()
	if _, err = b.Effects.SendMessage(ctx, m.ChannelID, discord.MessageCreate{Embeds: []discord.Embed{embed}}); err != nil {
		slog.Warn("Failed to announce crystal claim",
			slog.String("type", "event"),
			slog.String("drop_id", result.Drop.ID.String()),
			slog.Any("error", err))
	}

	announceLevelUp(ctx, b, m.ChannelID, m.GuildID, m.AuthorID, result.Outcome)
}

func reply(ctx context.Context, b *aetherius.Bot, m Message, msg discord.MessageCreate) {
	msg.MessageReference = &discord.MessageReference{MessageID: &m.ID, ChannelID: &m.ChannelID}
	if _, err := b.Effects.SendMessage(ctx, m.ChannelID, msg); err != nil {
		slog.Warn("Failed to reply",
			slog.String("type", "event"),
			slog.String("channel_id", m.ChannelID.String()),
			slog.Any("error", err))
	}
}

func announceLevelUp(ctx context.Context, b *aetherius.Bot, channelID, guildID, userID snowflake.ID, outcome *progress.Outcome) {
	if outcome == nil || !outcome.LeveledUp() {
		return
	}
	if _, err := b.Herald.LevelUp(ctx, channelID, guildID, userID, outcome); err != nil {
		slog.Warn("Failed to announce level up",
			slog.String("type", "event"),
			slog.String("user_id", userID.String()),
			slog.Int("level", outcome.Rank),
			slog.Any("error", err))
	}
}
