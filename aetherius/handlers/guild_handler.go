package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
)

var welcomeMessages = []string{
	"🏰 **Hark! A new soul enters the realm!**\n\nWelcome, <@%s>, to **Guardian of Arcadia**! The floating isles shimmer with ancient magic as you step into our mystical domain. May your journey be filled with wonder and glory!",
	"⚔️ **The Crystals of Arcadia glow brighter!**\n\n<@%s> has arrived! Brave wanderer, you stand at the threshold of a realm where sky meets stone, where legends are born. Welcome to the **Guardian of Arcadia**!",
	"✨ **The Ancient Guardians sense a new presence...**\n\nGreetings, <@%s>! The winds of fate have carried you to our floating sanctuaries. Welcome to **Guardian of Arcadia**, where adventure awaits among the clouds!",
}

func ReactionHandler(b *aetherius.Bot) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.GuildMessageReactionAdd) {
		if e.Member.User.Bot {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), config.EventHandlerTimeout)
		defer cancel()
		b.Quests.TrackReaction(ctx, e.UserID.String())
	})
}

func VoiceJoinHandler(b *aetherius.Bot) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.GuildVoiceJoin) {
		if e.Member.User.Bot {
			return
		}
		b.Voice.Join(e.VoiceState.GuildID.String(), e.VoiceState.UserID.String(), time.Now())
	})
}

func VoiceMoveHandler(b *aetherius.Bot) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.GuildVoiceMove) {
		if e.Member.User.Bot {
			return
		}
		HandleVoiceMove(context.Background(), b, e.VoiceState.GuildID.String(), e.VoiceState.UserID.String(), time.Now())
	})
}

func VoiceLeaveHandler(b *aetherius.Bot) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.GuildVoiceLeave) {
		if e.Member.User.Bot {
			return
		}
		HandleVoiceLeave(context.Background(), b, e.VoiceState.GuildID.String(), e.VoiceState.UserID.String(), time.Now())
	})
}

// HandleVoiceMove credits the time spent in the previous channel.
func HandleVoiceMove(ctx context.Context, b *aetherius.Bot, guildID, userID string, at time.Time) {
	if elapsed, ok := b.Voice.Move(guildID, userID, at); ok {
		trackVoice(ctx, b, userID, elapsed)
	}
}

func HandleVoiceLeave(ctx context.Context, b *aetherius.Bot, guildID, userID string, at time.Time) {
	if elapsed, ok := b.Voice.Leave(guildID, userID, at); ok {
		trackVoice(ctx, b, userID, elapsed)
	}
}

func trackVoice(ctx context.Context, b *aetherius.Bot, userID string, elapsed time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, config.EventHandlerTimeout)
	defer cancel()
	b.Quests.TrackVoice(ctx, userID, elapsed)
}

func MemberJoinHandler(b *aetherius.Bot) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.GuildMemberJoin) {
		if e.Member.User.Bot {
			return
		}
		memberCount := 0
		if guild, ok := e.Client().Caches().Guild(e.GuildID); ok {
			memberCount = guild.MemberCount
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.EventHandlerTimeout)
		defer cancel()
		Welcome(ctx, b, e.GuildID, e.Member.User.ID, e.Member.User.EffectiveAvatarURL(), memberCount)
	})
}

// Welcome greets a new member in the first welcome-like channel of the guild.
func Welcome(ctx context.Context, b *aetherius.Bot, guildID, userID snowflake.ID, avatarURL string, memberCount int) {
	channelID, err := b.Effects.FindTextChannel(ctx, guildID, config.WelcomeChannelNames)
	if err != nil {
		slog.Debug("No welcome channel",
			slog.String("type", "event"),
			slog.String("guild_id", guildID.String()),
			slog.Any("error", err))
		return
	}

	footer := "May the Arcane guide you"
	if memberCount > 0 {
		footer = fmt.Sprintf("Member #%d • %s", memberCount, footer)
	}
	embed := discord.NewEmbedBuilder().
		SetTitle("🌟 A New Guardian Arrives").
		SetDescription(fmt.Sprintf(welcomeMessages[rand.IntN(len(welcomeMessages))], userID)).
		SetColor(config.InfoColor).
		SetThumbnail(avatarURL).
		SetFooter(footer, "").
		Build()

	if _, err = b.Effects.SendMessage(ctx, channelID, discord.MessageCreate{Embeds: []discord.Embed{embed}}); err != nil {
		slog.Warn("Failed to welcome member",
			slog.String("type", "event"),
			slog.String("guild_id", guildID.String()),
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
	}
}

// GuildLeaveHandler drops the state of guilds and channels the bot can no
// longer reach so no drop timer fires into them.
func GuildLeaveHandler(b *aetherius.Bot) bot.EventListener {
	return &events.ListenerAdapter{
		OnGuildLeave: func(e *events.GuildLeave) {
			b.Crystals.Forget(e.GuildID)
		},
		OnGuildChannelDelete: func(e *events.GuildChannelDelete) {
			b.Crystals.ForgetChannel(e.GuildID, e.ChannelID)
		},
	}
}
