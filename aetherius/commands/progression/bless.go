package progression

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/guardian-of-arcadia/aetherius/aetherius/blessing"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/cooldown"
	"github.com/guardian-of-arcadia/aetherius/aetherius/progress"
	"github.com/guardian-of-arcadia/aetherius/aetherius/utils"
)

var BlessCommand = discord.SlashCommandCreate{
	Name:        "bless",
	Description: "Bestow a Guardian's Blessing upon another member",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "member",
			Description: "The Guardian to bless",
			Required:    true,
		},
	},
}

func BlessHandler(b *aetherius.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.CreateEphemeralError(e, "Blessings can only be bestowed within a realm.")
		}

		target := e.SlashCommandInteractionData().User("member")
		giver := e.User()

		result, err := b.Blessings.Bless(ctx,
			blessing.Member{ID: giver.ID.String(), Name: giver.Username},
			blessing.Member{ID: target.ID.String(), Name: target.Username, Bot: target.Bot, System: target.System},
		)
		if err != nil {
			return utils.EH.CreateEphemeralWarning(e, blessRejection(err, giver.ID))
		}

		if err = utils.EH.CreateEmbed(e, blessEmbed(giver.ID, target.ID, b.Blessings.Reward()), false); err != nil {
			return err
		}

		announce(ctx, b, e.ChannelID(), *guildID, giver.ID, result.Giver)
		announce(ctx, b, e.ChannelID(), *guildID, target.ID, result.Receiver)
		return nil
	}
}

// blessRejection maps a failed blessing to what the giver is told.
func blessRejection(err error, giverID snowflake.ID) string {
	var active *cooldown.ActiveError
	switch {
	case errors.Is(err, blessing.ErrSelfBlessing):
		return "You cannot bless yourself, noble Guardian!"
	case errors.Is(err, blessing.ErrBotTarget):
		return "Bots are beyond the reach of mortal blessings!"
	case errors.As(err, &active):
		return fmt.Sprintf("⏳ Your blessing power is recharging! Please wait %s before blessing again.",
			utils.FormatRemaining(active.Remaining))
	default:
		slog.Error("Blessing failed",
			slog.String("type", "db"),
			slog.String("user_id", giverID.String()),
			slog.Any("error", err))
		return "⚠️ An error occurred while bestowing the blessing. Please try again in a moment."
	}
}

func blessEmbed(giverID, receiverID snowflake.ID, reward int64) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle("✨ GUARDIAN'S BLESSING BESTOWED ✨").
		SetDescriptionf("<@%s> has blessed <@%s>!\n\nThe Arcane energies strengthen the bonds between Guardians...", giverID, receiverID).
		SetColor(config.GoldColor).
		AddField("🎁 Rewards", fmt.Sprintf("Both Guardians receive **+%d XP**!", reward), false).
		SetFooter("Kindness is the true strength of Arcadia", "").
		Build()
}

func announce(ctx context.Context, b *aetherius.Bot, channelID, guildID, userID snowflake.ID, outcome *progress.Outcome) {
	if outcome == nil || !outcome.LeveledUp() {
		return
	}
	if _, err := b.Herald.LevelUp(ctx, channelID, guildID, userID, outcome); err != nil {
		slog.Warn("Failed to announce level up",
			slog.String("type", "event"),
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
	}
}
