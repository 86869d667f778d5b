package lore

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/utils"
)

var LoreCommand = discord.SlashCommandCreate{
	Name:        "lore",
	Description: "Discover the mysteries and lore of Arcadia",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "topic",
			Description:  "What to learn about",
			Required:     false,
			Autocomplete: true,
		},
	},
}

// LoreHandler shares a lore entry. Sharing a topic counts as Guardian's
// Wisdom for the daily quest.
func LoreHandler(b *aetherius.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		topic := e.SlashCommandInteractionData().String("topic")

		entry, ok := Find(topic)
		if !ok {
			return utils.EH.CreateEmbed(e, indexEmbed(), false)
		}

		if err := utils.EH.CreateEmbed(e, discord.NewEmbedBuilder().
			SetTitle(entry.Title).
			SetDescription(entry.Content).
			SetColor(config.InfoColor).
			Build(), false); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.EventHandlerTimeout)
		defer cancel()
		b.Quests.TrackHelp(ctx, e.User().ID.String())
		return nil
	}
}

func LoreAutocompleteHandler(e *handler.AutocompleteEvent) error {
	keys := Suggest(e.Data.String("topic"))
	choices := make([]discord.AutocompleteChoice, 0, min(len(keys), 25))
	for _, k := range keys[:min(len(keys), 25)] {
		choices = append(choices, discord.AutocompleteChoiceString{Name: k, Value: k})
	}
	return e.AutocompleteResult(choices)
}

func indexEmbed() discord.Embed {
	builder := discord.NewEmbedBuilder().
		SetTitle("📖 Arcadia's Chronicles").
		SetDescription("Choose a topic to learn more about the mysteries of our realm:").
		SetColor(config.InfoColor)
	for _, entry := range entries {
		builder.AddField(entry.Title, fmt.Sprintf("Use `/lore %s` to read more", entry.Key), false)
	}
	return builder.Build()
}
