package utils

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
)

// ResponseHandler provides standardized replies for commands
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// CreateErrorEmbed replies with a public error embed
func (h *ResponseHandler) CreateErrorEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.ErrorColor,
		}},
	})
}

// CreateEphemeralError replies with an error only the invoker sees
func (h *ResponseHandler) CreateEphemeralError(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.ErrorColor,
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}

// CreateEphemeralWarning is used for validation rejections such as cooldowns
func (h *ResponseHandler) CreateEphemeralWarning(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.WarningColor,
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}

func (h *ResponseHandler) CreateSuccessEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.SuccessColor,
		}},
	})
}

// CreateEmbed sends a fully built embed
func (h *ResponseHandler) CreateEmbed(event *handler.CommandEvent, embed discord.Embed, ephemeral bool) error {
	msg := discord.MessageCreate{Embeds: []discord.Embed{embed}}
	if ephemeral {
		msg.Flags = discord.MessageFlagEphemeral
	}
	return event.CreateMessage(msg)
}
