package gateway

import (
	"context"
	"errors"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

//go:generate mockgen -source=effects.go -destination=mock/effects.go -package=mock

var (
	// ErrPermissionDenied marks a request Discord refused for lack of
	// permissions or role hierarchy.
	ErrPermissionDenied = errors.New("permission denied")
	ErrRoleNotFound     = errors.New("role not found")
	ErrChannelNotFound  = errors.New("channel not found")
)

// Effects is everything the engine asks of Discord.
type Effects interface {
	SendMessage(ctx context.Context, channelID snowflake.ID, msg discord.MessageCreate) (snowflake.ID, error)
	EditMessage(ctx context.Context, channelID, messageID snowflake.ID, msg discord.MessageUpdate) error
	// GrantRole adds the guild role called roleName to the member.
	GrantRole(ctx context.Context, guildID, userID snowflake.ID, roleName string) error
	// MemberRoles returns the names of the member's roles, highest first.
	MemberRoles(ctx context.Context, guildID, userID snowflake.ID) ([]string, error)
	// FindTextChannel returns the first text channel whose name is in names,
	// honoring the order of names.
	FindTextChannel(ctx context.Context, guildID snowflake.ID, names []string) (snowflake.ID, error)
}
