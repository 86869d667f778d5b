package gateway

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

// Discord implements Effects over the disgo REST client.
type Discord struct {
	client bot.Client
}

var _ Effects = (*Discord)(nil)

func NewDiscord(client bot.Client) *Discord {
	return &Discord{client: client}
}

func (d *Discord) SendMessage(ctx context.Context, channelID snowflake.ID, msg discord.MessageCreate) (snowflake.ID, error) {
	m, err := d.client.Rest().CreateMessage(channelID, msg, rest.WithCtx(ctx))
	if err != nil {
		return 0, classify(err)
	}
	return m.ID, nil
}

func (d *Discord) EditMessage(ctx context.Context, channelID, messageID snowflake.ID, msg discord.MessageUpdate) error {
	_, err := d.client.Rest().UpdateMessage(channelID, messageID, msg, rest.WithCtx(ctx))
	return classify(err)
}

func (d *Discord) GrantRole(ctx context.Context, guildID, userID snowflake.ID, roleName string) error {
	roles, err := d.client.Rest().GetRoles(guildID, rest.WithCtx(ctx))
	if err != nil {
		return classify(err)
	}

	for _, role := range roles {
		if !strings.EqualFold(role.Name, roleName) {
			continue
		}
		if err = d.client.Rest().AddMemberRole(guildID, userID, role.ID, rest.WithCtx(ctx)); err != nil {
			return classify(err)
		}
		slog.Debug("Role granted",
			slog.String("type", "event"),
			slog.String("role", roleName),
			slog.String("user_id", userID.String()),
			slog.String("guild_id", guildID.String()))
		return nil
	}
	return fmt.Errorf("%w: %s", ErrRoleNotFound, roleName)
}

func (d *Discord) MemberRoles(ctx context.Context, guildID, userID snowflake.ID) ([]string, error) {
	member, err := d.client.Rest().GetMember(guildID, userID, rest.WithCtx(ctx))
	if err != nil {
		return nil, classify(err)
	}
	roles, err := d.client.Rest().GetRoles(guildID, rest.WithCtx(ctx))
	if err != nil {
		return nil, classify(err)
	}
	return heldRoleNames(roles, member.RoleIDs), nil
}

// heldRoleNames names the roles in held, ordered by position from the top.
func heldRoleNames(roles []discord.Role, held []snowflake.ID) []string {
	owned := make([]discord.Role, 0, len(held))
	for _, role := range roles {
		if slices.Contains(held, role.ID) {
			owned = append(owned, role)
		}
	}
	slices.SortFunc(owned, func(a, b discord.Role) int {
		return cmp.Compare(b.Position, a.Position)
	})

	names := make([]string, len(owned))
	for i, role := range owned {
		names[i] = role.Name
	}
	return names
}

func (d *Discord) FindTextChannel(ctx context.Context, guildID snowflake.ID, names []string) (snowflake.ID, error) {
	channels, err := d.client.Rest().GetGuildChannels(guildID, rest.WithCtx(ctx))
	if err != nil {
		return 0, classify(err)
	}
	for _, name := range names {
		for _, ch := range channels {
			if ch.Type() == discord.ChannelTypeGuildText && strings.EqualFold(ch.Name(), name) {
				return ch.ID(), nil
			}
		}
	}
	return 0, ErrChannelNotFound
}

// classify maps Discord 403 responses to ErrPermissionDenied.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var restErr *rest.Error
	if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: %s", ErrPermissionDenied, restErr.Message)
	}
	return err
}
