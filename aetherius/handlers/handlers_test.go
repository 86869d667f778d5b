package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/guardian-of-arcadia/aetherius/aetherius"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/models"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/repositories/repotest"
	"github.com/guardian-of-arcadia/aetherius/aetherius/gateway"
	"github.com/guardian-of-arcadia/aetherius/aetherius/gateway/mock"
	"github.com/guardian-of-arcadia/aetherius/aetherius/quests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	guild       = snowflake.ID(1)
	channel     = snowflake.ID(2)
	helpChannel = snowflake.ID(3)
	otherChan   = snowflake.ID(4)
	aria        = snowflake.ID(10)
	brann       = snowflake.ID(11)
	cael        = snowflake.ID(12)
)

type fixture struct {
	bot     *aetherius.Bot
	effects *mock.MockEffects
	users   *repotest.UserStore
	quests  *repotest.QuestStore
}

func newFixture(t *testing.T, mutate func(cfg *aetherius.Config)) *fixture {
	ctrl := gomock.NewController(t)
	cfg := aetherius.DefaultConfig()
	cfg.Quests.HelpChannels = []snowflake.ID{helpChannel}
	if mutate != nil {
		mutate(cfg)
	}

	f := &fixture{
		bot:     aetherius.New(*cfg, "test", "test"),
		effects: mock.NewMockEffects(ctrl),
		users:   repotest.NewUserStore(),
		quests:  repotest.NewQuestStore(),
	}
	f.bot.Wire(f.users, f.quests, &repotest.Transactor{}, f.effects)
	t.Cleanup(f.bot.Close)
	return f
}

// seedQuest hands userID today's quest of kind.
func (f *fixture) seedQuest(t *testing.T, userID string, kind quests.Kind) string {
	def, ok := quests.Lookup(kind)
	require.True(t, ok)
	day := f.bot.Quests.Service().DayKey(time.Now())
	_, err := f.quests.InsertIfAbsent(context.Background(), &models.DailyQuest{
		UserID:       userID,
		AssignedDate: day,
		Kind:         string(def.Kind),
		Description:  def.Description,
		Reward:       def.Reward,
		Target:       def.Target,
	})
	require.NoError(t, err)
	return day
}

func message(author snowflake.ID, ch snowflake.ID, content string, at time.Time) Message {
	return Message{
		ID:        snowflake.ID(at.UnixNano()),
		GuildID:   guild,
		ChannelID: ch,
		AuthorID:  author,
		Username:  author.String(),
		Content:   content,
		At:        at,
	}
}

func TestHandleMessage_IgnoresBots(t *testing.T) {
	f := newFixture(t, nil)
	m := message(aria, channel, "hail aetherius", time.Now())
	m.Bot = true

	HandleMessage(context.Background(), f.bot, m)

	_, ok := f.users.Get(aria.String())
	assert.False(t, ok)
}

func TestHandleMessage_KeywordReplyAndXP(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.effects.EXPECT().SendMessage(ctx, channel, discord.MessageCreate{
		Content: "⚡ I am here, eternal and watchful. What is your command, Guardian?",
	}).Return(snowflake.ID(500), nil)

	HandleMessage(ctx, f.bot, message(aria, channel, "Hail Aetherius!", time.Now()))

	u, ok := f.users.Get(aria.String())
	require.True(t, ok)
	assert.Equal(t, int64(15), u.Points)
	assert.Equal(t, 1, u.Rank)
	assert.Equal(t, int64(1), u.ActivityCount)
}

func TestHandleMessage_LevelUpAnnounced(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.users.Put(models.User{UserID: aria.String(), Username: "aria", Points: 95, Rank: 1})

	f.effects.EXPECT().SendMessage(ctx, channel, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ snowflake.ID, msg discord.MessageCreate) (snowflake.ID, error) {
			require.Len(t, msg.Embeds, 1)
			assert.Contains(t, msg.Embeds[0].Description, "**Level 2**")
			return 501, nil
		})

	HandleMessage(ctx, f.bot, message(aria, channel, "hello isles", time.Now()))

	u, _ := f.users.Get(aria.String())
	assert.Equal(t, int64(110), u.Points)
	assert.Equal(t, 2, u.Rank)
}

func TestHandleMessage_CrystalSpawnAndClaim(t *testing.T) {
	f := newFixture(t, func(cfg *aetherius.Config) {
		cfg.Crystal.Threshold = 2
	})
	ctx := context.Background()
	start := time.Now()

	var sent []discord.MessageCreate
	f.effects.EXPECT().SendMessage(ctx, channel, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ snowflake.ID, msg discord.MessageCreate) (snowflake.ID, error) {
			sent = append(sent, msg)
			return snowflake.ID(600 + len(sent)), nil
		}).Times(3)
	f.effects.EXPECT().EditMessage(gomock.Any(), channel, snowflake.ID(601), gomock.Any()).Return(nil)

	HandleMessage(ctx, f.bot, message(aria, channel, "first", start))
	HandleMessage(ctx, f.bot, message(brann, channel, "second", start.Add(time.Second)))
	require.Len(t, sent, 1)
	assert.Equal(t, "💎 CRYSTAL SHARD DISCOVERED!", sent[0].Embeds[0].Title)

	HandleMessage(ctx, f.bot, message(aria, channel, "!claim", start.Add(5*time.Second)))

	require.Len(t, sent, 3)
	assert.Equal(t, "💎 CRYSTAL SHARD CLAIMED!", sent[1].Embeds[0].Title)
	assert.Contains(t, sent[2].Embeds[0].Description, "**Level 2**")

	u, _ := f.users.Get(aria.String())
	assert.Equal(t, int64(115), u.Points, "message XP is still cooling down, the shard pays 100")
	assert.Equal(t, int64(1), u.CollectibleCount)

	_, live := f.bot.Crystals.Active(guild)
	assert.False(t, live)
}

func TestHandleMessage_ClaimInWrongChannel(t *testing.T) {
	f := newFixture(t, func(cfg *aetherius.Config) {
		cfg.Crystal.Threshold = 1
	})
	ctx := context.Background()
	start := time.Now()

	f.effects.EXPECT().SendMessage(ctx, channel, gomock.Any()).Return(snowflake.ID(700), nil)
	HandleMessage(ctx, f.bot, message(aria, channel, "spark", start))

	claim := message(cael, otherChan, "!claim", start.Add(time.Second))
	f.effects.EXPECT().SendMessage(ctx, otherChan, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ snowflake.ID, msg discord.MessageCreate) (snowflake.ID, error) {
			assert.Equal(t, "⚠️ The crystal is in a different channel!", msg.Content)
			require.NotNil(t, msg.MessageReference)
			assert.Equal(t, claim.ID, *msg.MessageReference.MessageID)
			return 701, nil
		})
	HandleMessage(ctx, f.bot, claim)

	drop, live := f.bot.Crystals.Active(guild)
	require.True(t, live, "a wrong-channel claim leaves the drop in place")
	assert.Equal(t, channel, drop.ChannelID)

	u, _ := f.users.Get(cael.String())
	assert.Zero(t, u.CollectibleCount)
}

func TestHandleMessage_HelpReplyCompletesWisdomQuest(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	day := f.seedQuest(t, brann.String(), quests.KindGuardiansWisdom)

	selfReply := message(brann, helpChannel, "bumping my own question", time.Now())
	selfReply.ReplyTo = &selfReply.AuthorID
	HandleMessage(ctx, f.bot, selfReply)

	q, err := f.quests.Get(ctx, brann.String(), day)
	require.NoError(t, err)
	assert.False(t, q.Completed)

	answer := message(brann, helpChannel, "try the eastern bridge", time.Now().Add(time.Minute))
	asker := aria
	answer.ReplyTo = &asker
	HandleMessage(ctx, f.bot, answer)

	q, err = f.quests.Get(ctx, brann.String(), day)
	require.NoError(t, err)
	assert.True(t, q.Completed)
	assert.Equal(t, q.Target, q.Progress)
}

func TestHandleMessage_ReplyOutsideHelpChannel(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	day := f.seedQuest(t, brann.String(), quests.KindGuardiansWisdom)

	m := message(brann, channel, "try the eastern bridge", time.Now())
	asker := aria
	m.ReplyTo = &asker
	HandleMessage(ctx, f.bot, m)

	q, err := f.quests.Get(ctx, brann.String(), day)
	require.NoError(t, err)
	assert.False(t, q.Completed)
}

func TestVoiceSessionFeedsQuest(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	day := f.seedQuest(t, cael.String(), quests.KindVoiceOfArcadia)
	start := time.Now().Add(-40 * time.Minute)

	f.bot.Voice.Join(guild.String(), cael.String(), start)
	HandleVoiceMove(ctx, f.bot, guild.String(), cael.String(), start.Add(20*time.Minute))

	q, err := f.quests.Get(ctx, cael.String(), day)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), q.Progress)
	assert.False(t, q.Completed)

	// Leaving voice in another guild does not close this session.
	HandleVoiceLeave(ctx, f.bot, "2", cael.String(), start.Add(25*time.Minute))
	q, err = f.quests.Get(ctx, cael.String(), day)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), q.Progress)

	HandleVoiceLeave(ctx, f.bot, guild.String(), cael.String(), start.Add(31*time.Minute))

	q, err = f.quests.Get(ctx, cael.String(), day)
	require.NoError(t, err)
	assert.Equal(t, int64(1860), q.Progress)
	assert.True(t, q.Completed)

	// A leave with no open session is a no-op.
	HandleVoiceLeave(ctx, f.bot, guild.String(), cael.String(), start.Add(35*time.Minute))
}

func TestWelcome(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	welcome := snowflake.ID(77)

	f.effects.EXPECT().FindTextChannel(ctx, guild, gomock.Any()).Return(welcome, nil)
	f.effects.EXPECT().SendMessage(ctx, welcome, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ snowflake.ID, msg discord.MessageCreate) (snowflake.ID, error) {
			require.Len(t, msg.Embeds, 1)
			embed := msg.Embeds[0]
			assert.Equal(t, "🌟 A New Guardian Arrives", embed.Title)
			assert.Contains(t, embed.Description, "<@10>")
			assert.Equal(t, "Member #42 • May the Arcane guide you", embed.Footer.Text)
			return 800, nil
		})

	Welcome(ctx, f.bot, guild, aria, "https://cdn.example/avatar.png", 42)
}

func TestWelcome_NoChannel(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.effects.EXPECT().FindTextChannel(ctx, guild, gomock.Any()).
		Return(snowflake.ID(0), gateway.ErrChannelNotFound)

	Welcome(ctx, f.bot, guild, aria, "", 0)
}

func TestIsClaim(t *testing.T) {
	assert.True(t, isClaim("!claim"))
	assert.True(t, isClaim("  !CLAIM now"))
	assert.False(t, isClaim("!claimed"))
	assert.False(t, isClaim("please !claim"))
	assert.False(t, isClaim(""))
}
