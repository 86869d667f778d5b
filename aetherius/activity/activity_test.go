package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guardian-of-arcadia/aetherius/aetherius/database/models"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/repositories/mock"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/repositories/repotest"
	"github.com/guardian-of-arcadia/aetherius/aetherius/leveling"
	"github.com/guardian-of-arcadia/aetherius/aetherius/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var start = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newXPService(users *repotest.UserStore) *Service {
	ledger := progress.NewLedger(users, leveling.NewCalculator(100))
	return NewService(15, 60*time.Second, users, ledger, &repotest.Transactor{})
}

func TestAwardMessage_FirstMessage(t *testing.T) {
	users := repotest.NewUserStore()
	s := newXPService(users)

	out, err := s.AwardMessage(context.Background(), "g", "1", "aria", start)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, int64(15), out.User.Points)
	assert.Equal(t, 1, out.Rank)
	assert.False(t, out.LeveledUp())
}

func TestAwardMessage_CooldownWindow(t *testing.T) {
	users := repotest.NewUserStore()
	s := newXPService(users)
	ctx := context.Background()

	out, err := s.AwardMessage(ctx, "g", "1", "aria", start)
	require.NoError(t, err)
	require.NotNil(t, out)

	out, err = s.AwardMessage(ctx, "g", "1", "aria", start.Add(59*time.Second))
	require.NoError(t, err)
	assert.Nil(t, out)

	out, err = s.AwardMessage(ctx, "g", "1", "aria", start.Add(60*time.Second))
	require.NoError(t, err)
	require.NotNil(t, out)

	u, _ := users.Get("1")
	assert.Equal(t, int64(30), u.Points)
	assert.Equal(t, int64(2), u.ActivityCount)
}

// A fresh process has an empty cache; the stored timestamp still gates.
func TestAwardMessage_PersistedTimestampIsAuthority(t *testing.T) {
	users := repotest.NewUserStore()
	users.Put(models.User{UserID: "1", Points: 15, Rank: 1, LastActivityAt: start.Add(-30 * time.Second)})
	s := newXPService(users)

	out, err := s.AwardMessage(context.Background(), "other-guild", "1", "aria", start)
	require.NoError(t, err)
	assert.Nil(t, out)

	u, _ := users.Get("1")
	assert.Equal(t, int64(15), u.Points)
}

func TestAwardMessage_LevelUpFiresOnceAtCrossing(t *testing.T) {
	users := repotest.NewUserStore()
	s := newXPService(users)
	ctx := context.Background()

	calc := leveling.NewCalculator(100)
	needed := int(calc.PointsRequiredFor(2)/15) + 1

	levelUps := 0
	for i := 1; i <= needed+3; i++ {
		at := start.Add(time.Duration(i) * time.Minute)
		out, err := s.AwardMessage(ctx, "g", "1", "aria", at)
		require.NoError(t, err)
		require.NotNil(t, out)
		if out.LeveledUp() {
			levelUps++
			assert.Equal(t, needed, i, "level up must fire on the crossing message")
			assert.Equal(t, 2, out.Rank)
		}
	}
	assert.Equal(t, 1, levelUps)
}

func TestAwardMessage_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	ledger := progress.NewLedger(repo, leveling.NewCalculator(100))
	s := NewService(15, time.Minute, repo, ledger, &repotest.Transactor{})
	boom := errors.New("too many connections")

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().GetForUpdate(gomock.Any(), "1").Return(nil, boom)

	_, err := s.AwardMessage(context.Background(), "g", "1", "aria", start)
	assert.ErrorIs(t, err, boom)

	// The failure did not prime the cache.
	rejected, _ := s.gate.FastReject(cacheKey("g", "1"), start)
	assert.False(t, rejected)
}

func TestResponder(t *testing.T) {
	r := NewResponder(30 * time.Second)

	reply, ok := r.Respond("1", "Hail Aetherius, watcher!", start)
	require.True(t, ok)
	assert.Contains(t, reply, "eternal and watchful")

	_, ok = r.Respond("1", "praise the crystal", start.Add(10*time.Second))
	assert.False(t, ok, "cooldown applies across phrases")

	_, ok = r.Respond("2", "praise the crystal", start.Add(10*time.Second))
	assert.True(t, ok, "cooldown is per member")

	_, ok = r.Respond("1", "nothing to see", start.Add(40*time.Second))
	assert.False(t, ok)

	reply, ok = r.Respond("1", "GREETINGS GUARDIAN and thank you aetherius", start.Add(40*time.Second))
	require.True(t, ok)
	assert.Contains(t, reply, "Greetings, brave soul", "first phrase in table order wins")
}

func TestVoiceSessions(t *testing.T) {
	v := NewVoiceSessions()

	_, ok := v.Leave("100", "1", start)
	assert.False(t, ok, "leave without join")

	v.Join("100", "1", start)
	v.Join("100", "1", start.Add(time.Minute))
	elapsed, ok := v.Move("100", "1", start.Add(10*time.Minute))
	require.True(t, ok)
	assert.Equal(t, 10*time.Minute, elapsed, "second join keeps the first start")

	elapsed, ok = v.Leave("100", "1", start.Add(25*time.Minute))
	require.True(t, ok)
	assert.Equal(t, 15*time.Minute, elapsed)
	assert.Zero(t, v.Len())
}

func TestVoiceSessions_SeparateGuilds(t *testing.T) {
	v := NewVoiceSessions()

	v.Join("100", "1", start)
	v.Join("200", "1", start.Add(5*time.Minute))
	assert.Equal(t, 2, v.Len())

	elapsed, ok := v.Leave("200", "1", start.Add(10*time.Minute))
	require.True(t, ok)
	assert.Equal(t, 5*time.Minute, elapsed)

	elapsed, ok = v.Leave("100", "1", start.Add(30*time.Minute))
	require.True(t, ok)
	assert.Equal(t, 30*time.Minute, elapsed, "leaving one guild keeps the other session open")

	_, ok = v.Leave("200", "1", start.Add(31*time.Minute))
	assert.False(t, ok)
}
