package collectible

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database"
	"github.com/guardian-of-arcadia/aetherius/aetherius/metrics"
	"github.com/guardian-of-arcadia/aetherius/aetherius/progress"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/uptrace/bun"
)

var (
	ErrNoActiveDrop = errors.New("no crystal shard is active")
	ErrWrongChannel = errors.New("the crystal shard is in a different channel")
)

// Drop is one spawned crystal shard.
type Drop struct {
	ID        uuid.UUID
	GuildID   snowflake.ID
	ChannelID snowflake.ID
	MessageID snowflake.ID
	SpawnedAt time.Time

	// announced flips once the spawn message is out; only then can the drop
	// be claimed or time out.
	announced bool
	timer     *time.Timer
}

// Announcer renders the drop lifecycle in the guild.
type Announcer interface {
	Announce(ctx context.Context, drop Drop) (snowflake.ID, error)
	Claimed(ctx context.Context, drop Drop, userID snowflake.ID) error
	Expired(ctx context.Context, drop Drop) error
}

type Config struct {
	Threshold int
	Lifetime  time.Duration
	Reward    int64
}

// ClaimResult is what the single winning claimant receives.
type ClaimResult struct {
	Drop    Drop
	Outcome *progress.Outcome
}

// guild is the per-guild slot. mu guards every field and is only held
// across in-memory checks, never across I/O.
type guild struct {
	mu      sync.Mutex
	counter int
	drop    *Drop
}

// Manager runs the Idle -> Active -> Claimed|Expired -> Idle cycle for
// every guild. Each guild has its own lock; guilds never block each other.
type Manager struct {
	cfg       Config
	guilds    *xsync.MapOf[snowflake.ID, *guild]
	announcer Announcer
	ledger    *progress.Ledger
	tx        database.Transactor
	now       func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewManager(cfg Config, announcer Announcer, ledger *progress.Ledger, tx database.Transactor) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		cfg:       cfg,
		guilds:    xsync.NewMapOf[snowflake.ID, *guild](),
		announcer: announcer,
		ledger:    ledger,
		tx:        tx,
		now:       time.Now,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (m *Manager) slot(guildID snowflake.ID) *guild {
	g, _ := m.guilds.LoadOrCompute(guildID, func() *guild { return &guild{} })
	return g
}

// Observe counts one member message in channelID. When the guild's counter
// reaches the threshold and no drop is live, it spawns one there and returns
// it.
func (m *Manager) Observe(ctx context.Context, guildID, channelID snowflake.ID) (*Drop, error) {
	g := m.slot(guildID)

	g.mu.Lock()
	g.counter++
	if g.counter < m.cfg.Threshold || g.drop != nil {
		g.mu.Unlock()
		return nil, nil
	}
	g.counter = 0
	drop := &Drop{
		ID:        uuid.New(),
		GuildID:   guildID,
		ChannelID: channelID,
		SpawnedAt: m.now(),
	}
	g.drop = drop
	g.mu.Unlock()

	msgID, err := m.announcer.Announce(ctx, *drop)
	if err != nil {
		m.expire(guildID, drop)
		return nil, fmt.Errorf("failed to announce crystal shard: %w", err)
	}

	g.mu.Lock()
	if g.drop != drop {
		// Forgotten while the announcement was in flight.
		g.mu.Unlock()
		return nil, nil
	}
	drop.MessageID = msgID
	drop.announced = true
	drop.timer = time.AfterFunc(m.cfg.Lifetime, func() { m.expire(guildID, drop) })
	snapshot := *drop
	g.mu.Unlock()

	metrics.Crystals.WithLabelValues("spawned").Inc()
	slog.Info("Crystal shard spawned",
		slog.String("type", "event"),
		slog.String("drop_id", drop.ID.String()),
		slog.String("guild_id", guildID.String()),
		slog.String("channel_id", channelID.String()))
	return &snapshot, nil
}

// Active returns the claimable drop of a guild.
func (m *Manager) Active(guildID snowflake.ID) (Drop, bool) {
	g, ok := m.guilds.Load(guildID)
	if !ok {
		return Drop{}, false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.drop == nil || !g.drop.announced {
		return Drop{}, false
	}
	return *g.drop, true
}

// Claim hands the live drop to the first caller in the right channel.
// Exactly one concurrent caller wins; the rest get ErrNoActiveDrop. A claim
// from another channel leaves the drop untouched.
func (m *Manager) Claim(ctx context.Context, guildID, channelID, userID snowflake.ID, username string) (*ClaimResult, error) {
	g, ok := m.guilds.Load(guildID)
	if !ok {
		return nil, ErrNoActiveDrop
	}

	g.mu.Lock()
	drop := g.drop
	if drop == nil || !drop.announced {
		g.mu.Unlock()
		return nil, ErrNoActiveDrop
	}
	if drop.ChannelID != channelID {
		g.mu.Unlock()
		metrics.Crystals.WithLabelValues("rejected").Inc()
		return nil, ErrWrongChannel
	}
	g.drop = nil
	if drop.timer != nil {
		drop.timer.Stop()
	}
	won := *drop
	g.mu.Unlock()

	metrics.Crystals.WithLabelValues("claimed").Inc()

	var outcome *progress.Outcome
	err := m.tx.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		outcome, err = m.ledger.Apply(ctx, tx, progress.Grant{
			UserID:       userID.String(),
			Username:     username,
			Points:       m.cfg.Reward,
			Collectibles: 1,
		})
		return err
	})
	if err != nil {
		slog.Error("Crystal shard reward failed",
			slog.String("type", "db"),
			slog.String("drop_id", won.ID.String()),
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
		return nil, fmt.Errorf("failed to reward crystal shard: %w", err)
	}
	metrics.XPAwarded.WithLabelValues("crystal").Add(float64(m.cfg.Reward))

	m.background(func(ctx context.Context) {
		if err := m.announcer.Claimed(ctx, won, userID); err != nil {
			slog.Warn("Failed to mark crystal shard claimed",
				slog.String("type", "event"),
				slog.String("drop_id", won.ID.String()),
				slog.Any("error", err))
		}
	})

	return &ClaimResult{Drop: won, Outcome: outcome}, nil
}

// expire returns the guild to idle if drop is still its live drop and edits
// the announcement when there is one.
func (m *Manager) expire(guildID snowflake.ID, drop *Drop) {
	g, ok := m.guilds.Load(guildID)
	if !ok {
		return
	}
	g.mu.Lock()
	if g.drop != drop {
		g.mu.Unlock()
		return
	}
	g.drop = nil
	snapshot := *drop
	g.mu.Unlock()

	metrics.Crystals.WithLabelValues("expired").Inc()
	slog.Info("Crystal shard expired",
		slog.String("type", "event"),
		slog.String("drop_id", snapshot.ID.String()),
		slog.String("guild_id", guildID.String()))

	if !snapshot.announced {
		return
	}
	m.background(func(ctx context.Context) {
		if err := m.announcer.Expired(ctx, snapshot); err != nil {
			slog.Warn("Failed to mark crystal shard expired",
				slog.String("type", "event"),
				slog.String("drop_id", snapshot.ID.String()),
				slog.Any("error", err))
		}
	})
}

func (m *Manager) background(fn func(ctx context.Context)) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ctx, cancel := context.WithTimeout(m.ctx, config.EffectTimeout)
		defer cancel()
		fn(ctx)
	}()
}

// Forget drops all state of a guild the bot can no longer see. A pending
// expiry is cancelled rather than left to edit a message in a gone channel.
func (m *Manager) Forget(guildID snowflake.ID) {
	g, ok := m.guilds.LoadAndDelete(guildID)
	if !ok {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.drop != nil && g.drop.timer != nil {
		g.drop.timer.Stop()
	}
	g.drop = nil
}

// ForgetChannel cancels a live drop placed in a deleted channel.
func (m *Manager) ForgetChannel(guildID, channelID snowflake.ID) {
	g, ok := m.guilds.Load(guildID)
	if !ok {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.drop != nil && g.drop.ChannelID == channelID {
		if g.drop.timer != nil {
			g.drop.timer.Stop()
		}
		g.drop = nil
	}
}

// Close stops every timer and waits for in-flight announcement edits.
func (m *Manager) Close() {
	m.guilds.Range(func(_ snowflake.ID, g *guild) bool {
		g.mu.Lock()
		if g.drop != nil && g.drop.timer != nil {
			g.drop.timer.Stop()
		}
		g.drop = nil
		g.mu.Unlock()
		return true
	})
	m.cancel()
	m.wg.Wait()
}
