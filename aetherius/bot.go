package aetherius

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/guardian-of-arcadia/aetherius/aetherius/activity"
	"github.com/guardian-of-arcadia/aetherius/aetherius/announce"
	"github.com/guardian-of-arcadia/aetherius/aetherius/blessing"
	"github.com/guardian-of-arcadia/aetherius/aetherius/collectible"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/repositories"
	effects "github.com/guardian-of-arcadia/aetherius/aetherius/gateway"
	"github.com/guardian-of-arcadia/aetherius/aetherius/leveling"
	"github.com/guardian-of-arcadia/aetherius/aetherius/logger"
	"github.com/guardian-of-arcadia/aetherius/aetherius/progress"
	"github.com/guardian-of-arcadia/aetherius/aetherius/quests"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

// Bot owns every piece of runtime state. Handlers receive it explicitly;
// nothing lives in package globals.
type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string
	DB        *database.DB

	UserRepository  repositories.UserRepository
	QuestRepository repositories.QuestRepository
	Effects         effects.Effects

	Calculator *leveling.Calculator
	Ledger     *progress.Ledger
	Activity   *activity.Service
	Keywords   *activity.Responder
	Voice      *activity.VoiceSessions
	Crystals   *collectible.Manager
	Quests     *quests.Tracker
	Blessings  *blessing.Service
	Herald     *announce.Herald
}

// Init builds the services on top of db and the gateway effects.
func (b *Bot) Init(db *database.DB, fx effects.Effects) {
	b.DB = db
	b.Wire(
		repositories.NewUserRepository(db.BunDB()),
		repositories.NewQuestRepository(db.BunDB()),
		db,
		fx,
	)
}

// Wire builds the services over explicit collaborators.
func (b *Bot) Wire(users repositories.UserRepository, questRepo repositories.QuestRepository, tx database.Transactor, fx effects.Effects) {
	cfg := b.Cfg

	b.UserRepository = users
	b.QuestRepository = questRepo
	b.Effects = fx

	b.Calculator = leveling.NewCalculator(cfg.Progression.LevelMultiplier)
	b.Ledger = progress.NewLedger(users, b.Calculator)

	b.Activity = activity.NewService(cfg.Progression.XPPerMessage, cfg.Progression.MessageCooldown(), users, b.Ledger, tx)
	b.Keywords = activity.NewResponder(cfg.Keywords.Cooldown())
	b.Voice = activity.NewVoiceSessions()

	b.Crystals = collectible.NewManager(collectible.Config{
		Threshold: cfg.Crystal.Threshold,
		Lifetime:  cfg.Crystal.Lifetime(),
		Reward:    cfg.Crystal.Reward,
	}, collectible.NewEffectsAnnouncer(fx, cfg.Crystal.Reward), b.Ledger, tx)

	questService := quests.NewService(quests.Config{
		Location:       cfg.Quests.Location(),
		NightStartHour: cfg.Quests.NightStartHour,
		NightEndHour:   cfg.Quests.NightEndHour,
	}, questRepo, b.Ledger, tx, config.CooldownCacheSize)
	b.Quests = quests.NewTracker(questService)
	b.Quests.OnComplete = func(_ context.Context, userID string, update *quests.Update) {
		logger.LogEvent("Quest completed",
			slog.String("user_id", userID),
			slog.String("kind", update.Quest.Kind),
			slog.String("day", update.Quest.AssignedDate))
	}

	b.Blessings = blessing.NewService(cfg.Blessing.Reward, cfg.Blessing.Cooldown(), users, b.Ledger, tx)
	b.Herald = announce.NewHerald(fx, b.Calculator)
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(
			gateway.IntentGuilds,
			gateway.IntentGuildMessages,
			gateway.IntentMessageContent,
			gateway.IntentGuildMessageReactions,
			gateway.IntentGuildVoiceStates,
			gateway.IntentGuildMembers,
		)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds, cache.FlagChannels, cache.FlagRoles, cache.FlagVoiceStates)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

// Close stops the drop timers. The gateway client is closed by its owner.
func (b *Bot) Close() {
	if b.Crystals != nil {
		b.Crystals.Close()
	}
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Aetherius, the Eternal Sentry, has awakened in Arcadia",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("over the Floating Isles | Aetherius awakens"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}
