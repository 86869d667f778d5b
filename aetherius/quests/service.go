package quests

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/guardian-of-arcadia/aetherius/aetherius/database"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/models"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/repositories"
	"github.com/guardian-of-arcadia/aetherius/aetherius/metrics"
	"github.com/guardian-of-arcadia/aetherius/aetherius/progress"
	lru "github.com/hashicorp/golang-lru"
	"github.com/uptrace/bun"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNoQuest             = errors.New("no quest assigned today")
	ErrQuestNotCompleted   = errors.New("quest not completed")
	ErrQuestAlreadyClaimed = errors.New("quest already claimed")
)

const dayLayout = "2006-01-02"

// settled marks a (member, day) whose quest is already complete, so no signal
// can move it.
const settled Kind = ""

type Config struct {
	Location       *time.Location
	NightStartHour int
	NightEndHour   int
}

// Update is the state of a quest after a signal was applied.
type Update struct {
	Quest     *models.DailyQuest
	Completed bool
}

type ClaimResult struct {
	Quest   *models.DailyQuest
	Outcome *progress.Outcome
}

// Service assigns one quest per member per day and folds activity signals
// into it. Signals that arrive before the member opens their quest are kept
// in the day's signal details and count once the quest is assigned.
type Service struct {
	cfg    Config
	quests repositories.QuestRepository
	ledger *progress.Ledger
	tx     database.Transactor

	assign singleflight.Group
	// kinds caches the assigned kind per member and day so signals that
	// cannot affect the quest skip the database.
	kinds *lru.Cache
	pick  func(n int) int
	now   func() time.Time
}

func NewService(cfg Config, quests repositories.QuestRepository, ledger *progress.Ledger, tx database.Transactor, cacheSize int) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	kinds, err := lru.New(cacheSize)
	if err != nil {
		panic(fmt.Sprintf("quests: %v", err))
	}
	return &Service{
		cfg:    cfg,
		quests: quests,
		ledger: ledger,
		tx:     tx,
		kinds:  kinds,
		pick:   rand.IntN,
		now:    time.Now,
	}
}

// DayKey is the calendar day of t in the quest timezone.
func (s *Service) DayKey(t time.Time) string {
	return t.In(s.cfg.Location).Format(dayLayout)
}

// IsNight reports whether t falls in the night watch window. The window may
// wrap past midnight.
func (s *Service) IsNight(t time.Time) bool {
	h := t.In(s.cfg.Location).Hour()
	start, end := s.cfg.NightStartHour, s.cfg.NightEndHour
	if start == end {
		return false
	}
	if start < end {
		return h >= start && h < end
	}
	return h >= start || h < end
}

// NextReset is the start of the next quest day.
func (s *Service) NextReset(now time.Time) time.Time {
	local := now.In(s.cfg.Location)
	y, m, d := local.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, s.cfg.Location)
}

func cacheKey(userID, day string) string {
	return userID + "|" + day
}

// Today returns the member's quest for the current day, assigning one on
// first access. Assignment is uniform over the catalog and final for the day.
func (s *Service) Today(ctx context.Context, userID string) (*models.DailyQuest, error) {
	day := s.DayKey(s.now())
	key := cacheKey(userID, day)

	v, err, _ := s.assign.Do(key, func() (interface{}, error) {
		quest, err := s.quests.Get(ctx, userID, day)
		if err == nil {
			return quest, nil
		}
		if !repositories.IsNotFound(err) {
			return nil, err
		}

		return s.assignQuest(ctx, userID, day)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load daily quest: %w", err)
	}

	quest := v.(*models.DailyQuest)
	if quest.Completed {
		s.kinds.Add(key, settled)
	} else {
		s.kinds.Add(key, Kind(quest.Kind))
	}
	out := *quest
	return &out, nil
}

// assignQuest picks a quest for the day and credits the signals recorded
// before it existed. The signal details are locked first, in the same order
// Record takes them, so no concurrent signal slips between the two.
func (s *Service) assignQuest(ctx context.Context, userID, day string) (*models.DailyQuest, error) {
	defs := Catalog()
	def := defs[s.pick(len(defs))]

	var quest *models.DailyQuest
	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		repo := s.quests.WithTx(tx)

		detail, err := s.lockDetail(ctx, repo, userID, day)
		if err != nil {
			return err
		}

		quest = &models.DailyQuest{
			UserID:       userID,
			AssignedDate: day,
			Kind:         string(def.Kind),
			Description:  def.Description,
			Reward:       def.Reward,
			Target:       def.Target,
		}
		quest.Advance(derive(def, detail, quest), s.now())

		created, err := repo.InsertIfAbsent(ctx, quest)
		if err != nil {
			return err
		}
		if !created {
			quest, err = repo.Get(ctx, userID, day)
			return err
		}

		metrics.Quests.WithLabelValues("assigned", quest.Kind).Inc()
		slog.Debug("Daily quest assigned",
			slog.String("type", "db"),
			slog.String("user_id", userID),
			slog.String("kind", quest.Kind),
			slog.String("day", day),
			slog.Int64("progress", quest.Progress))
		if quest.Completed {
			metrics.Quests.WithLabelValues("completed", quest.Kind).Inc()
		}
		return nil
	})
	return quest, err
}

// accepts reports whether a signal can move a quest of this definition.
func (s *Service) accepts(def Definition, sig Signal) bool {
	switch def.Kind {
	case KindSocialButterfly:
		return sig.Kind == SignalMessage && sig.ChannelID != ""
	case KindNightWatch:
		return sig.Kind == SignalMessage && s.IsNight(sig.At)
	case KindArcaneExplorer:
		return sig.Kind == SignalCommand && sig.Command != ""
	case KindReactionMaster:
		return sig.Kind == SignalReaction
	case KindVoiceOfArcadia:
		return sig.Kind == SignalVoice && sig.Seconds > 0
	case KindGuardiansWisdom:
		return sig.Kind == SignalHelp
	}
	return false
}

// Record folds sig into the member's quest for the signal's day. Before the
// quest is assigned the signal is only noted in the day's signal details. It
// returns nil when no quest moved. Completion is reported once, on the signal
// that reaches the target.
func (s *Service) Record(ctx context.Context, userID string, sig Signal) (*Update, error) {
	if sig.At.IsZero() {
		sig.At = s.now()
	}
	day := s.DayKey(sig.At)
	key := cacheKey(userID, day)

	if cached, ok := s.kinds.Get(key); ok {
		kind := cached.(Kind)
		if kind == settled {
			return nil, nil
		}
		if def, ok := Lookup(kind); !ok || !s.accepts(def, sig) {
			return nil, nil
		}
	}

	var update *Update
	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		repo := s.quests.WithTx(tx)

		detail, err := s.lockDetail(ctx, repo, userID, day)
		if err != nil {
			return err
		}
		quest, err := repo.GetForUpdate(ctx, userID, day)
		if err != nil {
			return err
		}

		if quest == nil {
			if !s.note(detail, sig) {
				return nil
			}
			return repo.UpdateDetail(ctx, detail)
		}
		if quest.Completed {
			s.kinds.Add(key, settled)
			return nil
		}
		s.kinds.Add(key, Kind(quest.Kind))

		def, ok := Lookup(Kind(quest.Kind))
		if !ok || !s.accepts(def, sig) {
			return nil
		}

		s.note(detail, sig)
		completed := quest.Advance(derive(def, detail, quest), s.now())

		if err = repo.UpdateDetail(ctx, detail); err != nil {
			return err
		}
		if err = repo.Update(ctx, quest); err != nil {
			return err
		}
		update = &Update{Quest: quest, Completed: completed}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record %s signal: %w", sig.Kind, err)
	}

	if update != nil && update.Completed {
		s.kinds.Add(key, settled)
		metrics.Quests.WithLabelValues("completed", update.Quest.Kind).Inc()
		slog.Info("Daily quest completed",
			slog.String("type", "event"),
			slog.String("user_id", userID),
			slog.String("kind", update.Quest.Kind))
	}
	return update, nil
}

func (s *Service) lockDetail(ctx context.Context, repo repositories.QuestRepository, userID, day string) (*models.QuestSignalDetail, error) {
	detail, err := repo.GetDetailForUpdate(ctx, userID, day)
	if err != nil || detail != nil {
		return detail, err
	}
	detail = &models.QuestSignalDetail{UserID: userID, QuestDate: day}
	created, err := repo.InsertDetailIfAbsent(ctx, detail)
	if err != nil {
		return nil, err
	}
	if created {
		return detail, nil
	}
	detail, err = repo.GetDetailForUpdate(ctx, userID, day)
	if err == nil && detail == nil {
		err = fmt.Errorf("quest signals for %s vanished after insert conflict", userID)
	}
	return detail, err
}

// note records sig in detail and reports whether detail changed.
func (s *Service) note(detail *models.QuestSignalDetail, sig Signal) bool {
	switch sig.Kind {
	case SignalMessage:
		changed := detail.AddChannel(sig.ChannelID)
		if s.IsNight(sig.At) && !detail.LateNight {
			detail.LateNight = true
			changed = true
		}
		return changed
	case SignalCommand:
		return detail.AddCommand(sig.Command)
	case SignalReaction:
		detail.ReactionCount++
		return true
	case SignalVoice:
		if sig.Seconds <= 0 {
			return false
		}
		detail.VoiceSeconds += sig.Seconds
		return true
	case SignalHelp:
		if detail.HelpGiven {
			return false
		}
		detail.HelpGiven = true
		return true
	}
	return false
}

// derive applies the definition's policy to the recorded signals and returns
// the progress value they amount to.
func derive(def Definition, detail *models.QuestSignalDetail, quest *models.DailyQuest) int64 {
	switch def.Policy {
	case PolicyDistinctChannels:
		return int64(len(detail.ChannelsSeen))
	case PolicyDistinctCommands:
		return int64(len(detail.CommandsSeen))
	case PolicyCounter:
		return detail.ReactionCount
	case PolicyDuration:
		return detail.VoiceSeconds
	case PolicyOneShot:
		if (def.Kind == KindNightWatch && detail.LateNight) || (def.Kind == KindGuardiansWisdom && detail.HelpGiven) {
			return quest.Target
		}
	}
	return quest.Progress
}

// Claim pays out today's completed quest once.
func (s *Service) Claim(ctx context.Context, userID, username string) (*ClaimResult, error) {
	now := s.now()
	day := s.DayKey(now)

	var result *ClaimResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		repo := s.quests.WithTx(tx)

		quest, err := repo.GetForUpdate(ctx, userID, day)
		if err != nil {
			return err
		}
		switch {
		case quest == nil:
			return ErrNoQuest
		case !quest.Completed:
			return ErrQuestNotCompleted
		case quest.Claimed:
			return ErrQuestAlreadyClaimed
		}

		outcome, err := s.ledger.Apply(ctx, tx, progress.Grant{
			UserID:   userID,
			Username: username,
			Points:   quest.Reward,
		})
		if err != nil {
			return err
		}

		quest.Claimed = true
		quest.ClaimedAt = &now
		if err = repo.Update(ctx, quest); err != nil {
			return err
		}
		result = &ClaimResult{Quest: quest, Outcome: outcome}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.Quests.WithLabelValues("claimed", result.Quest.Kind).Inc()
	metrics.XPAwarded.WithLabelValues("quest").Add(float64(result.Quest.Reward))
	return result, nil
}

// Cleanup removes signal accumulators from before yesterday.
func (s *Service) Cleanup(ctx context.Context) (int64, error) {
	cutoff := s.DayKey(s.now().AddDate(0, 0, -1))
	n, err := s.quests.DeleteDetailsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean quest signals: %w", err)
	}
	return n, nil
}
