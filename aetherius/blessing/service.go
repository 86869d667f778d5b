package blessing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/cooldown"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/repositories"
	"github.com/guardian-of-arcadia/aetherius/aetherius/metrics"
	"github.com/guardian-of-arcadia/aetherius/aetherius/progress"
	"github.com/uptrace/bun"
)

var (
	ErrSelfBlessing = errors.New("cannot bless yourself")
	ErrBotTarget    = errors.New("cannot bless a bot")
)

type Member struct {
	ID     string
	Name   string
	Bot    bool
	System bool
}

// Result holds both sides of a committed blessing.
type Result struct {
	Giver    *progress.Outcome
	Receiver *progress.Outcome
}

type Service struct {
	reward int64
	gate   *cooldown.Gate
	users  repositories.UserRepository
	ledger *progress.Ledger
	tx     database.Transactor
	now    func() time.Time
}

func NewService(reward int64, window time.Duration, users repositories.UserRepository, ledger *progress.Ledger, tx database.Transactor) *Service {
	return &Service{
		reward: reward,
		gate:   cooldown.New(window, config.CooldownCacheSize),
		users:  users,
		ledger: ledger,
		tx:     tx,
		now:    time.Now,
	}
}

func (s *Service) Reward() int64 {
	return s.reward
}

// Bless awards both members the blessing reward in one transaction. The
// giver's persisted last_blessed_at is the authority for the cooldown.
func (s *Service) Bless(ctx context.Context, giver, receiver Member) (*Result, error) {
	if giver.ID == receiver.ID {
		metrics.Blessings.WithLabelValues("self").Inc()
		return nil, ErrSelfBlessing
	}
	if receiver.Bot || receiver.System {
		metrics.Blessings.WithLabelValues("bot").Inc()
		return nil, ErrBotTarget
	}

	now := s.now()
	if rejected, remaining := s.gate.FastReject(giver.ID, now); rejected {
		metrics.CooldownRejections.WithLabelValues("blessing", "cache").Inc()
		metrics.Blessings.WithLabelValues("cooldown").Inc()
		return nil, &cooldown.ActiveError{Remaining: remaining}
	}

	result := &Result{}
	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		locked, err := s.users.WithTx(tx).LockForUpdate(ctx, giver.ID, receiver.ID)
		if err != nil {
			return err
		}
		for _, u := range locked {
			if u.UserID != giver.ID {
				continue
			}
			if err = s.gate.Err(u.LastBlessedAt, now); err != nil {
				s.gate.Remember(giver.ID, u.LastBlessedAt)
				return err
			}
		}

		result.Giver, err = s.ledger.Apply(ctx, tx, progress.Grant{
			UserID:         giver.ID,
			Username:       giver.Name,
			Points:         s.reward,
			BlessingsGiven: 1,
			BlessedAt:      now,
		})
		if err != nil {
			return err
		}
		result.Receiver, err = s.ledger.Apply(ctx, tx, progress.Grant{
			UserID:            receiver.ID,
			Username:          receiver.Name,
			Points:            s.reward,
			BlessingsReceived: 1,
		})
		return err
	})
	if err != nil {
		var active *cooldown.ActiveError
		if errors.As(err, &active) {
			metrics.CooldownRejections.WithLabelValues("blessing", "store").Inc()
			metrics.Blessings.WithLabelValues("cooldown").Inc()
			return nil, err
		}
		metrics.Blessings.WithLabelValues("error").Inc()
		slog.Error("Blessing failed",
			slog.String("type", "db"),
			slog.String("giver_id", giver.ID),
			slog.String("receiver_id", receiver.ID),
			slog.Any("error", err))
		return nil, err
	}

	s.gate.Remember(giver.ID, now)
	metrics.Blessings.WithLabelValues("ok").Inc()
	metrics.XPAwarded.WithLabelValues("blessing").Add(float64(2 * s.reward))
	return result, nil
}
