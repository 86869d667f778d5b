package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/cooldown"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/repositories"
	"github.com/guardian-of-arcadia/aetherius/aetherius/metrics"
	"github.com/guardian-of-arcadia/aetherius/aetherius/progress"
	"github.com/uptrace/bun"
)

// Service awards message XP. The persisted last_activity_ts decides the
// cooldown; the gate's cache only turns away repeats it has already seen.
type Service struct {
	xp     int64
	gate   *cooldown.Gate
	users  repositories.UserRepository
	ledger *progress.Ledger
	tx     database.Transactor
}

func NewService(xp int64, window time.Duration, users repositories.UserRepository, ledger *progress.Ledger, tx database.Transactor) *Service {
	return &Service{
		xp:     xp,
		gate:   cooldown.New(window, config.CooldownCacheSize),
		users:  users,
		ledger: ledger,
		tx:     tx,
	}
}

func cacheKey(guildID, userID string) string {
	return guildID + ":" + userID
}

// AwardMessage grants message XP for a message sent at. It returns nil when
// the member is still cooling down.
func (s *Service) AwardMessage(ctx context.Context, guildID, userID, username string, at time.Time) (*progress.Outcome, error) {
	key := cacheKey(guildID, userID)
	if rejected, _ := s.gate.FastReject(key, at); rejected {
		metrics.CooldownRejections.WithLabelValues("message", "cache").Inc()
		return nil, nil
	}

	var outcome *progress.Outcome
	var last time.Time
	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		user, err := s.users.WithTx(tx).GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user != nil {
			if ok, _ := s.gate.Check(user.LastActivityAt, at); !ok {
				last = user.LastActivityAt
				return nil
			}
		}

		outcome, err = s.ledger.Apply(ctx, tx, progress.Grant{
			UserID:     userID,
			Username:   username,
			Points:     s.xp,
			Messages:   1,
			ActivityAt: at,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to award message xp: %w", err)
	}

	if outcome == nil {
		s.gate.Remember(key, last)
		metrics.CooldownRejections.WithLabelValues("message", "store").Inc()
		return nil, nil
	}

	s.gate.Remember(key, at)
	metrics.XPAwarded.WithLabelValues("message").Add(float64(s.xp))
	return outcome, nil
}
