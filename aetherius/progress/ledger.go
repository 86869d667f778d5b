package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guardian-of-arcadia/aetherius/aetherius/database/models"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/repositories"
	"github.com/guardian-of-arcadia/aetherius/aetherius/leveling"
	"github.com/uptrace/bun"
)

var ErrNegativeGrant = errors.New("grant deltas must not be negative")

// Grant describes everything a single logical operation adds to one member's
// progression row. Zero timestamps leave the stored value untouched.
type Grant struct {
	UserID            string
	Username          string
	Points            int64
	Messages          int64
	Collectibles      int64
	BlessingsGiven    int64
	BlessingsReceived int64
	ActivityAt        time.Time
	BlessedAt         time.Time
}

func (g Grant) validate() error {
	if g.UserID == "" {
		return errors.New("grant without user id")
	}
	if g.Points < 0 || g.Messages < 0 || g.Collectibles < 0 || g.BlessingsGiven < 0 || g.BlessingsReceived < 0 {
		return ErrNegativeGrant
	}
	return nil
}

// Outcome is the row as written plus the level change it caused.
type Outcome struct {
	User         *models.User
	PreviousRank int
	Rank         int
	Created      bool
}

func (o *Outcome) LeveledUp() bool {
	return o != nil && o.Rank > o.PreviousRank
}

// Ledger is the only writer of progression rows.
type Ledger struct {
	users repositories.UserRepository
	calc  *leveling.Calculator
}

func NewLedger(users repositories.UserRepository, calc *leveling.Calculator) *Ledger {
	return &Ledger{users: users, calc: calc}
}

func (l *Ledger) Calculator() *leveling.Calculator {
	return l.calc
}

// Apply adds g to the member's row inside the caller's transaction, creating
// the row first when the member has none. The level is recomputed from the new
// total and never moves down.
func (l *Ledger) Apply(ctx context.Context, idb bun.IDB, g Grant) (*Outcome, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	repo := l.users.WithTx(idb)

	user, created, err := l.lockOrCreate(ctx, repo, g.UserID, g.Username)
	if err != nil {
		return nil, err
	}

	previous := user.Rank
	if previous < 1 {
		previous = 1
	}

	if g.Username != "" {
		user.Username = g.Username
	}
	user.Points += g.Points
	user.ActivityCount += g.Messages
	user.CollectibleCount += g.Collectibles
	user.RewardsGiven += g.BlessingsGiven
	user.RewardsReceived += g.BlessingsReceived
	if !g.ActivityAt.IsZero() {
		user.LastActivityAt = g.ActivityAt
	}
	if !g.BlessedAt.IsZero() {
		user.LastBlessedAt = g.BlessedAt
	}

	rank := l.calc.RankFor(user.Points)
	if rank < previous {
		rank = previous
	}
	user.Rank = rank

	if err := repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to write progress for %s: %w", g.UserID, err)
	}

	return &Outcome{
		User:         user,
		PreviousRank: previous,
		Rank:         rank,
		Created:      created,
	}, nil
}

// lockOrCreate returns the member's row locked for the transaction. A lost
// insert race falls back to locking the row the other writer created.
func (l *Ledger) lockOrCreate(ctx context.Context, repo repositories.UserRepository, userID, username string) (*models.User, bool, error) {
	user, err := repo.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		return user, false, nil
	}

	user = &models.User{
		UserID:   userID,
		Username: username,
		Rank:     1,
	}
	created, err := repo.Insert(ctx, user)
	if err != nil {
		return nil, false, err
	}
	if created {
		return user, true, nil
	}

	user, err = repo.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, fmt.Errorf("user %s vanished after insert conflict", userID)
	}
	return user, false, nil
}

// Profile returns the stored row, or a fresh level 1 row for members who have
// not earned anything yet.
func (l *Ledger) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := l.users.GetByUserID(ctx, userID)
	if repositories.IsNotFound(err) {
		return &models.User{UserID: userID, Rank: 1}, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
