package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the per-member progression row. Points only grow and Rank is
// derived from Points; rows are never deleted.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UserID           string    `bun:"user_id,pk"`
	Username         string    `bun:"username,notnull"`
	Points           int64     `bun:"points,notnull"`
	Rank             int       `bun:"rank,notnull"`
	LastActivityAt   time.Time `bun:"last_activity_ts,nullzero"`
	ActivityCount    int64     `bun:"activity_count,notnull"`
	CollectibleCount int64     `bun:"collectible_count,notnull"`
	RewardsGiven     int64     `bun:"rewards_given,notnull"`
	RewardsReceived  int64     `bun:"rewards_received,notnull"`
	LastBlessedAt    time.Time `bun:"last_blessed_at,nullzero"`
	CreatedAt        time.Time `bun:"created_at,notnull"`
	UpdatedAt        time.Time `bun:"updated_at,notnull"`
}
