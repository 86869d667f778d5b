package models

import (
	"time"

	"github.com/uptrace/bun"
)

type DailyQuest struct {
	bun.BaseModel `bun:"table:daily_quests,alias:dq"`

	ID           int64      `bun:"id,pk,autoincrement"`
	UserID       string     `bun:"user_id,notnull,unique:daily_quests_user_day"`
	AssignedDate string     `bun:"assigned_date,type:varchar(10),notnull,unique:daily_quests_user_day"`
	Kind         string     `bun:"kind,notnull"`
	Description  string     `bun:"description,notnull"`
	Reward       int64      `bun:"reward,notnull"`
	Progress     int64      `bun:"progress,notnull"`
	Target       int64      `bun:"target,notnull"`
	Completed    bool       `bun:"completed,notnull"`
	Claimed      bool       `bun:"claimed,notnull"`
	CompletedAt  *time.Time `bun:"completed_at"`
	ClaimedAt    *time.Time `bun:"claimed_at"`
	CreatedAt    time.Time  `bun:"created_at,notnull"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull"`
}

// Advance raises progress to value (never lowering it) and flips Completed
// once the target is reached. It reports whether this call completed the quest.
func (q *DailyQuest) Advance(value int64, now time.Time) bool {
	if value > q.Progress {
		q.Progress = value
	}
	if q.Completed || q.Progress < q.Target {
		return false
	}
	q.Completed = true
	q.CompletedAt = &now
	return true
}

// GetProgressPercentage returns the current progress as a percentage
func (q *DailyQuest) GetProgressPercentage() float64 {
	if q.Target <= 0 {
		return 0
	}
	percentage := float64(q.Progress) / float64(q.Target) * 100
	if percentage > 100 {
		percentage = 100
	}
	return percentage
}
