package models

import (
	"slices"
	"time"

	"github.com/uptrace/bun"
)

// QuestSignalDetail holds the raw accumulators a day's quest progress is
// derived from.
type QuestSignalDetail struct {
	bun.BaseModel `bun:"table:quest_signal_details,alias:qsd"`

	ID            int64     `bun:"id,pk,autoincrement"`
	UserID        string    `bun:"user_id,notnull,unique:quest_signal_details_user_day"`
	QuestDate     string    `bun:"quest_date,type:varchar(10),notnull,unique:quest_signal_details_user_day"`
	ChannelsSeen  []string  `bun:"channels_seen,array"`
	CommandsSeen  []string  `bun:"commands_seen,array"`
	ReactionCount int64     `bun:"reaction_count,notnull"`
	VoiceSeconds  int64     `bun:"voice_seconds,notnull"`
	HelpGiven     bool      `bun:"help_flag,notnull"`
	LateNight     bool      `bun:"late_night_flag,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

// AddChannel records a channel id once and reports whether it was new.
func (d *QuestSignalDetail) AddChannel(channelID string) bool {
	if channelID == "" || slices.Contains(d.ChannelsSeen, channelID) {
		return false
	}
	d.ChannelsSeen = append(d.ChannelsSeen, channelID)
	return true
}

// AddCommand records a command name once and reports whether it was new.
func (d *QuestSignalDetail) AddCommand(name string) bool {
	if name == "" || slices.Contains(d.CommandsSeen, name) {
		return false
	}
	d.CommandsSeen = append(d.CommandsSeen, name)
	return true
}
