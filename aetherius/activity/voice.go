package activity

import (
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// VoiceSessions remembers when each member joined voice, per guild. Sessions
// open before a restart are lost; the member simply starts a new one on their
// next move or join.
type VoiceSessions struct {
	joined *xsync.MapOf[string, time.Time]
}

func NewVoiceSessions() *VoiceSessions {
	return &VoiceSessions{joined: xsync.NewMapOf[string, time.Time]()}
}

// Join opens a session at. An already open session keeps its start.
func (v *VoiceSessions) Join(guildID, userID string, at time.Time) {
	v.joined.LoadOrStore(sessionKey(guildID, userID), at)
}

// Leave closes the member's session and returns how long it lasted.
func (v *VoiceSessions) Leave(guildID, userID string, at time.Time) (time.Duration, bool) {
	start, ok := v.joined.LoadAndDelete(sessionKey(guildID, userID))
	if !ok || at.Before(start) {
		return 0, false
	}
	return at.Sub(start), true
}

// Move credits the time spent so far and restarts the session at.
func (v *VoiceSessions) Move(guildID, userID string, at time.Time) (time.Duration, bool) {
	elapsed, ok := v.Leave(guildID, userID, at)
	v.joined.Store(sessionKey(guildID, userID), at)
	return elapsed, ok
}

func (v *VoiceSessions) Len() int {
	return v.joined.Size()
}

func sessionKey(guildID, userID string) string {
	return guildID + ":" + userID
}
