package activity

import (
	"strings"
	"time"

	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/cooldown"
)

type keyword struct {
	phrase   string
	response string
}

var keywords = []keyword{
	{"greetings guardian", "🛡️ Greetings, brave soul! The Guardians watch over you."},
	{"what is arcadia", "✨ Arcadia is a realm of floating islands, ancient magic, and eternal wonder. Where sky and stone unite, legends are born!"},
	{"praise the crystal", "💎 May the Crystal's light guide your path through the misty heights!"},
	{"by the floating isles", "🏔️ Indeed! The Floating Isles hold secrets older than time itself..."},
	{"arcane blessings", "🌟 And may the Arcane bless your journey, noble wanderer!"},
	{"guardian's oath", "⚔️ *We stand eternal, watchers of the realm, protectors of the ancient ways!*"},
	{"hail aetherius", "⚡ I am here, eternal and watchful. What is your command, Guardian?"},
	{"thank you aetherius", "✨ The honor is mine. May your path be ever illuminated!"},
}

// Responder answers fixed phrases. Its cooldown lives in memory only; a
// restart at worst lets one extra reply through.
type Responder struct {
	gate *cooldown.Gate
}

func NewResponder(window time.Duration) *Responder {
	return &Responder{gate: cooldown.New(window, config.CooldownCacheSize)}
}

// Respond returns the reply for the first phrase found in content. A matched
// phrase during the member's cooldown yields no reply.
func (r *Responder) Respond(userID, content string, now time.Time) (string, bool) {
	lower := strings.ToLower(content)
	for _, kw := range keywords {
		if !strings.Contains(lower, kw.phrase) {
			continue
		}
		if rejected, _ := r.gate.FastReject(userID, now); rejected {
			return "", false
		}
		r.gate.Remember(userID, now)
		return kw.response, true
	}
	return "", false
}
