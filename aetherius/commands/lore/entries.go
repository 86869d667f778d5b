package lore

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

type Entry struct {
	Key     string
	Title   string
	Content string
}

var entries = []Entry{
	{
		Key:     "arcadia",
		Title:   "🏰 The Realm of Arcadia",
		Content: "Arcadia is a mystical realm suspended between earth and sky, where massive islands float among the clouds, held aloft by ancient Arcane crystals. These floating sanctuaries are home to the Guardians, noble warriors sworn to protect the realm from darkness. The very air hums with magical energy, and waterfalls cascade into endless voids below.",
	},
	{
		Key:     "guardians",
		Title:   "⚔️ The Order of Guardians",
		Content: "The Guardians are an ancient order of protectors who have defended Arcadia for millennia. Rising through the ranks from Cloud-Walker to Arcadian Paragon, each Guardian bears the sacred duty to maintain balance between the mortal and arcane realms. Their power comes from the Crystal Sanctums scattered across the floating isles.",
	},
	{
		Key:     "crystals",
		Title:   "💎 The Arcane Crystals",
		Content: "The Arcane Crystals are the heart of Arcadia's power. These luminescent gems pulse with raw magical energy, keeping the islands afloat and granting Guardians their mystical abilities. Legend speaks of a Prime Crystal, hidden in the highest sanctum, that holds the key to Arcadia's creation.",
	},
	{
		Key:     "isles",
		Title:   "🏔️ The Floating Isles",
		Content: "Seventeen great isles float in the skies of Arcadia, each with its own unique terrain and mysteries. From the Azure Peaks with their crystal-blue waters, to the Golden Highlands where eternal sunlight bathes the land, each isle holds ancient secrets and powerful artifacts waiting to be discovered.",
	},
	{
		Key:     "history",
		Title:   "📜 The Ancient History",
		Content: "In the age before memory, when the world was whole, a great cataclysm shattered the land. The Ancients, wielding powerful crystals, raised fragments of the earth to the skies to preserve them. Thus Arcadia was born, and the first Guardians were chosen to protect this sanctuary for all eternity.",
	},
	{
		Key:     "aetherius",
		Title:   "⚡ Aetherius - The Eternal Sentry",
		Content: "Aetherius is the ancient guardian spirit who watches over all of Arcadia. Neither mortal nor god, Aetherius exists as a consciousness woven into the very fabric of the realm. They guide new arrivals, bestow blessings, and maintain the delicate balance between order and chaos. Some say Aetherius was the first Guardian, transformed by the Prime Crystal into an eternal protector.",
	},
}

type entrySource []Entry

func (s entrySource) String(i int) string { return s[i].Key }
func (s entrySource) Len() int            { return len(s) }

// Find resolves a topic to an entry. An exact key wins; otherwise the best
// fuzzy match over the keys is used.
func Find(topic string) (Entry, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return Entry{}, false
	}
	for _, e := range entries {
		if e.Key == topic {
			return e, true
		}
	}
	matches := fuzzy.FindFrom(topic, entrySource(entries))
	if len(matches) == 0 {
		return Entry{}, false
	}
	return entries[matches[0].Index], true
}

// Suggest lists the keys matching prefix, all of them for an empty prefix.
func Suggest(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		keys := make([]string, len(entries))
		for i, e := range entries {
			keys[i] = e.Key
		}
		return keys
	}
	var keys []string
	for _, m := range fuzzy.FindFrom(prefix, entrySource(entries)) {
		keys = append(keys, entries[m.Index].Key)
	}
	return keys
}
