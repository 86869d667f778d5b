package quests

// Policy is how a quest kind turns signals into progress.
type Policy int

const (
	PolicyDistinctChannels Policy = iota
	PolicyDistinctCommands
	PolicyCounter
	PolicyDuration
	PolicyOneShot
)

type Kind string

const (
	KindSocialButterfly Kind = "social_butterfly"
	KindGuardiansWisdom Kind = "guardians_wisdom"
	KindArcaneExplorer  Kind = "arcane_explorer"
	KindVoiceOfArcadia  Kind = "voice_of_arcadia"
	KindReactionMaster  Kind = "reaction_master"
	KindNightWatch      Kind = "night_watch"
)

// Definition is a catalog entry. Target and Reward are copied onto the
// member's quest row when it is assigned, so later catalog edits never
// change a quest already handed out.
type Definition struct {
	Kind        Kind
	Name        string
	Description string
	Policy      Policy
	Target      int64
	Reward      int64
}

var catalog = []Definition{
	{
		Kind:        KindSocialButterfly,
		Name:        "Social Butterfly",
		Description: "Send messages in 5 different channels",
		Policy:      PolicyDistinctChannels,
		Target:      5,
		Reward:      300,
	},
	{
		Kind:        KindGuardiansWisdom,
		Name:        "Guardian's Wisdom",
		Description: "Share lore with `/lore <topic>` or help a member in a help channel",
		Policy:      PolicyOneShot,
		Target:      1,
		Reward:      250,
	},
	{
		Kind:        KindArcaneExplorer,
		Name:        "Arcane Explorer",
		Description: "Use 5 different bot commands",
		Policy:      PolicyDistinctCommands,
		Target:      5,
		Reward:      200,
	},
	{
		Kind:        KindVoiceOfArcadia,
		Name:        "Voice of Arcadia",
		Description: "Spend 30 minutes in voice chat",
		Policy:      PolicyDuration,
		Target:      1800,
		Reward:      350,
	},
	{
		Kind:        KindReactionMaster,
		Name:        "Reaction Master",
		Description: "React to 15 messages with emojis",
		Policy:      PolicyCounter,
		Target:      15,
		Reward:      150,
	},
	{
		Kind:        KindNightWatch,
		Name:        "Night Watch",
		Description: "Be active during the late hours",
		Policy:      PolicyOneShot,
		Target:      1,
		Reward:      400,
	},
}

func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

func Lookup(kind Kind) (Definition, bool) {
	for _, d := range catalog {
		if d.Kind == kind {
			return d, true
		}
	}
	return Definition{}, false
}
