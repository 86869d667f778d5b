package leveling

import "sort"

// RoleReward is a guild role granted once a member reaches Level.
type RoleReward struct {
	Level int
	Role  string
}

var roleRewards = []RoleReward{
	{Level: 0, Role: "Cloud-Walker"},
	{Level: 5, Role: "Mist-Warden"},
	{Level: 10, Role: "Aether-Guard"},
	{Level: 18, Role: "Crystal-Sentinel"},
	{Level: 26, Role: "Isle-Vanguard"},
	{Level: 35, Role: "Sky-Paladin"},
	{Level: 45, Role: "Grand Archon"},
	{Level: 60, Role: "Arcadian Paragon"},
}

var blessingEmoji = []struct {
	level int
	emoji string
}{
	{1, "✨"},
	{5, "⚔️"},
	{10, "🛡️"},
	{15, "🏆"},
	{20, "👑"},
	{25, "💎"},
	{30, "🔮"},
	{40, "⚡"},
	{50, "🌟"},
}

// RoleRewards returns the reward table ordered by level.
func RoleRewards() []RoleReward {
	out := make([]RoleReward, len(roleRewards))
	copy(out, roleRewards)
	return out
}

// RoleFor returns the highest role reward unlocked at level.
func RoleFor(level int) (string, bool) {
	i := sort.Search(len(roleRewards), func(i int) bool { return roleRewards[i].Level > level })
	if i == 0 {
		return "", false
	}
	return roleRewards[i-1].Role, true
}

// RolesCrossed lists the rewards unlocked by moving from one level to a
// higher one, lowest first.
func RolesCrossed(from, to int) []RoleReward {
	var crossed []RoleReward
	for _, r := range roleRewards {
		if r.Level > from && r.Level <= to {
			crossed = append(crossed, r)
		}
	}
	return crossed
}

// NextRole returns the first reward above level.
func NextRole(level int) (RoleReward, bool) {
	for _, r := range roleRewards {
		if r.Level > level {
			return r, true
		}
	}
	return RoleReward{}, false
}

func BlessingEmoji(level int) string {
	emoji := blessingEmoji[0].emoji
	for _, b := range blessingEmoji {
		if level >= b.level {
			emoji = b.emoji
		}
	}
	return emoji
}
