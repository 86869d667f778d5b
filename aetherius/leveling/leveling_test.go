package leveling

import "testing"

func TestPointsRequiredFor(t *testing.T) {
	c := NewCalculator(100)
	tests := []struct {
		level int
		want  int64
	}{
		{0, 0},
		{1, 0},
		{2, 100},
		{3, 400},
		{10, 8100},
	}
	for _, tt := range tests {
		if got := c.PointsRequiredFor(tt.level); got != tt.want {
			t.Errorf("PointsRequiredFor(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestRankForIsMonotonic(t *testing.T) {
	c := NewCalculator(100)
	prev := c.RankFor(0)
	if prev != 1 {
		t.Fatalf("RankFor(0) = %d, want 1", prev)
	}
	for p := int64(1); p <= 50_000; p++ {
		r := c.RankFor(p)
		if r < prev {
			t.Fatalf("RankFor(%d) = %d dropped below %d", p, r, prev)
		}
		prev = r
	}
}

func TestRankForInvertsRequirement(t *testing.T) {
	for _, mult := range []int64{1, 7, 100, 250} {
		c := NewCalculator(mult)
		for r := 1; r <= 120; r++ {
			if got := c.RankFor(c.PointsRequiredFor(r)); got != r {
				t.Fatalf("multiplier %d: RankFor(PointsRequiredFor(%d)) = %d", mult, r, got)
			}
			if r > 1 {
				if got := c.RankFor(c.PointsRequiredFor(r) - 1); got != r-1 {
					t.Fatalf("multiplier %d: one point short of level %d gave %d", mult, r, got)
				}
			}
		}
	}
}

func TestProgress(t *testing.T) {
	c := NewCalculator(100)
	into, span := c.Progress(250)
	if into != 150 || span != 300 {
		t.Errorf("Progress(250) = (%d, %d), want (150, 300)", into, span)
	}
	if got := c.PointsToNext(250); got != 150 {
		t.Errorf("PointsToNext(250) = %d, want 150", got)
	}
}

func TestNewCalculatorDefaultsMultiplier(t *testing.T) {
	if got := NewCalculator(0).PointsRequiredFor(2); got != DefaultMultiplier {
		t.Errorf("got %d, want %d", got, DefaultMultiplier)
	}
}

func TestRoleRewards(t *testing.T) {
	if role, ok := RoleFor(1); !ok || role != "Cloud-Walker" {
		t.Errorf("RoleFor(1) = %q, %v", role, ok)
	}
	if role, _ := RoleFor(17); role != "Aether-Guard" {
		t.Errorf("RoleFor(17) = %q", role)
	}
	if role, _ := RoleFor(99); role != "Arcadian Paragon" {
		t.Errorf("RoleFor(99) = %q", role)
	}
	if _, ok := RoleFor(-1); ok {
		t.Error("negative level should unlock nothing")
	}

	crossed := RolesCrossed(4, 18)
	if len(crossed) != 3 || crossed[2].Role != "Crystal-Sentinel" {
		t.Errorf("RolesCrossed(4, 18) = %v", crossed)
	}
	if len(RolesCrossed(6, 9)) != 0 {
		t.Error("no reward between 6 and 9")
	}

	next, ok := NextRole(10)
	if !ok || next.Level != 18 {
		t.Errorf("NextRole(10) = %v, %v", next, ok)
	}
	if _, ok := NextRole(60); ok {
		t.Error("no reward after the last one")
	}
}

func TestBlessingEmoji(t *testing.T) {
	tests := map[int]string{1: "✨", 4: "✨", 5: "⚔️", 12: "🛡️", 49: "⚡", 80: "🌟"}
	for level, want := range tests {
		if got := BlessingEmoji(level); got != want {
			t.Errorf("BlessingEmoji(%d) = %q, want %q", level, got, want)
		}
	}
}
