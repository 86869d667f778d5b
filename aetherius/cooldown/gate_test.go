package cooldown

import (
	"errors"
	"testing"
	"time"
)

func TestGate_Check(t *testing.T) {
	g := New(60*time.Second, 16)
	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		last      time.Time
		now       time.Time
		allowed   bool
		remaining time.Duration
	}{
		{"never active", time.Time{}, base, true, 0},
		{"just now", base, base, false, 60 * time.Second},
		{"inside window", base, base.Add(59 * time.Second), false, time.Second},
		{"exactly window", base, base.Add(60 * time.Second), true, 0},
		{"after window", base, base.Add(5 * time.Minute), true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, remaining := g.Check(tt.last, tt.now)
			if allowed != tt.allowed || remaining != tt.remaining {
				t.Errorf("Check() = (%v, %v), want (%v, %v)", allowed, remaining, tt.allowed, tt.remaining)
			}
		})
	}
}

// Simulates a stream of signals against a persisted timestamp and counts awards.
func TestGate_AtMostOneAwardPerWindow(t *testing.T) {
	g := New(60*time.Second, 16)
	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	award := func(last *time.Time, at time.Time) bool {
		if ok, _ := g.Check(*last, at); !ok {
			return false
		}
		*last = at
		return true
	}

	for gap := time.Duration(0); gap < 120*time.Second; gap += 7 * time.Second {
		var last time.Time
		awards := 0
		if award(&last, base) {
			awards++
		}
		if award(&last, base.Add(gap)) {
			awards++
		}
		want := 1
		if gap >= g.Window() {
			want = 2
		}
		if awards != want {
			t.Fatalf("gap %s: %d awards, want %d", gap, awards, want)
		}
	}
}

func TestGate_FastRejectIsOnlyAHint(t *testing.T) {
	g := New(30*time.Second, 4)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	if rejected, _ := g.FastReject("g:u", now); rejected {
		t.Fatal("empty cache must not reject")
	}

	g.Remember("g:u", now)
	rejected, remaining := g.FastReject("g:u", now.Add(10*time.Second))
	if !rejected || remaining != 20*time.Second {
		t.Fatalf("FastReject = (%v, %v)", rejected, remaining)
	}

	if rejected, _ := g.FastReject("g:u", now.Add(31*time.Second)); rejected {
		t.Fatal("stale entry must not reject")
	}
	if rejected, _ := g.FastReject("g:u", now.Add(32*time.Second)); rejected {
		t.Fatal("stale entry should have been dropped")
	}
}

func TestGate_Err(t *testing.T) {
	g := New(300*time.Second, 4)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	err := g.Err(now.Add(-100*time.Second), now)
	var active *ActiveError
	if !errors.As(err, &active) || active.Remaining != 200*time.Second {
		t.Fatalf("Err = %v", err)
	}
	if err := g.Err(now.Add(-300*time.Second), now); err != nil {
		t.Fatalf("Err after window = %v", err)
	}
}
