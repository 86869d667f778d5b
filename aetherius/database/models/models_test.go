package models

import (
	"testing"
	"time"
)

func TestDailyQuest_Advance(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	q := &DailyQuest{Target: 3}

	if q.Advance(2, now) {
		t.Fatal("quest completed below target")
	}
	if q.Advance(1, now) || q.Progress != 2 {
		t.Fatalf("progress decreased to %d", q.Progress)
	}
	if !q.Advance(3, now) {
		t.Fatal("quest should complete at target")
	}
	if q.CompletedAt == nil || !q.CompletedAt.Equal(now) {
		t.Fatal("completed_at not set")
	}
	if q.Advance(5, now.Add(time.Hour)) {
		t.Fatal("completion must be reported once")
	}
	if !q.Completed || !q.CompletedAt.Equal(now) {
		t.Fatal("completion must stick")
	}
}

func TestDailyQuest_GetProgressPercentage(t *testing.T) {
	tests := []struct {
		name     string
		progress int64
		target   int64
		want     float64
	}{
		{"zero target", 4, 0, 0},
		{"half", 5, 10, 50},
		{"capped", 30, 15, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &DailyQuest{Progress: tt.progress, Target: tt.target}
			if got := q.GetProgressPercentage(); got != tt.want {
				t.Errorf("GetProgressPercentage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuestSignalDetail_Dedup(t *testing.T) {
	d := &QuestSignalDetail{}
	if !d.AddChannel("1") || d.AddChannel("1") || !d.AddChannel("2") {
		t.Fatal("channel dedup failed")
	}
	if len(d.ChannelsSeen) != 2 {
		t.Fatalf("got %d channels, want 2", len(d.ChannelsSeen))
	}
	if d.AddCommand("") || !d.AddCommand("lore") || d.AddCommand("lore") {
		t.Fatal("command dedup failed")
	}
}
