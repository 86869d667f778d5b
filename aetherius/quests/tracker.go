package quests

import (
	"context"
	"log/slog"
	"time"
)

// Tracker is the fire-and-forget entry point for event handlers. Failures
// are logged and never reach the member.
type Tracker struct {
	service *Service
	// OnComplete, when set, is called after a signal completes a quest.
	OnComplete func(ctx context.Context, userID string, update *Update)
}

func NewTracker(service *Service) *Tracker {
	return &Tracker{service: service}
}

func (t *Tracker) Service() *Service {
	return t.service
}

func (t *Tracker) track(ctx context.Context, userID string, sig Signal) {
	if t == nil || t.service == nil {
		return
	}
	update, err := t.service.Record(ctx, userID, sig)
	if err != nil {
		slog.Debug("Failed to track quest progress",
			slog.String("type", "db"),
			slog.String("user_id", userID),
			slog.String("signal", sig.Kind.String()),
			slog.Any("error", err))
		return
	}
	if update != nil && update.Completed && t.OnComplete != nil {
		t.OnComplete(ctx, userID, update)
	}
}

// TrackMessage covers both channel variety and night watch activity.
func (t *Tracker) TrackMessage(ctx context.Context, userID, channelID string, at time.Time) {
	t.track(ctx, userID, Message(channelID, at))
}

func (t *Tracker) TrackCommand(ctx context.Context, userID, command string) {
	t.track(ctx, userID, Command(command, time.Now()))
}

func (t *Tracker) TrackReaction(ctx context.Context, userID string) {
	t.track(ctx, userID, Reaction(time.Now()))
}

func (t *Tracker) TrackVoice(ctx context.Context, userID string, d time.Duration) {
	seconds := int64(d / time.Second)
	if seconds <= 0 {
		return
	}
	t.track(ctx, userID, Voice(seconds, time.Now()))
}

func (t *Tracker) TrackHelp(ctx context.Context, userID string) {
	t.track(ctx, userID, Help(time.Now()))
}
