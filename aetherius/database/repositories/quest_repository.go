package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/guardian-of-arcadia/aetherius/aetherius/database/models"
	"github.com/uptrace/bun"
)

//go:generate mockgen -source=quest_repository.go -destination=mock/quest_repository.go -package=mock

// QuestRepository stores one daily quest and one signal detail row per
// member per day. Days are ISO dates in the configured quest timezone.
type QuestRepository interface {
	Get(ctx context.Context, userID, day string) (*models.DailyQuest, error)
	// GetForUpdate locks the quest row; a missing row yields (nil, nil).
	GetForUpdate(ctx context.Context, userID, day string) (*models.DailyQuest, error)
	// InsertIfAbsent reports whether this call created the row.
	InsertIfAbsent(ctx context.Context, quest *models.DailyQuest) (bool, error)
	Update(ctx context.Context, quest *models.DailyQuest) error
	GetDetailForUpdate(ctx context.Context, userID, day string) (*models.QuestSignalDetail, error)
	InsertDetailIfAbsent(ctx context.Context, detail *models.QuestSignalDetail) (bool, error)
	UpdateDetail(ctx context.Context, detail *models.QuestSignalDetail) error
	// DeleteDetailsBefore removes signal accumulators older than day.
	DeleteDetailsBefore(ctx context.Context, day string) (int64, error)
	WithTx(db bun.IDB) QuestRepository
}

type questRepository struct {
	baseRepository
	db bun.IDB
}

func NewQuestRepository(db bun.IDB) QuestRepository {
	return &questRepository{baseRepository: newBaseRepository(), db: db}
}

func (r *questRepository) WithTx(db bun.IDB) QuestRepository {
	return &questRepository{baseRepository: r.baseRepository, db: db}
}

func (r *questRepository) Get(ctx context.Context, userID, day string) (*models.DailyQuest, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	quest := new(models.DailyQuest)
	err := r.db.NewSelect().
		Model(quest).
		Where("user_id = ?", userID).
		Where("assigned_date = ?", day).
		Scan(ctx)
	if err != nil {
		return nil, r.handleError("get", "daily quest", userID, err)
	}
	return quest, nil
}

func (r *questRepository) GetForUpdate(ctx context.Context, userID, day string) (*models.DailyQuest, error) {
	quest := new(models.DailyQuest)
	err := r.db.NewSelect().
		Model(quest).
		Where("user_id = ?", userID).
		Where("assigned_date = ?", day).
		For("UPDATE").
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.handleError("lock", "daily quest", userID, err)
	}
	return quest, nil
}

func (r *questRepository) InsertIfAbsent(ctx context.Context, quest *models.DailyQuest) (bool, error) {
	now := time.Now()
	quest.CreatedAt = now
	quest.UpdatedAt = now

	res, err := r.db.NewInsert().
		Model(quest).
		On("CONFLICT (user_id, assigned_date) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, r.handleError("insert", "daily quest", quest.UserID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, r.handleError("insert", "daily quest", quest.UserID, err)
	}
	return affected > 0, nil
}

func (r *questRepository) Update(ctx context.Context, quest *models.DailyQuest) error {
	quest.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(quest).
		WherePK().
		Exec(ctx)
	return r.handleError("update", "daily quest", quest.ID, err)
}

func (r *questRepository) GetDetailForUpdate(ctx context.Context, userID, day string) (*models.QuestSignalDetail, error) {
	detail := new(models.QuestSignalDetail)
	err := r.db.NewSelect().
		Model(detail).
		Where("user_id = ?", userID).
		Where("quest_date = ?", day).
		For("UPDATE").
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.handleError("lock", "quest signals", userID, err)
	}
	return detail, nil
}

func (r *questRepository) InsertDetailIfAbsent(ctx context.Context, detail *models.QuestSignalDetail) (bool, error) {
	detail.UpdatedAt = time.Now()
	res, err := r.db.NewInsert().
		Model(detail).
		On("CONFLICT (user_id, quest_date) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, r.handleError("insert", "quest signals", detail.UserID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, r.handleError("insert", "quest signals", detail.UserID, err)
	}
	return affected > 0, nil
}

func (r *questRepository) UpdateDetail(ctx context.Context, detail *models.QuestSignalDetail) error {
	detail.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(detail).
		WherePK().
		Exec(ctx)
	return r.handleError("update", "quest signals", detail.ID, err)
}

func (r *questRepository) DeleteDetailsBefore(ctx context.Context, day string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.QuestSignalDetail)(nil)).
		Where("quest_date < ?", day).
		Exec(ctx)
	if err != nil {
		return 0, r.handleError("cleanup", "quest signals", day, err)
	}
	return res.RowsAffected()
}
