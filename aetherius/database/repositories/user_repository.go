package repositories

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/guardian-of-arcadia/aetherius/aetherius/database/models"
	"github.com/uptrace/bun"
)

//go:generate mockgen -source=user_repository.go -destination=mock/user_repository.go -package=mock

type UserRepository interface {
	// GetByUserID returns a NotFoundError when the member has no row yet.
	GetByUserID(ctx context.Context, userID string) (*models.User, error)
	// GetForUpdate locks the row for the current transaction. A missing row
	// yields (nil, nil).
	GetForUpdate(ctx context.Context, userID string) (*models.User, error)
	// LockForUpdate locks every existing row among userIDs in user_id order.
	LockForUpdate(ctx context.Context, userIDs ...string) ([]*models.User, error)
	// Insert creates the row unless one already exists and reports whether
	// this call created it.
	Insert(ctx context.Context, user *models.User) (bool, error)
	Update(ctx context.Context, user *models.User) error
	GetTopUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	Count(ctx context.Context) (int, error)
	// GetPosition returns the 1-based leaderboard position of a member.
	GetPosition(ctx context.Context, userID string) (int, error)
	WithTx(db bun.IDB) UserRepository
}

type userRepository struct {
	baseRepository
	db bun.IDB
}

func NewUserRepository(db bun.IDB) UserRepository {
	return &userRepository{baseRepository: newBaseRepository(), db: db}
}

func (r *userRepository) WithTx(db bun.IDB) UserRepository {
	return &userRepository{baseRepository: r.baseRepository, db: db}
}

func (r *userRepository) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, r.handleError("get", "user", userID, err)
	}
	return user, nil
}

func (r *userRepository) GetForUpdate(ctx context.Context, userID string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("user_id = ?", userID).
		For("UPDATE").
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.handleError("lock", "user", userID, err)
	}
	return user, nil
}

func (r *userRepository) LockForUpdate(ctx context.Context, userIDs ...string) ([]*models.User, error) {
	var users []*models.User
	err := r.db.NewSelect().
		Model(&users).
		Where("user_id IN (?)", bun.In(userIDs)).
		OrderExpr("user_id ASC").
		For("UPDATE").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, r.handleError("lock", "users", userIDs, err)
	}
	return users, nil
}

func (r *userRepository) Insert(ctx context.Context, user *models.User) (bool, error) {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	res, err := r.db.NewInsert().
		Model(user).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, r.handleError("insert", "user", user.UserID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, r.handleError("insert", "user", user.UserID, err)
	}
	if affected > 0 {
		slog.Debug("User row created",
			slog.String("type", "db"),
			slog.String("user_id", user.UserID))
	}
	return affected > 0, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)
	return r.handleError("update", "user", user.UserID, err)
}

func (r *userRepository) GetTopUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var users []*models.User
	err := r.db.NewSelect().
		Model(&users).
		Order("points DESC", "user_id ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, r.handleError("list", "users", "top", err)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	count, err := r.db.NewSelect().Model((*models.User)(nil)).Count(ctx)
	if err != nil {
		return 0, r.handleError("count", "users", "all", err)
	}
	return count, nil
}

func (r *userRepository) GetPosition(ctx context.Context, userID string) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	user, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	ahead, err := r.db.NewSelect().
		Model((*models.User)(nil)).
		Where("points > ?", user.Points).
		WhereOr("points = ? AND user_id < ?", user.Points, user.UserID).
		Count(ctx)
	if err != nil {
		return 0, r.handleError("position", "user", userID, err)
	}
	return ahead + 1, nil
}
