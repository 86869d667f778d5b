package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func newMockDB(t *testing.T) (*bun.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestUserRepository_GetByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"user_id", "username", "points", "rank", "activity_count"}).
			AddRow("123", "aria", int64(450), 3, int64(30))
		mock.ExpectQuery(`SELECT .* FROM "users" AS "u" WHERE \(user_id = '123'\)`).
			WillReturnRows(rows)

		user, err := repo.GetByUserID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, "aria", user.Username)
		assert.Equal(t, int64(450), user.Points)
		assert.Equal(t, 3, user.Rank)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM "users" AS "u" WHERE \(user_id = '404'\)`).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

		user, err := repo.GetByUserID(ctx, "404")
		assert.Nil(t, user)
		assert.True(t, IsNotFound(err))
	})

	t.Run("DriverError", func(t *testing.T) {
		boom := errors.New("connection reset")
		mock.ExpectQuery(`SELECT .* FROM "users"`).WillReturnError(boom)

		_, err := repo.GetByUserID(ctx, "500")
		var repoErr *RepositoryError
		require.ErrorAs(t, err, &repoErr)
		assert.Equal(t, "get", repoErr.Operation)
		assert.ErrorIs(t, err, boom)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT .* FROM "users" AS "u" WHERE \(user_id = '77'\) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	user, err := repo.GetForUpdate(ctx, "77")
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_LockForUpdateOrdersRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"user_id", "points"}).
		AddRow("1", int64(10)).
		AddRow("2", int64(20))
	mock.ExpectQuery(`WHERE \(user_id IN \('2', '1'\)\) ORDER BY user_id ASC FOR UPDATE`).
		WillReturnRows(rows)

	users, err := repo.LockForUpdate(context.Background(), "2", "1")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "1", users[0].UserID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Count(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" AS "u"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, count)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetTopUsers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"user_id", "points"}).
		AddRow("9", int64(900)).
		AddRow("3", int64(300))
	mock.ExpectQuery(`ORDER BY "points" DESC, "user_id" ASC LIMIT 10 OFFSET 20`).
		WillReturnRows(rows)

	users, err := repo.GetTopUsers(context.Background(), 10, 20)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(900), users[0].Points)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestRepository_GetForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuestRepository(db)
	ctx := context.Background()

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery(`FROM "daily_quests" AS "dq" WHERE \(user_id = '5'\) AND \(assigned_date = '2026-10-19'\) FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		quest, err := repo.GetForUpdate(ctx, "5", "2026-10-19")
		require.NoError(t, err)
		assert.Nil(t, quest)
	})

	t.Run("Present", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_id", "assigned_date", "kind", "progress", "target", "completed"}).
			AddRow(int64(1), "5", "2026-10-19", "reaction_master", int64(4), int64(15), false)
		mock.ExpectQuery(`FROM "daily_quests" AS "dq" .* FOR UPDATE`).WillReturnRows(rows)

		quest, err := repo.GetForUpdate(ctx, "5", "2026-10-19")
		require.NoError(t, err)
		require.NotNil(t, quest)
		assert.Equal(t, "reaction_master", quest.Kind)
		assert.Equal(t, int64(4), quest.Progress)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestRepository_DeleteDetailsBefore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuestRepository(db)

	mock.ExpectExec(`DELETE FROM "quest_signal_details" AS "qsd" WHERE \(quest_date < '2026-10-18'\)`).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := repo.DeleteDetailsBefore(context.Background(), "2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleError(t *testing.T) {
	br := newBaseRepository()

	assert.NoError(t, br.handleError("get", "user", "1", nil))

	err := br.handleError("get", "user", "1", sql.ErrNoRows)
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "1", nfe.ID)
	assert.Equal(t, "user with ID 1 not found", err.Error())
}
