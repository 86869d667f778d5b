package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := NewWithBun(bun.NewDB(sqldb, pgdialect.New()))
	t.Cleanup(db.Close)
	return db, mock
}

func TestMigrateSchema(t *testing.T) {
	db, mock := newMockDB(t)

	for _, column := range []string{"collectible_count", "rewards_given", "rewards_received", "last_blessed_at"} {
		mock.ExpectExec(`ALTER TABLE users ADD COLUMN IF NOT EXISTS ` + column).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, db.MigrateSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateSchema_StopsOnFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`ALTER TABLE users`).WillReturnError(errors.New("permission denied"))

	err := db.MigrateSchema(context.Background())
	assert.ErrorContains(t, err, "permission denied")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResetAppTables(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`TRUNCATE TABLE "quest_signal_details", "daily_quests", "users" RESTART IDENTITY CASCADE`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, db.ResetAppTables(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHealth(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT column_name FROM information_schema.columns`).
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("user_id").AddRow("points"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	info, err := db.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"user_id", "points"}, info.Columns)
	assert.Equal(t, 12, info.UserCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET points = points \+ 25 WHERE user_id = '1'`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.RunInTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, "UPDATE users SET points = points + 25 WHERE user_id = '1'")
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_RollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	errCooldown := errors.New("cooldown active")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET points = points \+ 25 WHERE user_id = '1'`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := db.RunInTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, "UPDATE users SET points = points + 25 WHERE user_id = '1'"); err != nil {
			return err
		}
		return errCooldown
	})
	assert.ErrorIs(t, err, errCooldown)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_RollsBackOnStatementError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users`).WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err := db.RunInTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, "UPDATE users SET points = points + 25 WHERE user_id = '1'")
		return err
	})
	assert.ErrorContains(t, err, "deadlock detected")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildConnString(t *testing.T) {
	assert.Equal(t,
		"postgres://bot:secret@db:5432/aetherius?connect_timeout=5",
		BuildConnString(DBConfig{User: "bot", Password: "secret", Host: "db", Port: 5432, Database: "aetherius"}))

	assert.Equal(t,
		"postgres://render/arcadia",
		BuildConnString(DBConfig{URL: "postgres://render/arcadia", Host: "ignored"}))
}

func TestBunDSN(t *testing.T) {
	t.Setenv("PG_SSLMODE", "")
	assert.Equal(t, "postgres://h/db?sslmode=disable", bunDSN("postgres://h/db"))
	assert.Equal(t, "postgres://h/db?connect_timeout=5&sslmode=disable", bunDSN("postgres://h/db?connect_timeout=5"))
	assert.Equal(t, "postgres://h/db?sslmode=require", bunDSN("postgres://h/db?sslmode=require"))

	t.Setenv("PG_SSLMODE", "verify-full")
	assert.Equal(t, "postgres://h/db?sslmode=verify-full", bunDSN("postgres://h/db"))
}
