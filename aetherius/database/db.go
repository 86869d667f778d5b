package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/models"
	"github.com/guardian-of-arcadia/aetherius/aetherius/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

type DBConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	PoolSize     int
	MaxIdleConns int
	MaxLifetime  int
	URL          string
}

// Transactor runs fn inside a single database transaction. Everything fn
// writes through tx is committed together or rolled back together.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error
}

type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

var _ Transactor = (*DB)(nil)

func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	connString := BuildConnString(cfg)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	addr := net.JoinHostPort(poolConfig.ConnConfig.Host, fmt.Sprintf("%d", poolConfig.ConnConfig.Port))
	var conn net.Conn
	for i := 0; i < defaultMaxRetries; i++ {
		conn, err = net.DialTimeout("tcp", addr, defaultConnTimeout)
		if err == nil {
			break
		}
		slog.Warn("Database not reachable yet",
			slog.String("type", "db"),
			slog.String("addr", addr),
			slog.Int("attempt", i+1),
			slog.Any("error", err))
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", defaultMaxRetries, err)
	}
	conn.Close()

	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(bunDSN(connString))))
	if cfg.PoolSize > 0 {
		sqldb.SetMaxOpenConns(cfg.PoolSize)
	}

	return &DB{pool: pool, bunDB: bun.NewDB(sqldb, pgdialect.New())}, nil
}

// NewWithBun wraps an existing bun.DB, used by tools and tests that do not
// need the pgx pool.
func NewWithBun(bunDB *bun.DB) *DB {
	return &DB{bunDB: bunDB}
}

// BuildConnString prefers the URL and falls back to the discrete fields.
func BuildConnString(cfg DBConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

// bunDSN adds an sslmode when the DSN has none. PG_SSLMODE overrides the
// default of disable.
func bunDSN(connString string) string {
	if strings.Contains(connString, "sslmode=") {
		return connString
	}
	sslMode := os.Getenv("PG_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}
	sep := "?"
	if strings.Contains(connString, "?") {
		sep = "&"
	}
	return connString + sep + "sslmode=" + sslMode
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

// RunInTx executes fn in a read-committed transaction bounded by the default
// transaction timeout. Row locks taken with FOR UPDATE serialize competing
// writers on the same user.
func (db *DB) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	txCtx, cancel := context.WithTimeout(ctx, config.DefaultTxTimeout)
	defer cancel()

	start := time.Now()
	err := db.bunDB.RunInTx(txCtx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
	if err != nil {
		slog.Debug("Transaction rolled back",
			slog.String("type", "db"),
			slog.Duration("took", time.Since(start)),
			slog.Any("error", err))
		return err
	}
	return nil
}

func (db *DB) Ping(ctx context.Context) error {
	if db.pool != nil {
		return db.pool.Ping(ctx)
	}
	return db.bunDB.PingContext(ctx)
}

// exec runs a DDL or maintenance statement, through the pgx pool when there
// is one.
func (db *DB) exec(ctx context.Context, stmt string) error {
	start := time.Now()
	var err error
	if db.pool != nil {
		_, err = db.pool.Exec(ctx, stmt)
	} else {
		_, err = db.bunDB.ExecContext(ctx, stmt)
	}
	logger.LogQuery(stmt, time.Since(start), err)
	return err
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}

// InitializeSchema creates all required database tables and indexes
func (db *DB) InitializeSchema(ctx context.Context) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.DailyQuest)(nil),
		(*models.QuestSignalDetail)(nil),
	}

	for _, model := range tables {
		_, err := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	if err := db.MigrateSchema(ctx); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_points ON users(points DESC);",
		"CREATE INDEX IF NOT EXISTS idx_daily_quests_user_date ON daily_quests(user_id, assigned_date);",
		"CREATE INDEX IF NOT EXISTS idx_daily_quests_unclaimed ON daily_quests(user_id) WHERE completed AND NOT claimed;",
		"CREATE INDEX IF NOT EXISTS idx_quest_signal_details_date ON quest_signal_details(quest_date);",
	}
	for _, idx := range indexes {
		if err := db.exec(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// MigrateSchema brings tables created by earlier releases up to date.
func (db *DB) MigrateSchema(ctx context.Context) error {
	userColumns := []string{
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS collectible_count BIGINT NOT NULL DEFAULT 0;`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS rewards_given BIGINT NOT NULL DEFAULT 0;`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS rewards_received BIGINT NOT NULL DEFAULT 0;`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS last_blessed_at TIMESTAMPTZ;`,
	}

	for _, stmt := range userColumns {
		if err := db.exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to add users column: %w", err)
		}
	}
	return nil
}

// ResetAppTables truncates application tables for a fresh start
func (db *DB) ResetAppTables(ctx context.Context) error {
	stmt := `TRUNCATE TABLE "quest_signal_details", "daily_quests", "users" RESTART IDENTITY CASCADE;`
	if err := db.exec(ctx, stmt); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	logger.LogSystem("App tables truncated")
	return nil
}

// HealthInfo summarizes the users table for operators.
type HealthInfo struct {
	UserCount int
	Columns   []string
	Latency   time.Duration
}

func (db *DB) Health(ctx context.Context) (*HealthInfo, error) {
	start := time.Now()
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping failed: %w", err)
	}
	info := &HealthInfo{Latency: time.Since(start)}

	err := db.bunDB.NewRaw(
		`SELECT column_name FROM information_schema.columns WHERE table_name = 'users' ORDER BY ordinal_position`,
	).Scan(ctx, &info.Columns)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}

	info.UserCount, err = db.bunDB.NewSelect().Model((*models.User)(nil)).Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	return info, nil
}
