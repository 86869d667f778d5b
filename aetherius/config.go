package aetherius

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// LoadConfig reads the TOML file at path, applies .env and environment
// overrides and validates the result. A missing file is not an error when
// the environment carries the token and database URL.
func LoadConfig(path string) (*Config, error) {
	cfg, err := decodeConfig(path)
	if err != nil {
		return nil, err
	}
	if err = validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadDBConfig is LoadConfig for tools that only touch the database and
// have no bot token.
func LoadDBConfig(path string) (*DBConfig, error) {
	cfg, err := decodeConfig(path)
	if err != nil {
		return nil, err
	}
	if err = validator.New().Struct(cfg.DB); err != nil {
		return nil, fmt.Errorf("invalid db config: %w", err)
	}
	return &cfg.DB, nil
}

func decodeConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", slog.Any("error", err))
	}

	cfg := DefaultConfig()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err = toml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		slog.Warn("Config file not found, using defaults and environment",
			slog.String("type", "sys"),
			slog.String("path", path))
	default:
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: slog.LevelInfo,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Database: "aetherius",
			PoolSize: 10,
		},
		Progression: ProgressionConfig{
			XPPerMessage:           15,
			MessageCooldownSeconds: 60,
			LevelMultiplier:        100,
		},
		Crystal: CrystalConfig{
			Threshold:       50,
			LifetimeSeconds: 30,
			Reward:          100,
		},
		Blessing: BlessingConfig{
			Reward:          25,
			CooldownSeconds: 300,
		},
		Keywords: KeywordConfig{
			CooldownSeconds: 30,
		},
		Quests: QuestConfig{
			Timezone:       "UTC",
			NightStartHour: 22,
			NightEndHour:   5,
		},
		Health: HealthConfig{
			Enabled: true,
			Port:    10000,
		},
	}
}

func (c *Config) applyEnv() {
	if token := os.Getenv("DISCORD_BOT_TOKEN"); token != "" {
		c.Bot.Token = token
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.DB.URL = url
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Health.Port = p
		}
	}
}

type Config struct {
	Log         LogConfig         `toml:"log"`
	Bot         BotConfig         `toml:"bot"`
	DB          DBConfig          `toml:"db"`
	Progression ProgressionConfig `toml:"progression"`
	Crystal     CrystalConfig     `toml:"crystal"`
	Blessing    BlessingConfig    `toml:"blessing"`
	Keywords    KeywordConfig     `toml:"keywords"`
	Quests      QuestConfig       `toml:"quests"`
	Health      HealthConfig      `toml:"health"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token" validate:"required"`
	// Sync pushes the slash commands on start, like --sync-commands.
	Sync bool `toml:"sync"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port" validate:"gte=0,lte=65535"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size" validate:"gte=0"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
	// URL takes precedence over the discrete fields when set.
	URL string `toml:"url"`
}

type ProgressionConfig struct {
	XPPerMessage           int64 `toml:"xp_per_message" validate:"gt=0"`
	MessageCooldownSeconds int   `toml:"message_cooldown" validate:"gte=0"`
	LevelMultiplier        int64 `toml:"level_multiplier" validate:"gt=0"`
}

func (c ProgressionConfig) MessageCooldown() time.Duration {
	return time.Duration(c.MessageCooldownSeconds) * time.Second
}

type CrystalConfig struct {
	Threshold       int   `toml:"threshold" validate:"gt=0"`
	LifetimeSeconds int   `toml:"lifetime" validate:"gt=0"`
	Reward          int64 `toml:"reward" validate:"gte=0"`
}

func (c CrystalConfig) Lifetime() time.Duration {
	return time.Duration(c.LifetimeSeconds) * time.Second
}

type BlessingConfig struct {
	Reward          int64 `toml:"reward" validate:"gte=0"`
	CooldownSeconds int   `toml:"cooldown" validate:"gte=0"`
}

func (c BlessingConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

type KeywordConfig struct {
	CooldownSeconds int `toml:"cooldown" validate:"gte=0"`
}

func (c KeywordConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

type QuestConfig struct {
	Timezone       string         `toml:"timezone"`
	NightStartHour int            `toml:"night_start_hour" validate:"gte=0,lte=23"`
	NightEndHour   int            `toml:"night_end_hour" validate:"gte=0,lte=23"`
	HelpChannels   []snowflake.ID `toml:"help_channels"`
}

// Location resolves the quest timezone, falling back to UTC.
func (c QuestConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("Unknown quest timezone, falling back to UTC",
			slog.String("timezone", c.Timezone),
			slog.Any("error", err))
		return time.UTC
	}
	return loc
}

type HealthConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port" validate:"gte=0,lte=65535"`
}
