package config

import "time"

// Application-wide constants organized by domain

// UI and Display Constants
const (
	LeaderboardPageSize = 10
	LeaderboardMaxUsers = 100
	ProgressBarLength   = 10

	// Colors
	ErrorColor    = 0xFF0000
	SuccessColor  = 0x00FF00
	InfoColor     = 0x00CED1
	WarningColor  = 0xFFAA00
	GoldColor     = 0xFFD700
	CrystalColor  = 0x00FFFF
	FadedColor    = 0x808080
	ProphecyColor = 0x9B59B6
)

// Database and Performance Constants
const (
	DefaultQueryTimeout     = 30 * time.Second
	DefaultTxTimeout        = 10 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	EventHandlerTimeout     = 10 * time.Second
	EffectTimeout           = 5 * time.Second
	SlowCommandThreshold    = 2 * time.Second

	// Cache settings
	CooldownCacheSize = 10000
)

// Welcome channels in lookup order
var WelcomeChannelNames = []string{"welcome", "general", "gatehouse", "entrance", "lobby"}
