package constants

import "time"

const (
	AppName            = "vibe"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/vibe/vibe.db"
	Version            = "v0.3.0"

	// DateFormat is the canonical date-key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard wall-clock time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "vibe-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "vibe-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.butterslam.vibe"

	// ReminderGraceMin is how many minutes past a habit's scheduled time a
	// reminder is still considered worth sending.
	ReminderGraceMin = 15

	// StreakLookbackDays bounds the backward walk when computing streaks.
	StreakLookbackDays = 365

	// MinCommitmentLevel and MaxCommitmentLevel bound the user-declared intensity.
	MinCommitmentLevel = 1
	MaxCommitmentLevel = 10

	// WatchPollInterval is how often polling-based stores check for remote changes.
	WatchPollInterval = 5 * time.Second
)

// Weekdays is the canonical weekday label set, Monday first. The English,
// case-sensitive labels are part of the persisted data contract.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// HabitColors is the fixed display palette habits index into.
var HabitColors = []string{
	"pink",
	"blue",
	"orange",
	"purple",
	"green",
	"red",
	"yellow",
	"indigo",
	"mint",
	"teal",
	"cyan",
	"brown",
}

const (
	DefaultTimeOfDay       = "09:00"
	DefaultCommitmentLevel = 5
)
