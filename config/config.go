package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Ledger backend selectors
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Channel and role wiring
	VerificationChannelID string
	CommandsChannelID     string
	UpdatesChannelID      string
	AlertsChannelID       string
	MinorRoleID           string
	AdultRoleID           string
	ServerAdminID         string

	// Age verification
	MinimumAge int

	// Event reminders: offsets before the event start, in first-configured
	// order, e.g. 60m,30m,0m
	ReminderOffsets []time.Duration

	// Timezone governs wall-clock logic (steal odds, age computation)
	Timezone *time.Location

	// Ledger configuration
	LedgerBackend   string // "file" or "postgres"
	LedgerFile      string
	DatabaseURL     string
	StartingBalance int64

	// Environment
	Environment string // "development" or "production"
}

// Load reads configuration from environment variables. Missing or malformed
// required values are a fatal startup error.
func Load() (*Config, error) {
	config := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		VerificationChannelID: os.Getenv("VERIFICATION_CHANNEL_ID"),
		CommandsChannelID:     os.Getenv("COMMANDS_CHANNEL_ID"),
		UpdatesChannelID:      os.Getenv("UPDATES_CHANNEL_ID"),
		AlertsChannelID:       os.Getenv("ALERTS_CHANNEL_ID"),
		MinorRoleID:           os.Getenv("MINOR_ROLE_ID"),
		AdultRoleID:           os.Getenv("ADULT_ROLE_ID"),
		ServerAdminID:         os.Getenv("SERVER_ADMIN_ID"),

		LedgerBackend:   os.Getenv("LEDGER_BACKEND"),
		LedgerFile:      os.Getenv("LEDGER_FILE"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		StartingBalance: 1000,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Defaults
	if config.LedgerBackend == "" {
		config.LedgerBackend = BackendFile
	}
	if config.LedgerFile == "" {
		config.LedgerFile = "data/ledger.json"
	}
	if config.Environment == "" {
		config.Environment = "development"
	}

	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		parsed, err := strconv.ParseInt(balance, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid STARTING_BALANCE %q: %w", balance, err)
		}
		config.StartingBalance = parsed
	}

	minimumAge := os.Getenv("MINIMUM_AGE")
	if minimumAge == "" {
		return nil, fmt.Errorf("MINIMUM_AGE is required")
	}
	age, err := strconv.Atoi(minimumAge)
	if err != nil || age < 0 {
		return nil, fmt.Errorf("invalid MINIMUM_AGE %q", minimumAge)
	}
	config.MinimumAge = age

	tzName := os.Getenv("TIMEZONE")
	if tzName == "" {
		return nil, fmt.Errorf("TIMEZONE is required")
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}
	config.Timezone = loc

	offsets, err := parseReminderOffsets(os.Getenv("REMINDER_TIMES"))
	if err != nil {
		return nil, err
	}
	config.ReminderOffsets = offsets

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DiscordGuildID == "" {
			return nil, fmt.Errorf("DISCORD_GUILD_ID is required")
		}
		for name, value := range map[string]string{
			"VERIFICATION_CHANNEL_ID": config.VerificationChannelID,
			"COMMANDS_CHANNEL_ID":     config.CommandsChannelID,
			"UPDATES_CHANNEL_ID":      config.UpdatesChannelID,
			"ALERTS_CHANNEL_ID":       config.AlertsChannelID,
			"MINOR_ROLE_ID":           config.MinorRoleID,
			"ADULT_ROLE_ID":           config.AdultRoleID,
			"SERVER_ADMIN_ID":         config.ServerAdminID,
		} {
			if value == "" {
				return nil, fmt.Errorf("%s is required", name)
			}
		}
		if config.LedgerBackend == BackendPostgres && config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres ledger backend")
		}
	}

	if config.LedgerBackend != BackendFile && config.LedgerBackend != BackendPostgres {
		return nil, fmt.Errorf("invalid LEDGER_BACKEND %q (want %q or %q)", config.LedgerBackend, BackendFile, BackendPostgres)
	}

	return config, nil
}

// parseReminderOffsets parses a comma-separated list of non-negative minute
// offsets, e.g. "60,30,0"
func parseReminderOffsets(raw string) ([]time.Duration, error) {
	if raw == "" {
		return nil, fmt.Errorf("REMINDER_TIMES is required")
	}

	var offsets []time.Duration
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		minutes, err := strconv.Atoi(field)
		if err != nil || minutes < 0 {
			return nil, fmt.Errorf("invalid REMINDER_TIMES entry %q", field)
		}
		offsets = append(offsets, time.Duration(minutes)*time.Minute)
	}
	if len(offsets) == 0 {
		return nil, fmt.Errorf("REMINDER_TIMES must contain at least one offset")
	}
	return offsets, nil
}
