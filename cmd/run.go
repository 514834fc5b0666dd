package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"applebot/bot"
	"applebot/config"
	"applebot/database"
	"applebot/repository"
	"applebot/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting Apple Bot...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize the ledger store
	var store service.LedgerStore
	var db *database.DB
	switch cfg.LedgerBackend {
	case config.BackendPostgres:
		log.Println("Connecting to database...")
		db, err = database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Println("Database connection established successfully")
		store = repository.NewPostgresLedger(db, cfg.StartingBalance)
	default:
		log.Printf("Using file ledger at %s", cfg.LedgerFile)
		store, err = repository.NewFileLedger(cfg.LedgerFile, cfg.StartingBalance)
		if err != nil {
			return fmt.Errorf("failed to open ledger file: %w", err)
		}
	}

	// Initialize services
	log.Println("Initializing services...")
	economyService := service.NewEconomyService(store, cfg.Timezone)
	verificationService := service.NewVerificationService(cfg.MinimumAge, cfg.Timezone)
	log.Println("Services initialized successfully")

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.DiscordGuildID,

		VerificationChannelID: cfg.VerificationChannelID,
		CommandsChannelID:     cfg.CommandsChannelID,
		UpdatesChannelID:      cfg.UpdatesChannelID,
		AlertsChannelID:       cfg.AlertsChannelID,

		MinorRoleID:   cfg.MinorRoleID,
		AdultRoleID:   cfg.AdultRoleID,
		ServerAdminID: cfg.ServerAdminID,

		ReminderOffsets: cfg.ReminderOffsets,
	}
	discordBot, err := bot.New(botConfig, economyService, verificationService)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	// Close Discord bot connection
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if db != nil {
		log.Println("Closing database connection...")
		db.Close()
	}

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
