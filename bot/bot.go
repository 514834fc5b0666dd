package bot

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"applebot/bot/features/balance"
	"applebot/bot/features/daily"
	"applebot/bot/features/gamble"
	"applebot/bot/features/games"
	"applebot/bot/features/setbalance"
	"applebot/bot/features/steal"
	"applebot/scheduler"
	"applebot/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string

	VerificationChannelID string
	CommandsChannelID     string
	UpdatesChannelID      string
	AlertsChannelID       string

	MinorRoleID   string
	AdultRoleID   string
	ServerAdminID string

	ReminderOffsets []time.Duration
}

type Bot struct {
	config       Config
	session      *discordgo.Session
	verification *service.VerificationService
	scheduler    *scheduler.Scheduler

	balanceFeature    *balance.Feature
	gambleFeature     *gamble.Feature
	gamesFeature      *games.Feature
	stealFeature      *steal.Feature
	dailyFeature      *daily.Feature
	setBalanceFeature *setbalance.Feature
}

func New(config Config, economy service.EconomyService, verification *service.VerificationService) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	bot := &Bot{
		config:       config,
		session:      dg,
		verification: verification,
		scheduler: scheduler.New(config.ReminderOffsets, &channelAnnouncer{
			session:   dg,
			channelID: config.UpdatesChannelID,
		}),

		balanceFeature:    balance.New(economy),
		gambleFeature:     gamble.New(economy),
		gamesFeature:      games.New(economy),
		stealFeature:      steal.New(economy),
		dailyFeature:      daily.New(economy),
		setBalanceFeature: setbalance.New(economy),
	}

	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleMessage)
	dg.AddHandler(bot.handleScheduledEventCreate)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// handleReady fires once the gateway connection is up. Reminder plans are not
// persisted, so every event the guild currently reports gets its still-future
// reminders re-armed here.
func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Infof("Apple Bot is ready as %s", r.User.Username)
	b.recoverScheduledEvents()
}

func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check your current balance",
		},
		{
			Name:        "gamble",
			Description: "Gamble your coins! Use /gamble <amount>",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of coins to gamble",
					Required:    true,
				},
			},
		},
		{
			Name:        "coinflip",
			Description: "Flip a coin! Bet on heads or tails",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "bet",
					Description: "The amount of coins to bet",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "choice",
					Description: "Your guess: heads or tails",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Heads", Value: "heads"},
						{Name: "Tails", Value: "tails"},
					},
				},
			},
		},
		{
			Name:        "roll",
			Description: "Roll a dice! Bet on the outcome of a d6 roll",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "bet",
					Description: "The amount of coins to bet",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "guess",
					Description: "Your guess: a number between 1 and 6",
					Required:    true,
				},
			},
		},
		{
			Name:        "lottery",
			Description: "Enter a lottery with a chance to win big!",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "bet",
					Description: "The amount of coins to bet",
					Required:    true,
				},
			},
		},
		{
			Name:        "steal",
			Description: "Attempt to steal coins from another user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "target",
					Description: "User to steal from",
					Required:    true,
				},
			},
		},
		{
			Name:        "daily",
			Description: "Get some daily money, just remember money doesn't grow on trees",
		},
		{
			Name:        "set",
			Description: "Add coins to your balance",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of coins to add",
					Required:    true,
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "balance":
		b.balanceFeature.HandleCommand(s, i)
	case "gamble":
		b.gambleFeature.HandleCommand(s, i)
	case "coinflip":
		b.gamesFeature.HandleCoinflip(s, i)
	case "roll":
		b.gamesFeature.HandleRoll(s, i)
	case "lottery":
		b.gamesFeature.HandleLottery(s, i)
	case "steal":
		b.stealFeature.HandleCommand(s, i)
	case "daily":
		b.dailyFeature.HandleCommand(s, i)
	case "set":
		b.setBalanceFeature.HandleCommand(s, i)
	}
}
