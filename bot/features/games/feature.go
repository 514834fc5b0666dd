package games

import (
	"applebot/service"

	"github.com/bwmarrin/discordgo"
)

// Feature implements the simple wager games: /coinflip, /roll and /lottery
type Feature struct {
	economy service.EconomyService
}

func New(economy service.EconomyService) *Feature {
	return &Feature{economy: economy}
}

func (f *Feature) HandleCoinflip(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleCoinflip(s, i)
}

func (f *Feature) HandleRoll(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleRoll(s, i)
}

func (f *Feature) HandleLottery(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleLottery(s, i)
}
