package gamble

import (
	"applebot/service"

	"github.com/bwmarrin/discordgo"
)

// Feature implements the /gamble command: a d100 roll against a tiered
// payout table
type Feature struct {
	economy service.EconomyService
}

func New(economy service.EconomyService) *Feature {
	return &Feature{economy: economy}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleGamble(s, i)
}
