package balance

import (
	"applebot/service"

	"github.com/bwmarrin/discordgo"
)

// Feature implements the /balance command
type Feature struct {
	economy service.EconomyService
}

func New(economy service.EconomyService) *Feature {
	return &Feature{economy: economy}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleBalance(s, i)
}
