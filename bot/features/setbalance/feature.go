package setbalance

import (
	"applebot/service"

	"github.com/bwmarrin/discordgo"
)

// Feature implements the /set command, a free top-up kept around from the
// server's sandbox days
type Feature struct {
	economy service.EconomyService
}

func New(economy service.EconomyService) *Feature {
	return &Feature{economy: economy}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleSet(s, i)
}
