package common

import (
	"errors"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"applebot/service"
)

// RespondWithRejection shows a validation failure to the invoking user. A
// rejection carries its own user-facing message; anything else is logged and
// answered with the generic fallback.
func RespondWithRejection(s *discordgo.Session, i *discordgo.InteractionCreate, err error, fallback string) {
	var rejection *service.RejectionError
	if errors.As(err, &rejection) {
		RespondWithError(s, i, rejection.Message)
		return
	}

	log.Errorf("Error handling /%s: %v", i.ApplicationCommandData().Name, err)
	RespondWithError(s, i, fallback)
}
