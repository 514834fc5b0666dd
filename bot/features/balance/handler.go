package balance

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"applebot/bot/common"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user ID")
		return
	}

	balance, err := f.economy.Balance(context.Background(), userID)
	if err != nil {
		common.RespondWithRejection(s, i, err, "Failed to look up your balance. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "💰 Balance",
		Description: fmt.Sprintf("%s, you have **%s** coins.", i.Member.User.Username, common.FormatBalance(balance)),
		Color:       common.ColorGold,
	}
	common.RespondWithEmbed(s, i, embed)
}
