package setbalance

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"applebot/bot/common"
)

func (f *Feature) handleSet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user ID")
		return
	}

	var amount int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "amount" {
			amount = opt.IntValue()
		}
	}

	newBalance, err := f.economy.Grant(context.Background(), userID, amount)
	if err != nil {
		common.RespondWithRejection(s, i, err, "Failed to update your balance. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "💸 Balance Updated",
		Description: fmt.Sprintf("Added **%s** coins.\nNew balance: **%s**",
			common.FormatBalance(amount), common.FormatBalance(newBalance)),
		Color: common.ColorGold,
	}
	common.RespondWithEmbed(s, i, embed)
}
