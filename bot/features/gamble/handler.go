package gamble

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"applebot/bot/common"
)

func (f *Feature) handleGamble(s *discordgo.Session, i *discordgo.InteractionCreate) {
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

	result, err := f.economy.Gamble(context.Background(), userID, amount)
	if err != nil {
		common.RespondWithRejection(s, i, err, "Failed to place your bet. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{Title: "🎲 Gamble"}
	if result.Won {
		embed.Color = common.ColorGreen
		embed.Description = fmt.Sprintf("You rolled **%d** and won **%s** coins (%gx payout)!\nNew balance: **%s**",
			result.Roll, common.FormatBalance(result.Payout), result.Multiplier, common.FormatBalance(result.NewBalance))
	} else {
		embed.Color = common.ColorRed
		embed.Description = fmt.Sprintf("You rolled **%d** and lost **%s** coins. Better luck next time!\nNew balance: **%s**",
			result.Roll, common.FormatBalance(amount), common.FormatBalance(result.NewBalance))
	}
	common.RespondWithEmbed(s, i, embed)
}
