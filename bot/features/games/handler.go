package games

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"applebot/bot/common"
)

func (f *Feature) handleCoinflip(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, ok := invokingUserID(s, i)
	if !ok {
		return
	}

	var bet int64
	var choice string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "bet":
			bet = opt.IntValue()
		case "choice":
			choice = opt.StringValue()
		}
	}

	result, err := f.economy.Coinflip(context.Background(), userID, bet, choice)
	if err != nil {
		common.RespondWithRejection(s, i, err, "Failed to flip the coin. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{Title: "🪙 Coinflip"}
	if result.Won {
		embed.Color = common.ColorGreen
		embed.Description = fmt.Sprintf("The coin landed on **%s**. You won **%s** coins!\nNew balance: **%s**",
			result.Landed, common.FormatBalance(bet), common.FormatBalance(result.NewBalance))
	} else {
		embed.Color = common.ColorRed
		embed.Description = fmt.Sprintf("The coin landed on **%s**. You lost **%s** coins.\nNew balance: **%s**",
			result.Landed, common.FormatBalance(bet), common.FormatBalance(result.NewBalance))
	}
	common.RespondWithEmbed(s, i, embed)
}

func (f *Feature) handleRoll(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, ok := invokingUserID(s, i)
	if !ok {
		return
	}

	var bet int64
	var guess int
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "bet":
			bet = opt.IntValue()
		case "guess":
			guess = int(opt.IntValue())
		}
	}

	result, err := f.economy.Roll(context.Background(), userID, bet, guess)
	if err != nil {
		common.RespondWithRejection(s, i, err, "Failed to roll the dice. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{Title: "🎲 Dice Roll"}
	if result.Won {
		embed.Color = common.ColorGreen
		embed.Description = fmt.Sprintf("The dice landed on **%d**. You guessed right and won **%s** coins!\nNew balance: **%s**",
			result.Rolled, common.FormatBalance(result.Payout), common.FormatBalance(result.NewBalance))
	} else {
		embed.Color = common.ColorRed
		embed.Description = fmt.Sprintf("The dice landed on **%d**, you guessed **%d**. You lost **%s** coins.\nNew balance: **%s**",
			result.Rolled, guess, common.FormatBalance(bet), common.FormatBalance(result.NewBalance))
	}
	common.RespondWithEmbed(s, i, embed)
}

func (f *Feature) handleLottery(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, ok := invokingUserID(s, i)
	if !ok {
		return
	}

	var bet int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "bet" {
			bet = opt.IntValue()
		}
	}

	result, err := f.economy.Lottery(context.Background(), userID, bet)
	if err != nil {
		common.RespondWithRejection(s, i, err, "Failed to enter the lottery. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{Title: "🎟️ Lottery"}
	if result.Won {
		embed.Color = common.ColorGreen
		embed.Description = fmt.Sprintf("🎉 JACKPOT! You won **%s** coins!\nNew balance: **%s**",
			common.FormatBalance(result.Jackpot), common.FormatBalance(result.NewBalance))
	} else {
		embed.Color = common.ColorRed
		embed.Description = fmt.Sprintf("No luck this time, you lost **%s** coins.\nNew balance: **%s**",
			common.FormatBalance(bet), common.FormatBalance(result.NewBalance))
	}
	common.RespondWithEmbed(s, i, embed)
}

func invokingUserID(s *discordgo.Session, i *discordgo.InteractionCreate) (int64, bool) {
	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user ID")
		return 0, false
	}
	return userID, true
}
