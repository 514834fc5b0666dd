package steal

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"applebot/bot/common"
)

func (f *Feature) handleSteal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user ID")
		return
	}

	var target *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "target" {
			target = opt.UserValue(s)
		}
	}
	if target == nil {
		common.RespondWithError(s, i, "You must pick someone to steal from!")
		return
	}

	targetID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Invalid target user ID")
		return
	}

	result, err := f.economy.Steal(context.Background(), userID, targetID)
	if err != nil {
		common.RespondWithRejection(s, i, err, "The heist fell apart. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{Title: "🕵️ Steal"}
	if result.Success {
		embed.Color = common.ColorGreen
		embed.Description = fmt.Sprintf("You snuck past %s and made off with **%s** coins!\nNew balance: **%s**",
			common.MentionUser(target.ID), common.FormatBalance(result.Amount), common.FormatBalance(result.NewBalance))
	} else {
		embed.Color = common.ColorRed
		embed.Description = fmt.Sprintf("%s You were caught and fined **%s** coins.\nNew balance: **%s**",
			result.CaughtMessage, common.FormatBalance(result.Fine), common.FormatBalance(result.NewBalance))
	}
	common.RespondWithEmbed(s, i, embed)
}
