package daily

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"applebot/bot/common"
)

func (f *Feature) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user ID")
		return
	}

	result, err := f.economy.Daily(context.Background(), userID)
	if err != nil {
		common.RespondWithRejection(s, i, err, "Failed to claim your daily reward. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🗓️ Daily Reward",
		Description: fmt.Sprintf("You claimed your daily **%s** coins!\nNew balance: **%s**",
			common.FormatBalance(result.Reward), common.FormatBalance(result.NewBalance)),
		Color: common.ColorGold,
	}
	common.RespondWithEmbed(s, i, embed)
}
