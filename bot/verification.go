package bot

import (
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"applebot/bot/common"
	"applebot/service"

	"github.com/bwmarrin/discordgo"
)

// handleMessage watches the verification channel for birthdate submissions,
// assigns the matching age role, and forwards the moderator command needed to
// register the birthday
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	if m.ChannelID != b.config.VerificationChannelID || m.Member == nil {
		return
	}

	input := strings.TrimSpace(m.Content)
	result, err := b.verification.Verify(input)
	if err != nil {
		log.Warnf("Could not parse date from %s: %v", m.Author.Username, err)
		b.rejectBirthdate(s, m, invalidBirthdateEmbed(input))
		return
	}

	log.Infof("User %s entered the date %s, age %d", m.Author.Username, input, result.Age)

	switch result.Verdict {
	case service.VerdictFutureDate:
		b.rejectBirthdate(s, m, futureBirthdateEmbed(input))

	case service.VerdictUnderMinimum:
		log.Infof("User %s is %d years old, too young to be in this server", m.Author.Username, result.Age)
		b.rejectBirthdate(s, m, &discordgo.MessageEmbed{
			Title: "ALERT",
			Description: fmt.Sprintf("Oops! It seems like you may be too young to be a member of this "+
				"server. The minimum age to be in this server is %d. A server moderator may contact "+
				"you shortly to resolve this issue.", b.verification.MinimumAge()),
			Color: common.ColorYellow,
		})
		b.alertAdmin(s, m, result)

	default:
		if err := b.assignAgeRole(s, m, result.IsAdult()); err != nil {
			log.Errorf("Failed to assign age role to %s: %v", m.Author.Username, err)
			return
		}
		b.forwardModeratorCommand(s, m, result)
	}
}

// invalidBirthdateEmbed explains a submission that could not be parsed at all
func invalidBirthdateEmbed(input string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "ERROR",
		Description: "Oops! That doesn't look like a valid birthdate. " +
			"Please enter your birthdate as MM/DD/YYYY.",
		Color: common.ColorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Birthdate Entered", Value: input},
		},
	}
}

// futureBirthdateEmbed explains a submission that parsed to a date in the future
func futureBirthdateEmbed(input string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "ERROR",
		Description: "Oops! You entered a birthdate that was in the future. " +
			"Please enter in a valid birthdate.",
		Color: common.ColorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Birthdate Entered", Value: input},
		},
	}
}

// rejectBirthdate pings the author in the verification channel and explains
// why the submission was rejected
func (b *Bot) rejectBirthdate(s *discordgo.Session, m *discordgo.MessageCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.ChannelMessageSend(b.config.VerificationChannelID, common.MentionUser(m.Author.ID)); err != nil {
		log.Errorf("Failed to ping user %s: %v", m.Author.Username, err)
	}
	if _, err := s.ChannelMessageSendEmbed(b.config.VerificationChannelID, embed); err != nil {
		log.Errorf("Failed to send rejection embed for %s: %v", m.Author.Username, err)
	}
}

// alertAdmin notifies the server admin about an under-age submission
func (b *Bot) alertAdmin(s *discordgo.Session, m *discordgo.MessageCreate, result *service.VerificationResult) {
	embed := &discordgo.MessageEmbed{
		Title: "ALERT",
		Description: fmt.Sprintf("User %s has entered in the verification channel that they are %d "+
			"years old, below the current minimum age of %d.",
			m.Author.Username, result.Age, b.verification.MinimumAge()),
		Color:     common.ColorYellow,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: m.Author.AvatarURL("128")},
	}

	if _, err := s.ChannelMessageSend(b.config.AlertsChannelID, common.MentionUser(b.config.ServerAdminID)); err != nil {
		log.Errorf("Failed to ping server admin: %v", err)
	}
	if _, err := s.ChannelMessageSendEmbed(b.config.AlertsChannelID, embed); err != nil {
		log.Errorf("Failed to send admin alert: %v", err)
	}
}

// assignAgeRole adds the matching age role, removing the opposite role first
// if a previous verification assigned the wrong one
func (b *Bot) assignAgeRole(s *discordgo.Session, m *discordgo.MessageCreate, isAdult bool) error {
	roleToAdd, roleToRemove := b.config.AdultRoleID, b.config.MinorRoleID
	if !isAdult {
		roleToAdd, roleToRemove = b.config.MinorRoleID, b.config.AdultRoleID
	}

	if slices.Contains(m.Member.Roles, roleToRemove) {
		log.Infof("User %s was previously assigned the wrong age role, removing it", m.Author.Username)
		if err := s.GuildMemberRoleRemove(m.GuildID, m.Author.ID, roleToRemove); err != nil {
			return fmt.Errorf("failed to remove role %s: %w", roleToRemove, err)
		}
	}

	if err := s.GuildMemberRoleAdd(m.GuildID, m.Author.ID, roleToAdd); err != nil {
		return fmt.Errorf("failed to add role %s: %w", roleToAdd, err)
	}

	if isAdult {
		log.Infof("User %s is an adult, assigned them the adult role", m.Author.Username)
	} else {
		log.Infof("User %s is a minor, assigned them the minor role", m.Author.Username)
	}
	return nil
}

// forwardModeratorCommand posts the verified member's details and the birthday
// bot command a moderator needs to run, in the private commands channel
func (b *Bot) forwardModeratorCommand(s *discordgo.Session, m *discordgo.MessageCreate, result *service.VerificationResult) {
	roleName := "Adult"
	if !result.IsAdult() {
		roleName = "Minor"
	}

	commandToRun := fmt.Sprintf("/override set-birthday target:@%s date:%s",
		m.Author.Username, result.Birthdate.Format("02 January"))

	embed := &discordgo.MessageEmbed{
		Title:       "User",
		Description: m.Author.Username,
		Color:       common.ColorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Birthdate", Value: strings.TrimSpace(m.Content)},
			{Name: "Age", Value: fmt.Sprintf("%d", result.Age)},
			{Name: "Role", Value: fmt.Sprintf("%s has been given the role: %s!", m.Author.Username, roleName)},
			{Name: "Command To Run", Value: commandToRun},
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: m.Author.AvatarURL("128")},
	}

	if _, err := s.ChannelMessageSend(b.config.CommandsChannelID, common.MentionUser(b.config.ServerAdminID)); err != nil {
		log.Errorf("Failed to ping server admin: %v", err)
	}
	if _, err := s.ChannelMessageSendEmbed(b.config.CommandsChannelID, embed); err != nil {
		log.Errorf("Failed to forward moderator command for %s: %v", m.Author.Username, err)
	}
}
