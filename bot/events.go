package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"applebot/scheduler"

	"github.com/bwmarrin/discordgo"
)

// channelAnnouncer delivers scheduler announcements to the updates channel
type channelAnnouncer struct {
	session   *discordgo.Session
	channelID string
}

func (a *channelAnnouncer) Send(ctx context.Context, content string) error {
	_, err := a.session.ChannelMessageSend(a.channelID, content)
	return err
}

// guildRoleDirectory resolves role names against the guild's role list
type guildRoleDirectory struct {
	session *discordgo.Session
	guildID string
}

func (d *guildRoleDirectory) RoleIDByName(name string) (string, error) {
	roles, err := d.session.GuildRoles(d.guildID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch roles for guild %s: %w", d.guildID, err)
	}
	for _, role := range roles {
		if role.Name == name {
			return role.ID, nil
		}
	}
	return "", fmt.Errorf("no role named %q in guild %s", name, d.guildID)
}

// handleScheduledEventCreate announces a newly created event in the updates
// channel and arms its reminder timers
func (b *Bot) handleScheduledEventCreate(s *discordgo.Session, e *discordgo.GuildScheduledEventCreate) {
	log.Infof("Event %q created, starting at %s", e.Name, e.ScheduledStartTime)

	plan, err := b.buildPlan(e.GuildScheduledEvent)
	if err != nil {
		// The announcement is still attempted with the mentions stripped;
		// reminders cannot be armed without resolved role mentions.
		log.Errorf("Cannot arm reminders for event %q: %v", e.Name, err)
		fallback := strings.TrimSpace(scheduler.StripMentions(e.Description) + " " + eventURL(e.GuildID, e.ID))
		if _, err := s.ChannelMessageSend(b.config.UpdatesChannelID, fallback); err != nil {
			log.Errorf("Failed to announce event %q: %v", e.Name, err)
		}
		return
	}

	if _, err := s.ChannelMessageSend(b.config.UpdatesChannelID, plan.Announcement); err != nil {
		log.Errorf("Failed to announce event %q: %v", e.Name, err)
	}

	go b.scheduler.Schedule(context.Background(), plan)
}

// recoverScheduledEvents re-arms reminders for every event the guild
// currently reports. Offsets already in the past are skipped, never backfired.
func (b *Bot) recoverScheduledEvents() {
	events, err := b.session.GuildScheduledEvents(b.config.GuildID, false)
	if err != nil {
		log.Errorf("Failed to fetch scheduled events for guild %s: %v", b.config.GuildID, err)
		return
	}

	for _, event := range events {
		plan, err := b.buildPlan(event)
		if err != nil {
			log.Errorf("Cannot arm reminders for event %q: %v", event.Name, err)
			continue
		}
		go b.scheduler.Schedule(context.Background(), plan)
	}

	log.Infof("Recovered reminder plans for %d scheduled event(s)", len(events))
}

func (b *Bot) buildPlan(event *discordgo.GuildScheduledEvent) (*scheduler.Plan, error) {
	directory := &guildRoleDirectory{session: b.session, guildID: event.GuildID}
	return scheduler.NewPlan(
		event.ID,
		event.Name,
		event.Description,
		eventURL(event.GuildID, event.ID),
		event.ChannelID,
		event.EntityMetadata.Location,
		event.ScheduledStartTime,
		directory,
	)
}

func eventURL(guildID, eventID string) string {
	return fmt.Sprintf("https://discord.com/events/%s/%s", guildID, eventID)
}
