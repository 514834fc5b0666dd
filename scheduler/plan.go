package scheduler

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// RoleDirectory resolves role names mentioned in event text to role IDs
type RoleDirectory interface {
	// RoleIDByName returns the ID of the role with the given name, or an
	// error when no such role exists
	RoleIDByName(name string) (string, error)
}

// mentionPattern matches "@Name" tokens in event free text
var mentionPattern = regexp.MustCompile(`@\w+`)

// Plan holds everything needed to announce one scheduled event: where it
// happens, when it starts, and which roles to ping. Plans live only in memory;
// after a restart they are rebuilt from the platform's event list.
type Plan struct {
	EventID   string
	Name      string
	URL       string
	StartTime time.Time

	// ChannelID is set when the event happens in a server channel; Location
	// is the free-text venue otherwise
	ChannelID string
	Location  string

	// RoleIDs are the resolved roles mentioned in the event description, in
	// first-mention order
	RoleIDs []string

	// Announcement is the event description with every "@Name" replaced by a
	// role mention, followed by the event URL
	Announcement string
}

// NewPlan builds a reminder plan from a scheduled event's fields. Every role
// name mentioned in the description must resolve through the directory; an
// unresolvable name fails construction rather than silently dropping the ping.
func NewPlan(eventID, name, description, url, channelID, location string, startTime time.Time, roles RoleDirectory) (*Plan, error) {
	plan := &Plan{
		EventID:   eventID,
		Name:      name,
		URL:       url,
		StartTime: startTime,
		ChannelID: channelID,
		Location:  location,
	}

	announcement := description
	seen := make(map[string]string)
	for _, token := range mentionPattern.FindAllString(description, -1) {
		roleName := strings.TrimPrefix(token, "@")
		roleID, ok := seen[roleName]
		if !ok {
			var err error
			roleID, err = roles.RoleIDByName(roleName)
			if err != nil {
				return nil, fmt.Errorf("cannot resolve role %q mentioned in event %q: %w", roleName, name, err)
			}
			seen[roleName] = roleID
			plan.RoleIDs = append(plan.RoleIDs, roleID)
		}
		announcement = strings.ReplaceAll(announcement, token, fmt.Sprintf("<@&%s>", roleID))
	}

	plan.Announcement = strings.TrimSpace(announcement + " " + url)
	return plan, nil
}

// StripMentions drops the "@" from mention tokens so event text with
// unresolved role names can still be posted without dead pings
func StripMentions(text string) string {
	return mentionPattern.ReplaceAllStringFunc(text, func(token string) string {
		return strings.TrimPrefix(token, "@")
	})
}

// venue renders where the event happens: a channel mention when the event is
// in a server channel, the free-text location otherwise
func (p *Plan) venue() string {
	if p.ChannelID != "" {
		return fmt.Sprintf("<#%s>", p.ChannelID)
	}
	return p.Location
}

// ReminderMessage renders the announcement sent offset before the start time
func (p *Plan) ReminderMessage(offset time.Duration) string {
	var b strings.Builder
	for _, roleID := range p.RoleIDs {
		fmt.Fprintf(&b, "<@&%s> ", roleID)
	}

	minutes := int(offset.Minutes())
	switch {
	case minutes == 1:
		fmt.Fprintf(&b, "**\"%s\"** is starting in 1 minute!", p.Name)
	case minutes > 0:
		fmt.Fprintf(&b, "**\"%s\"** is starting in %d minutes!", p.Name, minutes)
	default:
		fmt.Fprintf(&b, "**\"%s\"** is starting **RIGHT NOW!**", p.Name)
	}

	fmt.Fprintf(&b, " Please come join us in %s if you would like to participate! %s", p.venue(), p.URL)
	return b.String()
}
