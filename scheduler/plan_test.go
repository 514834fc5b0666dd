package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapRoleDirectory resolves role names from a fixed map
type mapRoleDirectory map[string]string

func (d mapRoleDirectory) RoleIDByName(name string) (string, error) {
	if id, ok := d[name]; ok {
		return id, nil
	}
	return "", assert.AnError
}

func TestNewPlan_ResolvesRoleMentions(t *testing.T) {
	directory := mapRoleDirectory{"Gamers": "111", "Movies": "222"}
	start := time.Date(2026, 8, 25, 20, 0, 0, 0, time.UTC)

	plan, err := NewPlan("event-1", "Game Night", "Calling all @Gamers and @Movies fans! @Gamers unite!",
		"https://example.com/events/1", "chan-1", "", start, directory)
	require.NoError(t, err)

	// Roles appear once each, in first-mention order
	assert.Equal(t, []string{"111", "222"}, plan.RoleIDs)
	assert.Equal(t, "Calling all <@&111> and <@&222> fans! <@&111> unite! https://example.com/events/1", plan.Announcement)
}

func TestNewPlan_NoMentions(t *testing.T) {
	start := time.Date(2026, 8, 25, 20, 0, 0, 0, time.UTC)

	plan, err := NewPlan("event-1", "Game Night", "Bring snacks",
		"https://example.com/events/1", "chan-1", "", start, mapRoleDirectory{})
	require.NoError(t, err)

	assert.Empty(t, plan.RoleIDs)
	assert.Equal(t, "Bring snacks https://example.com/events/1", plan.Announcement)
}

func TestNewPlan_UnresolvableRoleFails(t *testing.T) {
	start := time.Date(2026, 8, 25, 20, 0, 0, 0, time.UTC)

	_, err := NewPlan("event-1", "Game Night", "Hey @Ghosts!",
		"https://example.com/events/1", "chan-1", "", start, mapRoleDirectory{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ghosts")
}

func TestStripMentions(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"single mention", "Hey @Gamers!", "Hey Gamers!"},
		{"repeated mentions", "@Gamers and @Movies, @Gamers unite", "Gamers and Movies, Gamers unite"},
		{"no mentions", "Bring snacks", "Bring snacks"},
		{"bare at sign untouched", "doors open @ 7", "doors open @ 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripMentions(tt.text))
		})
	}
}

func TestPlan_ReminderMessage(t *testing.T) {
	directory := mapRoleDirectory{"Gamers": "111"}
	start := time.Date(2026, 8, 25, 20, 0, 0, 0, time.UTC)

	plan, err := NewPlan("event-1", "Game Night", "Hey @Gamers!",
		"https://example.com/events/1", "chan-1", "", start, directory)
	require.NoError(t, err)

	t.Run("minutes before start", func(t *testing.T) {
		message := plan.ReminderMessage(30 * time.Minute)
		assert.Equal(t, `<@&111> **"Game Night"** is starting in 30 minutes! `+
			`Please come join us in <#chan-1> if you would like to participate! https://example.com/events/1`, message)
	})

	t.Run("one minute", func(t *testing.T) {
		assert.Contains(t, plan.ReminderMessage(time.Minute), "is starting in 1 minute!")
	})

	t.Run("at start", func(t *testing.T) {
		assert.Contains(t, plan.ReminderMessage(0), "is starting **RIGHT NOW!**")
	})
}

func TestPlan_ReminderMessageExternalVenue(t *testing.T) {
	start := time.Date(2026, 8, 25, 20, 0, 0, 0, time.UTC)

	plan, err := NewPlan("event-1", "Picnic", "See you there",
		"https://example.com/events/1", "", "Central Park", start, mapRoleDirectory{})
	require.NoError(t, err)

	assert.Contains(t, plan.ReminderMessage(0), "join us in Central Park")
}
