package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		balance  int64
		expected string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{1500, "1,500"},
		{1234567, "1,234,567"},
		{-500, "-500"},
		{-1234567, "-1,234,567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatBalance(tt.balance), "balance %d", tt.balance)
	}
}

func TestMentionUser(t *testing.T) {
	assert.Equal(t, "<@123456789>", MentionUser("123456789"))
}
