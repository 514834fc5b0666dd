package common

import (
	"fmt"
	"strings"
)

// Embed accent colors
const (
	ColorGold   = 0xFFD700
	ColorGreen  = 0x57F287
	ColorRed    = 0xFF5733
	ColorYellow = 0xFFFF00
)

// FormatBalance formats a balance amount with thousand separators
func FormatBalance(balance int64) string {
	negative := balance < 0
	if negative {
		balance = -balance
	}

	str := fmt.Sprintf("%d", balance)
	n := len(str)
	if n > 3 {
		var result strings.Builder
		for i, digit := range str {
			if i > 0 && (n-i)%3 == 0 {
				result.WriteRune(',')
			}
			result.WriteRune(digit)
		}
		str = result.String()
	}

	if negative {
		return "-" + str
	}
	return str
}

// MentionUser renders a user mention from a Discord ID string
func MentionUser(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}
