package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// ParseHexColor parses a 6-digit hex color, with or without a leading '#'.
// Anything else falls back to the default color.
func ParseHexColor(s string) int {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return defaultColor
	}
	n, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return defaultColor
	}
	return int(n)
}

// TruncateSnippet shortens s to at most snippetMax characters, marking the
// cut with an ellipsis. Counts runes so multi-byte content is never split.
func TruncateSnippet(s string) string {
	r := []rune(s)
	if len(r) < snippetMax {
		return s
	}
	return string(r[:snippetMax-3]) + "..."
}

func AddEmbedField(e *discordgo.MessageEmbed, name, value string, inline bool) *discordgo.MessageEmbed {
	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: name, Value: value, Inline: inline})
	return e
}

// FormatUptime renders a duration as "1d 2h 3m 4s", omitting leading zero
// units. Seconds are always present.
func FormatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))
	return strings.Join(parts, " ")
}
