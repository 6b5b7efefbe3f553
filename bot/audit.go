package bot

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func newAuditEmbed(title string, color Color) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:     title,
		Color:     int(color),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// publishAudit delivers an audit embed to the guild's configured log channel.
// Logging is opt-in per guild and strictly best effort: an unset channel, a
// stale channel reference or a failed send all return normally.
func (b *Bot) publishAudit(guildID string, embed *discordgo.MessageEmbed) {
	channelID, err := b.db.Get(guildID)
	if err != nil {
		return
	}

	chStr := strconv.FormatInt(channelID, 10)
	ch, err := b.disc.Channel(chStr)
	if err != nil || ch.GuildID != guildID {
		return
	}

	if err := b.disc.SendEmbed(ch.ID, embed); err != nil {
		b.log.Debug("failed to send log message", zap.String("guild", guildID), zap.Error(err))
	}
}

// auditMessageSent records a broadcast made through sendembed or sendraw.
// Content over the snippet limit is truncated; when a paste client is
// available the full text is uploaded and linked.
func (b *Bot) auditMessageSent(i *discordgo.Interaction, title string, color Color, ch *discordgo.Channel, content string) {
	user := i.Member.User

	embed := newAuditEmbed(title, color)
	AddEmbedField(embed, "User", fmt.Sprintf("%v (`%v`)", user.String(), user.ID), false)
	AddEmbedField(embed, "Channel", fmt.Sprintf("%v (`%v`)", ch.Mention(), ch.ID), false)
	AddEmbedField(embed, "Message Snippet", TruncateSnippet(content), false)

	if b.owo != nil && len([]rune(content)) >= snippetMax {
		if link, err := b.owo.Upload(content); err == nil && link != "" {
			AddEmbedField(embed, "Full Content", link, false)
		} else if err != nil {
			b.log.Debug("failed to upload full content", zap.Error(err))
		}
	}

	b.publishAudit(i.GuildID, embed)
}
