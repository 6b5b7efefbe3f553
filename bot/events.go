package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func (b *Bot) readyHandler(r *discordgo.Ready) {
	b.log.Info("logged in", zap.String("user", r.User.String()), zap.Int("guilds", len(r.Guilds)))

	if err := b.disc.RegisterCommands(slashCommands()); err != nil {
		b.log.Error("failed to register commands", zap.Error(err))
	}

	for _, g := range r.Guilds {
		if err := b.disc.SetNickname(g.ID, b.config.Nickname); err != nil {
			b.log.Error("failed to set nickname", zap.String("guild", g.ID), zap.Error(err))
		}
	}

	embed := newAuditEmbed("🤖 Bot Started", Green)
	embed.Description = fmt.Sprintf("%v is now online and ready to embed!", r.User.String())
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: "Uptime started at " + b.startTime.UTC().Format(timestampLayout),
	}
	for _, g := range r.Guilds {
		b.publishAudit(g.ID, embed)
	}

	if b.config.OwnerID != "" {
		msg := fmt.Sprintf("✅ **%v** started successfully! Serving %v servers.", r.User.String(), len(r.Guilds))
		if err := b.disc.SendDM(b.config.OwnerID, msg); err != nil {
			b.log.Debug("failed to notify owner", zap.Error(err))
		}
	}
}

// guildCreateHandler covers guilds the bot is added to after startup. A new
// guild cannot have a log channel configured yet, so there is nothing to
// announce; only the nickname is applied.
func (b *Bot) guildCreateHandler(g *discordgo.GuildCreate) {
	_ = b.disc.SetNickname(g.ID, b.config.Nickname)
}

// Shutdown announces to every guild that the bot is going offline, then
// releases the gateway connection. The announce must complete before the
// disconnect.
func (b *Bot) Shutdown() {
	b.log.Info("shutting down")

	embed := newAuditEmbed("🤖 Bot Shutting Down", Red)
	embed.Description = fmt.Sprintf("%v is going offline.", b.username())
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: "Shutdown at " + time.Now().UTC().Format(timestampLayout),
	}
	for _, g := range b.disc.Guilds() {
		b.publishAudit(g.ID, embed)
	}

	b.disc.Close()
}
