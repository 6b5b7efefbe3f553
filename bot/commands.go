package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/intrntsrfr/embedmaster/database"
)

const deniedMessage = "❌ You lack permission to use this command."

func slashCommands() []*discordgo.ApplicationCommand {
	channelOpt := func(desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "channel",
			Description:  desc,
			Required:     true,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		}
	}
	stringOpt := func(name, desc string, required bool) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        name,
			Description: desc,
			Required:    required,
		}
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "sendembed",
			Description: "Send a custom embed to a channel",
			Options: []*discordgo.ApplicationCommandOption{
				channelOpt("Target channel"),
				stringOpt("title", "Embed title", true),
				stringOpt("message", "Embed content/message", true),
				stringOpt("hex_color", "Hex color code like #FF0000 (optional)", false),
			},
		},
		{
			Name:        "embedpreview",
			Description: "Preview an embed privately",
			Options: []*discordgo.ApplicationCommandOption{
				stringOpt("title", "Embed title", true),
				stringOpt("message", "Embed content/message", true),
				stringOpt("hex_color", "Hex color code like #FF0000 (optional)", false),
			},
		},
		{
			Name:        "sendraw",
			Description: "Send a plain message to a channel",
			Options: []*discordgo.ApplicationCommandOption{
				channelOpt("Target channel"),
				stringOpt("message", "Message content", true),
			},
		},
		{
			Name:        "setnickname",
			Description: "Change bot nickname in this server",
			Options: []*discordgo.ApplicationCommandOption{
				stringOpt("nickname", "New nickname for the bot", true),
			},
		},
		{
			Name:        "setlogchannel",
			Description: "Set channel for bot logs",
			Options: []*discordgo.ApplicationCommandOption{
				channelOpt("Channel to receive logs"),
			},
		},
		{
			Name:        "viewlogchannel",
			Description: "Show current log channel",
		},
		{
			Name:        "clearlogchannel",
			Description: "Clear the log channel setting",
		},
		{
			Name:        "ping",
			Description: "Check bot latency",
		},
		{
			Name:        "botinfo",
			Description: "Show bot info and uptime",
		},
		{
			Name:        "help",
			Description: "Detailed usage guide",
		},
	}
}

func (b *Bot) interactionHandler(i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.log.Error("command panicked", zap.Any("recovered", r))
		}
	}()

	data := i.ApplicationCommandData()
	switch data.Name {
	case "sendembed":
		b.sendEmbedCommand(i)
	case "embedpreview":
		b.embedPreviewCommand(i)
	case "sendraw":
		b.sendRawCommand(i)
	case "setnickname":
		b.setNicknameCommand(i)
	case "setlogchannel":
		b.setLogChannelCommand(i)
	case "viewlogchannel":
		b.viewLogChannelCommand(i)
	case "clearlogchannel":
		b.clearLogChannelCommand(i)
	case "ping":
		b.pingCommand(i)
	case "botinfo":
		b.botInfoCommand(i)
	case "help":
		b.helpCommand(i)
	default:
		b.log.Warn("unknown command", zap.String("name", data.Name))
	}
}

func commandOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	for _, opt := range i.ApplicationCommandData().Options {
		opts[opt.Name] = opt
	}
	return opts
}

// respond sends an ephemeral text reply to the invoker.
func (b *Bot) respond(i *discordgo.InteractionCreate, content string) {
	err := b.disc.Respond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.log.Error("failed to respond", zap.Error(err))
	}
}

// respondEmbed sends an ephemeral embed reply to the invoker.
func (b *Bot) respondEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := b.disc.Respond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.log.Error("failed to respond", zap.Error(err))
	}
}

// targetChannel resolves a channel option and checks it belongs to the guild
// the interaction came from.
func (b *Bot) targetChannel(i *discordgo.InteractionCreate, opt *discordgo.ApplicationCommandInteractionDataOption) (*discordgo.Channel, error) {
	ch, err := b.disc.Channel(opt.ChannelValue(nil).ID)
	if err != nil {
		return nil, err
	}
	if ch.GuildID != i.GuildID {
		return nil, fmt.Errorf("channel %v is not in guild %v", ch.ID, i.GuildID)
	}
	return ch, nil
}

func (b *Bot) buildUserEmbed(i *discordgo.InteractionCreate, action string) *discordgo.MessageEmbed {
	opts := commandOptions(i)

	color := defaultColor
	if c, ok := opts["hex_color"]; ok {
		color = ParseHexColor(c.StringValue())
	}

	user := i.Member.User
	return &discordgo.MessageEmbed{
		Title:       opts["title"].StringValue(),
		Description: opts["message"].StringValue(),
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text:    fmt.Sprintf("%v by %v", action, user.String()),
			IconURL: user.AvatarURL(""),
		},
	}
}

func (b *Bot) sendEmbedCommand(i *discordgo.InteractionCreate) {
	if !b.authorize(i.Interaction) {
		b.respond(i, deniedMessage)
		return
	}

	opts := commandOptions(i)
	ch, err := b.targetChannel(i, opts["channel"])
	if err != nil {
		b.respond(i, "❌ Channel not found.")
		return
	}

	embed := b.buildUserEmbed(i, "Sent")
	if err := b.disc.SendEmbed(ch.ID, embed); err != nil {
		b.respond(i, fmt.Sprintf("❌ Failed to send embed: %v", err))
		return
	}
	b.respond(i, fmt.Sprintf("✅ Embed sent to %v", ch.Mention()))

	b.auditMessageSent(i.Interaction, "📤 Embed Sent", Blue, ch, opts["message"].StringValue())
}

func (b *Bot) embedPreviewCommand(i *discordgo.InteractionCreate) {
	if !b.authorize(i.Interaction) {
		b.respond(i, deniedMessage)
		return
	}
	b.respondEmbed(i, b.buildUserEmbed(i, "Previewed"))
}

func (b *Bot) sendRawCommand(i *discordgo.InteractionCreate) {
	if !b.authorize(i.Interaction) {
		b.respond(i, deniedMessage)
		return
	}

	opts := commandOptions(i)
	ch, err := b.targetChannel(i, opts["channel"])
	if err != nil {
		b.respond(i, "❌ Channel not found.")
		return
	}

	content := opts["message"].StringValue()
	if err := b.disc.SendMessage(ch.ID, content); err != nil {
		b.respond(i, fmt.Sprintf("❌ Failed to send message: %v", err))
		return
	}
	b.respond(i, fmt.Sprintf("✅ Message sent to %v", ch.Mention()))

	b.auditMessageSent(i.Interaction, "📤 Raw Message Sent", Orange, ch, content)
}

func (b *Bot) setNicknameCommand(i *discordgo.InteractionCreate) {
	if !b.authorize(i.Interaction) {
		b.respond(i, deniedMessage)
		return
	}

	nick := commandOptions(i)["nickname"].StringValue()
	if err := b.disc.SetNickname(i.GuildID, nick); err != nil {
		b.respond(i, fmt.Sprintf("❌ Failed to change nickname: %v", err))
		return
	}
	b.respond(i, fmt.Sprintf("✅ Nickname changed to: %v", nick))
}

func (b *Bot) setLogChannelCommand(i *discordgo.InteractionCreate) {
	if !b.authorize(i.Interaction) {
		b.respond(i, deniedMessage)
		return
	}

	ch, err := b.targetChannel(i, commandOptions(i)["channel"])
	if err != nil {
		b.respond(i, "❌ Channel not found.")
		return
	}

	channelID, err := strconv.ParseInt(ch.ID, 10, 64)
	if err != nil {
		b.respond(i, "❌ Channel not found.")
		return
	}

	if err := b.db.Set(i.GuildID, channelID); err != nil {
		b.log.Error("failed to save log channel", zap.String("guild", i.GuildID), zap.Error(err))
		b.respond(i, "❌ Failed to save log channel setting.")
		return
	}
	b.respond(i, fmt.Sprintf("✅ Log channel set to %v", ch.Mention()))
}

func (b *Bot) viewLogChannelCommand(i *discordgo.InteractionCreate) {
	channelID, err := b.db.Get(i.GuildID)
	if err != nil {
		b.respond(i, "❌ No log channel set.")
		return
	}

	ch, err := b.disc.Channel(strconv.FormatInt(channelID, 10))
	if err != nil || ch.GuildID != i.GuildID {
		b.respond(i, "❌ No log channel set.")
		return
	}
	b.respond(i, fmt.Sprintf("📢 Current log channel: %v", ch.Mention()))
}

func (b *Bot) clearLogChannelCommand(i *discordgo.InteractionCreate) {
	if !b.authorize(i.Interaction) {
		b.respond(i, deniedMessage)
		return
	}

	switch err := b.db.Clear(i.GuildID); err {
	case nil:
		b.respond(i, "✅ Log channel setting cleared.")
	case database.ErrNotFound:
		b.respond(i, "ℹ️ No log channel was set.")
	default:
		b.log.Error("failed to clear log channel", zap.String("guild", i.GuildID), zap.Error(err))
		b.respond(i, "❌ Failed to clear log channel setting.")
	}
}

func (b *Bot) pingCommand(i *discordgo.InteractionCreate) {
	b.respond(i, fmt.Sprintf("🏓 Pong! Latency: %vms", b.disc.Latency().Milliseconds()))
}

func (b *Bot) botInfoCommand(i *discordgo.InteractionCreate) {
	embed := &discordgo.MessageEmbed{
		Title: "🤖 Bot Information",
		Color: int(Blurple),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "EmbedMaster at your service!",
		},
	}
	AddEmbedField(embed, "Bot Name", b.username(), true)
	AddEmbedField(embed, "Version", Version, true)
	AddEmbedField(embed, "Uptime", FormatUptime(time.Since(b.startTime)), true)
	AddEmbedField(embed, "Servers", strconv.Itoa(len(b.disc.Guilds())), true)

	b.respondEmbed(i, embed)
}

func (b *Bot) helpCommand(i *discordgo.InteractionCreate) {
	text := strings.Builder{}
	text.WriteString("Welcome to **EmbedMaster** — the bot that makes sending clean and colorful embeds a breeze!\n\n")
	text.WriteString("**Commands:**\n")
	text.WriteString("• `/sendembed` - Send a custom embed to any channel.\n")
	text.WriteString("• `/embedpreview` - Preview your embed privately before sending.\n")
	text.WriteString("• `/sendraw` - Send a plain text message.\n")
	text.WriteString("• `/setnickname` - Change the bot's nickname in your server.\n")
	text.WriteString("• `/setlogchannel` - Choose a channel to receive logs of bot actions.\n")
	text.WriteString("• `/viewlogchannel` - See the currently set log channel.\n")
	text.WriteString("• `/clearlogchannel` - Remove the log channel setting.\n")
	text.WriteString("• `/ping` - Check bot latency.\n")
	text.WriteString("• `/botinfo` - View uptime, version, and server count.\n\n")
	text.WriteString("**Usage Tips:**\n")
	text.WriteString("• Use hex colors like `#FF0000` for vibrant embeds.\n")
	text.WriteString("• You must have **Manage Messages** permission to use most commands.\n")
	text.WriteString("• Logs include info on embed/raw messages sent and bot startup/shutdown.\n\n")
	text.WriteString("**Need help?** Contact your server admin or the bot owner.")

	embed := &discordgo.MessageEmbed{
		Title:       "📚 EmbedMaster Help Guide",
		Description: text.String(),
		Color:       int(Blurple),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "EmbedMaster | Clean embeds, easy messaging",
		},
	}
	b.respondEmbed(i, embed)
}
