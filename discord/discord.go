package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Discord wraps a discordgo session. Gateway events are forwarded to the
// Events channel for the bot to consume.
type Discord struct {
	token string
	Sess  *discordgo.Session
	log   *zap.Logger

	Events chan interface{}
}

// NewDiscord takes in a token and creates a Discord object.
func NewDiscord(token string, log *zap.Logger) (*Discord, error) {
	d := &Discord{
		token:  token,
		log:    log,
		Events: make(chan interface{}, 256),
	}

	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	s.State.TrackVoice = false
	s.State.TrackPresences = false
	s.Identify.Intents = discordgo.IntentsGuilds
	s.AddHandler(onEvent(d.Events))

	d.Sess = s
	return d, nil
}

func onEvent(e chan interface{}) func(s *discordgo.Session, i interface{}) {
	return func(s *discordgo.Session, i interface{}) {
		e <- i
	}
}

// Open opens the Discord session.
func (d *Discord) Open() error {
	return d.Sess.Open()
}

// Close closes the Discord session.
func (d *Discord) Close() {
	if err := d.Sess.Close(); err != nil {
		d.log.Error("failed to close discord session", zap.Error(err))
	}
}

func (d *Discord) SendMessage(channelID, content string) error {
	_, err := d.Sess.ChannelMessageSend(channelID, content)
	return err
}

func (d *Discord) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	_, err := d.Sess.ChannelMessageSendEmbed(channelID, embed)
	return err
}

// SendDM opens a DM channel to the user and sends the content there.
func (d *Discord) SendDM(userID, content string) error {
	ch, err := d.Sess.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = d.Sess.ChannelMessageSend(ch.ID, content)
	return err
}

func (d *Discord) SetNickname(guildID, nick string) error {
	return d.Sess.GuildMemberNickname(guildID, "@me", nick)
}

func (d *Discord) Respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return d.Sess.InteractionRespond(i, resp)
}

// RegisterCommands overwrites the bot's global application commands.
func (d *Discord) RegisterCommands(commands []*discordgo.ApplicationCommand) error {
	_, err := d.Sess.ApplicationCommandBulkOverwrite(d.Sess.State.User.ID, "", commands)
	return err
}

func (d *Discord) Latency() time.Duration {
	return d.Sess.HeartbeatLatency()
}

func (d *Discord) User() *discordgo.User {
	return d.Sess.State.User
}
