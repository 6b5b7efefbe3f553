package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/intrntsrfr/embedmaster/database"
	"github.com/intrntsrfr/embedmaster/discord"
	"github.com/intrntsrfr/embedmaster/owo"
)

// Gateway is the slice of the Discord connection the bot depends on.
type Gateway interface {
	Open() error
	Close()
	User() *discordgo.User
	Guilds() []*discordgo.Guild
	Guild(gid string) (*discordgo.Guild, error)
	Channel(cid string) (*discordgo.Channel, error)
	SendMessage(channelID, content string) error
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) error
	SendDM(userID, content string) error
	SetNickname(guildID, nick string) error
	Respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	RegisterCommands(commands []*discordgo.ApplicationCommand) error
	Latency() time.Duration
}

type Config struct {
	Log   *zap.Logger
	DB    database.DB
	Owo   *owo.Client
	Token string

	// Nickname is applied to the bot in every guild on startup and join.
	Nickname string
	// PermissionRole, when set, gates privileged commands on holding a role
	// with that exact name instead of the manage-messages/administrator check.
	PermissionRole string
	// OwnerID, when set, receives a DM once the bot is up.
	OwnerID string
}

type Bot struct {
	disc      Gateway
	events    <-chan interface{}
	db        database.DB
	log       *zap.Logger
	config    *Config
	owo       *owo.Client
	startTime time.Time
}

func NewBot(c *Config) (*Bot, error) {
	b := &Bot{
		db:        c.DB,
		log:       c.Log,
		config:    c,
		owo:       c.Owo,
		startTime: time.Now(),
	}

	disc, err := discord.NewDiscord(c.Token, c.Log.Named("discord"))
	if err != nil {
		return nil, err
	}
	b.disc = disc
	b.events = disc.Events

	return b, nil
}

func (b *Bot) Run() error {
	go b.listen(b.events)
	return b.disc.Open()
}

func (b *Bot) listen(evtCh <-chan interface{}) {
	for evt := range evtCh {
		switch e := evt.(type) {
		case *discordgo.Ready:
			go b.readyHandler(e)
		case *discordgo.GuildCreate:
			go b.guildCreateHandler(e)
		case *discordgo.InteractionCreate:
			go b.interactionHandler(e)
		case *discordgo.Disconnect:
			b.log.Info("disconnected")
		}
	}
}

// username returns the bot's account name, falling back to the configured
// nickname before the gateway is ready.
func (b *Bot) username() string {
	if u := b.disc.User(); u != nil {
		return u.String()
	}
	return b.config.Nickname
}
