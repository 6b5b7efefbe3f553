package bot

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/intrntsrfr/embedmaster/database"
)

type sentMessage struct {
	channelID string
	content   string
	embed     *discordgo.MessageEmbed
}

// fakeGateway implements Gateway and records everything sent through it.
type fakeGateway struct {
	mu        sync.Mutex
	user      *discordgo.User
	guilds    []*discordgo.Guild
	channels  map[string]*discordgo.Channel
	failSends map[string]bool
	nickErrs  map[string]error
	nicknames map[string]string
	latency   time.Duration

	sent       []sentMessage
	dms        []string
	responses  []*discordgo.InteractionResponse
	registered []*discordgo.ApplicationCommand
	events     []string
	closed     bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		user:      &discordgo.User{ID: "bot1", Username: "EmbedMaster", Discriminator: "0000"},
		channels:  make(map[string]*discordgo.Channel),
		failSends: make(map[string]bool),
		nickErrs:  make(map[string]error),
		nicknames: make(map[string]string),
	}
}

func (f *fakeGateway) addGuild(id string, roles ...*discordgo.Role) *discordgo.Guild {
	g := &discordgo.Guild{ID: id, Name: "guild " + id, Roles: roles}
	f.guilds = append(f.guilds, g)
	return g
}

func (f *fakeGateway) addChannel(id, guildID, name string) *discordgo.Channel {
	ch := &discordgo.Channel{ID: id, GuildID: guildID, Name: name, Type: discordgo.ChannelTypeGuildText}
	f.channels[id] = ch
	return ch
}

func (f *fakeGateway) Open() error { return nil }

func (f *fakeGateway) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.events = append(f.events, "close")
}

func (f *fakeGateway) User() *discordgo.User { return f.user }

func (f *fakeGateway) Guilds() []*discordgo.Guild { return f.guilds }

func (f *fakeGateway) Guild(gid string) (*discordgo.Guild, error) {
	for _, g := range f.guilds {
		if g.ID == gid {
			return g, nil
		}
	}
	return nil, errors.New("guild not found")
}

func (f *fakeGateway) Channel(cid string) (*discordgo.Channel, error) {
	if ch, ok := f.channels[cid]; ok {
		return ch, nil
	}
	return nil, errors.New("channel not found")
}

func (f *fakeGateway) SendMessage(channelID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSends[channelID] {
		return errors.New("missing permissions")
	}
	f.sent = append(f.sent, sentMessage{channelID: channelID, content: content})
	f.events = append(f.events, "send:"+channelID)
	return nil
}

func (f *fakeGateway) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSends[channelID] {
		return errors.New("missing permissions")
	}
	f.sent = append(f.sent, sentMessage{channelID: channelID, embed: embed})
	f.events = append(f.events, "send:"+channelID)
	return nil
}

func (f *fakeGateway) SendDM(userID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dms = append(f.dms, content)
	return nil
}

func (f *fakeGateway) SetNickname(guildID, nick string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.nickErrs[guildID]; err != nil {
		return err
	}
	f.nicknames[guildID] = nick
	return nil
}

func (f *fakeGateway) Respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeGateway) RegisterCommands(commands []*discordgo.ApplicationCommand) error {
	f.registered = commands
	return nil
}

func (f *fakeGateway) Latency() time.Duration { return f.latency }

func newTestDB(t *testing.T) *database.JsonDB {
	t.Helper()
	return database.NewJsonDatabase(filepath.Join(t.TempDir(), "log_channels.json"), zap.NewNop())
}

func newTestBot(db database.DB, disc *fakeGateway) *Bot {
	return &Bot{
		disc:      disc,
		db:        db,
		log:       zap.NewNop(),
		config:    &Config{Nickname: "EmbedMaster"},
		startTime: time.Now(),
	}
}

func testMember(perms int64) *discordgo.Member {
	return &discordgo.Member{
		User:        &discordgo.User{ID: "u1", Username: "moderator", Discriminator: "0001"},
		Permissions: perms,
	}
}

func testCommand(name, guildID string, member *discordgo.Member, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: guildID,
			Member:  member,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
		},
	}
}

func stringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type:  discordgo.ApplicationCommandOptionString,
		Name:  name,
		Value: value,
	}
}

func channelOption(id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type:  discordgo.ApplicationCommandOptionChannel,
		Name:  "channel",
		Value: id,
	}
}
