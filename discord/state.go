package discord

import "github.com/bwmarrin/discordgo"

func (d *Discord) Guilds() []*discordgo.Guild {
	return d.Sess.State.Guilds
}

func (d *Discord) Guild(gid string) (*discordgo.Guild, error) {
	return d.Sess.State.Guild(gid)
}

func (d *Discord) Channel(cid string) (*discordgo.Channel, error) {
	return d.Sess.State.Channel(cid)
}
