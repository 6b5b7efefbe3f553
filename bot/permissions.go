package bot

import "github.com/bwmarrin/discordgo"

// authorize reports whether the invoking member may run privileged commands.
// Evaluated fresh on every call; missing member data denies.
func (b *Bot) authorize(i *discordgo.Interaction) bool {
	if i == nil || i.Member == nil || i.Member.User == nil {
		return false
	}

	if b.config.PermissionRole != "" {
		g, err := b.disc.Guild(i.GuildID)
		if err != nil {
			return false
		}
		for _, roleID := range i.Member.Roles {
			for _, role := range g.Roles {
				if role.ID == roleID && role.Name == b.config.PermissionRole {
					return true
				}
			}
		}
		return false
	}

	return i.Member.Permissions&(discordgo.PermissionManageMessages|discordgo.PermissionAdministrator) != 0
}
