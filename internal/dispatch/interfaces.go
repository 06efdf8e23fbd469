package dispatch

import (
	"slash-command-kit/internal/interaction"
	"slash-command-kit/internal/registry"

	"github.com/bwmarrin/discordgo"
)

// Lookup is the slice of the registry the dispatcher reads: remote command
// id → live entry.
type Lookup interface {
	Lookup(remoteID string) (*registry.Entry, bool)
}

// Resolver turns platform entity ids from an interaction payload into cached
// or freshly fetched entities. Implementations go cache first, fetch second.
type Resolver interface {
	interaction.ChannelResolver
	ResolveMember(guildID, userID string) (*discordgo.Member, error)
	ResolveUser(userID string) (*discordgo.User, error)
	ResolveRole(guildID, roleID string) (*discordgo.Role, error)
}
