package dispatch

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// SessionResolver resolves entities against a live discordgo session: state
// cache first, REST fetch on a miss.
type SessionResolver struct {
	s *discordgo.Session
}

func NewSessionResolver(s *discordgo.Session) *SessionResolver {
	return &SessionResolver{s: s}
}

func (r *SessionResolver) ResolveMember(guildID, userID string) (*discordgo.Member, error) {
	if m, err := r.s.State.Member(guildID, userID); err == nil {
		return m, nil
	}
	return r.s.GuildMember(guildID, userID)
}

func (r *SessionResolver) ResolveUser(userID string) (*discordgo.User, error) {
	return r.s.User(userID)
}

func (r *SessionResolver) ResolveChannel(guildID, channelID string) (*discordgo.Channel, error) {
	if ch, err := r.s.State.Channel(channelID); err == nil {
		return ch, nil
	}
	return r.s.Channel(channelID)
}

func (r *SessionResolver) ResolveRole(guildID, roleID string) (*discordgo.Role, error) {
	if guildID == "" {
		return nil, fmt.Errorf("role %s: roles only exist inside guilds", roleID)
	}
	if role, err := r.s.State.Role(guildID, roleID); err == nil {
		return role, nil
	}
	roles, err := r.s.GuildRoles(guildID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if role.ID == roleID {
			return role, nil
		}
	}
	return nil, fmt.Errorf("role %s not found in guild %s", roleID, guildID)
}
