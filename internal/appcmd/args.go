package appcmd

import "github.com/bwmarrin/discordgo"

// Args holds the decoded option values for one command invocation, keyed by
// option name. Platform entities (users, channels, roles) arrive already
// resolved by the dispatcher; scalars pass through as sent.
type Args map[string]any

func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

func (a Args) Int(name string) int64 {
	switch v := a[name].(type) {
	case int64:
		return v
	case float64:
		// JSON numbers decode as float64.
		return int64(v)
	}
	return 0
}

func (a Args) Float(name string) float64 {
	v, _ := a[name].(float64)
	return v
}

func (a Args) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// User returns the resolved user for a user option. Inside guilds the
// dispatcher resolves members; the member's user is unwrapped here.
func (a Args) User(name string) *discordgo.User {
	switch v := a[name].(type) {
	case *discordgo.User:
		return v
	case *discordgo.Member:
		return v.User
	}
	return nil
}

func (a Args) Member(name string) *discordgo.Member {
	v, _ := a[name].(*discordgo.Member)
	return v
}

func (a Args) Channel(name string) *discordgo.Channel {
	v, _ := a[name].(*discordgo.Channel)
	return v
}

func (a Args) Role(name string) *discordgo.Role {
	v, _ := a[name].(*discordgo.Role)
	return v
}

// MentionableID returns the raw snowflake of a mentionable option; the
// payload does not say whether it names a user or a role, so it stays an ID.
func (a Args) MentionableID(name string) string {
	v, _ := a[name].(string)
	return v
}
