package appcmd

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// ToApplication renders the definition into the platform's command
// descriptor. Plain options keep their declared order; subcommands and
// groups are composed into the same option list after them, as the wire
// format requires.
func (c *Command) ToApplication() *discordgo.ApplicationCommand {
	out := &discordgo.ApplicationCommand{
		Name:        c.name,
		Description: c.Description,
		Type:        discordgo.ChatApplicationCommand,
	}
	for _, o := range c.Options {
		out.Options = append(out.Options, o.toApplication())
	}
	for _, s := range c.SubCommands {
		out.Options = append(out.Options, s.toApplication())
	}
	for _, g := range c.Groups {
		out.Options = append(out.Options, g.toApplication())
	}
	return out
}

func (s *SubCommand) toApplication() *discordgo.ApplicationCommandOption {
	out := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        s.Name,
		Description: s.Description,
	}
	for _, o := range s.Options {
		out.Options = append(out.Options, o.toApplication())
	}
	return out
}

func (g *SubCommandGroup) toApplication() *discordgo.ApplicationCommandOption {
	out := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
		Name:        g.Name,
		Description: g.Description,
	}
	for _, s := range g.SubCommands {
		out.Options = append(out.Options, s.toApplication())
	}
	return out
}

// Parse rebuilds a definition from a platform descriptor. Only plain slash
// commands (type 1) parse; context-menu kinds are rejected. Server-assigned
// fields (ID, version) are intentionally not carried over.
func Parse(in *discordgo.ApplicationCommand) (*Command, error) {
	if in.Type != 0 && in.Type != discordgo.ChatApplicationCommand {
		return nil, fmt.Errorf("command %q: not a slash command (type %d)", in.Name, in.Type)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("command descriptor has no name")
	}

	c := &Command{
		name:        in.Name,
		Description: in.Description,
		GuildID:     in.GuildID,
	}
	if c.Description == "" {
		c.Description = DefaultDescription
	}

	for _, opt := range in.Options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionSubCommand:
			sub, err := subCommandFromApplication(opt)
			if err != nil {
				return nil, fmt.Errorf("command %q: %w", in.Name, err)
			}
			c.SubCommands = append(c.SubCommands, sub)
		case discordgo.ApplicationCommandOptionSubCommandGroup:
			group := &SubCommandGroup{Name: opt.Name, Description: opt.Description}
			for _, nested := range opt.Options {
				sub, err := subCommandFromApplication(nested)
				if err != nil {
					return nil, fmt.Errorf("command %q group %q: %w", in.Name, opt.Name, err)
				}
				group.SubCommands = append(group.SubCommands, sub)
			}
			c.Groups = append(c.Groups, group)
		default:
			o, err := optionFromApplication(opt)
			if err != nil {
				return nil, fmt.Errorf("command %q: %w", in.Name, err)
			}
			c.Options = append(c.Options, o)
		}
	}
	return c, nil
}

func subCommandFromApplication(in *discordgo.ApplicationCommandOption) (*SubCommand, error) {
	sub := &SubCommand{Name: in.Name, Description: in.Description}
	for _, opt := range in.Options {
		o, err := optionFromApplication(opt)
		if err != nil {
			return nil, fmt.Errorf("subcommand %q: %w", in.Name, err)
		}
		sub.Options = append(sub.Options, o)
	}
	return sub, nil
}
