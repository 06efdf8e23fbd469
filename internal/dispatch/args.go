package dispatch

import (
	"fmt"

	"slash-command-kit/internal/appcmd"

	"github.com/bwmarrin/discordgo"
)

// invocation is the resolved target of one command interaction: the handler
// to call, the options it declared, and the payload options carrying values.
// For nested commands the payload's leading subcommand/group layers are
// peeled off here.
type invocation struct {
	qualifiedName string
	handler       appcmd.Handler
	declared      []appcmd.Option
	payload       []*discordgo.ApplicationCommandInteractionDataOption
}

func resolveInvocation(cmd *appcmd.Command, payload []*discordgo.ApplicationCommandInteractionDataOption) (*invocation, error) {
	if len(payload) > 0 {
		switch payload[0].Type {
		case discordgo.ApplicationCommandOptionSubCommand:
			sub := findSubCommand(cmd.SubCommands, payload[0].Name)
			if sub == nil {
				return nil, fmt.Errorf("command %q has no subcommand %q", cmd.Name(), payload[0].Name)
			}
			return subInvocation(cmd.Name(), sub, payload[0].Options)
		case discordgo.ApplicationCommandOptionSubCommandGroup:
			group := findGroup(cmd.Groups, payload[0].Name)
			if group == nil {
				return nil, fmt.Errorf("command %q has no group %q", cmd.Name(), payload[0].Name)
			}
			nested := payload[0].Options
			if len(nested) == 0 {
				return nil, fmt.Errorf("group %q invoked without a subcommand", group.Name)
			}
			sub := findSubCommand(group.SubCommands, nested[0].Name)
			if sub == nil {
				return nil, fmt.Errorf("group %q has no subcommand %q", group.Name, nested[0].Name)
			}
			return subInvocation(cmd.Name()+" "+group.Name, sub, nested[0].Options)
		}
	}
	if cmd.Handler == nil {
		return nil, fmt.Errorf("command %q has no handler", cmd.Name())
	}
	return &invocation{
		qualifiedName: cmd.Name(),
		handler:       cmd.Handler,
		declared:      cmd.Options,
		payload:       payload,
	}, nil
}

func subInvocation(prefix string, sub *appcmd.SubCommand, payload []*discordgo.ApplicationCommandInteractionDataOption) (*invocation, error) {
	if sub.Handler == nil {
		return nil, fmt.Errorf("subcommand %q has no handler", sub.Name)
	}
	return &invocation{
		qualifiedName: prefix + " " + sub.Name,
		handler:       sub.Handler,
		declared:      sub.Options,
		payload:       payload,
	}, nil
}

func findSubCommand(subs []*appcmd.SubCommand, name string) *appcmd.SubCommand {
	for _, s := range subs {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func findGroup(groups []*appcmd.SubCommandGroup, name string) *appcmd.SubCommandGroup {
	for _, g := range groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// decodeArgs walks the declared options in order and coerces the payload
// values. Entity kinds (user, channel, role) resolve cache-then-fetch
// through the resolver; scalars pass through; absent options fall back to
// their declared default when one exists.
func (d *Dispatcher) decodeArgs(declared []appcmd.Option, payload []*discordgo.ApplicationCommandInteractionDataOption, guildID string) (appcmd.Args, error) {
	args := make(appcmd.Args, len(declared))
	for _, opt := range declared {
		raw, present := payloadValue(payload, opt.Name)
		if !present {
			if opt.Default != nil {
				args[opt.Name] = opt.Default
			}
			continue
		}

		switch opt.Type {
		case appcmd.OptionUser:
			id, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("option %q: user id is %T, want string", opt.Name, raw)
			}
			value, err := d.resolveUser(guildID, id)
			if err != nil {
				return nil, fmt.Errorf("option %q: %w", opt.Name, err)
			}
			args[opt.Name] = value
		case appcmd.OptionChannel:
			id, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("option %q: channel id is %T, want string", opt.Name, raw)
			}
			ch, err := d.res.ResolveChannel(guildID, id)
			if err != nil {
				return nil, fmt.Errorf("option %q: %w", opt.Name, err)
			}
			args[opt.Name] = ch
		case appcmd.OptionRole:
			id, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("option %q: role id is %T, want string", opt.Name, raw)
			}
			role, err := d.res.ResolveRole(guildID, id)
			if err != nil {
				return nil, fmt.Errorf("option %q: %w", opt.Name, err)
			}
			args[opt.Name] = role
		case appcmd.OptionInteger:
			// JSON numbers arrive as float64.
			if f, ok := raw.(float64); ok {
				args[opt.Name] = int64(f)
			} else {
				args[opt.Name] = raw
			}
		default:
			// Mentionable stays a raw id: the payload does not say whether
			// it names a user or a role. Other scalars pass unchanged.
			args[opt.Name] = raw
		}
	}
	return args, nil
}

// resolveUser prefers the guild member (carries nick and roles) and falls
// back to the bare user outside guilds.
func (d *Dispatcher) resolveUser(guildID, userID string) (any, error) {
	if guildID != "" {
		member, err := d.res.ResolveMember(guildID, userID)
		if err == nil {
			return member, nil
		}
	}
	return d.res.ResolveUser(userID)
}

func payloadValue(payload []*discordgo.ApplicationCommandInteractionDataOption, name string) (any, bool) {
	for _, p := range payload {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}
