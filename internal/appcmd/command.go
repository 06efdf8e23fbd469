package appcmd

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"slash-command-kit/internal/interaction"
)

// DefaultDescription is the placeholder used when a declaration leaves the
// description empty. The platform rejects empty descriptions.
const DefaultDescription = "No description."

// Handler is the callback invoked when a registered command fires.
type Handler func(ctx *interaction.Context, args Args) error

// Command is an immutable slash command definition. The name is fixed at
// construction; the remote-assigned identifier is tracked by the registry,
// never stored here.
type Command struct {
	name        string
	Description string

	// GuildID scopes the command to one guild; empty means global.
	GuildID string

	Options     []Option
	SubCommands []*SubCommand
	Groups      []*SubCommandGroup

	Handler Handler

	// Extension names the extension that declared this command, if any.
	// Lookup only: unload teardown uses it to find what to remove.
	Extension string
}

// New builds a command definition. When name is empty it is derived from the
// handler's function identifier; a definition with neither a name nor a
// handler is invalid.
func New(name string, handler Handler) (*Command, error) {
	if name == "" {
		if handler == nil {
			return nil, fmt.Errorf("command needs a name or a handler to derive one from")
		}
		name = deriveName(handler)
		if name == "" {
			return nil, fmt.Errorf("could not derive a command name from handler")
		}
	}
	return &Command{
		name:        name,
		Description: DefaultDescription,
		Handler:     handler,
	}, nil
}

func (c *Command) Name() string { return c.name }

func (c *Command) WithDescription(d string) *Command {
	if d != "" {
		c.Description = d
	}
	return c
}

func (c *Command) WithGuild(guildID string) *Command {
	c.GuildID = guildID
	return c
}

// WithOptions appends options in declaration order.
func (c *Command) WithOptions(opts ...Option) *Command {
	c.Options = append(c.Options, opts...)
	return c
}

func (c *Command) WithSubCommands(subs ...*SubCommand) *Command {
	c.SubCommands = append(c.SubCommands, subs...)
	return c
}

func (c *Command) WithGroups(groups ...*SubCommandGroup) *Command {
	c.Groups = append(c.Groups, groups...)
	return c
}

func (c *Command) Validate() error {
	if c.name == "" {
		return fmt.Errorf("command has no name")
	}
	for _, o := range c.Options {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("command %q: %w", c.name, err)
		}
	}
	for _, s := range c.SubCommands {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("command %q: %w", c.name, err)
		}
	}
	for _, g := range c.Groups {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("command %q: %w", c.name, err)
		}
	}
	return nil
}

// SubCommand is a nested command. On the wire it rides inside the parent's
// option list with type 1.
type SubCommand struct {
	Name        string
	Description string
	Options     []Option
	Handler     Handler
}

func NewSubCommand(name string, handler Handler) (*SubCommand, error) {
	if name == "" {
		if handler == nil {
			return nil, fmt.Errorf("subcommand needs a name or a handler to derive one from")
		}
		name = deriveName(handler)
		if name == "" {
			return nil, fmt.Errorf("could not derive a subcommand name from handler")
		}
	}
	return &SubCommand{Name: name, Description: DefaultDescription, Handler: handler}, nil
}

func (s *SubCommand) WithDescription(d string) *SubCommand {
	if d != "" {
		s.Description = d
	}
	return s
}

func (s *SubCommand) WithOptions(opts ...Option) *SubCommand {
	s.Options = append(s.Options, opts...)
	return s
}

func (s *SubCommand) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("subcommand has no name")
	}
	for _, o := range s.Options {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("subcommand %q: %w", s.Name, err)
		}
	}
	return nil
}

// SubCommandGroup nests subcommands one level deeper; wire type 2.
type SubCommandGroup struct {
	Name        string
	Description string
	SubCommands []*SubCommand
}

func NewSubCommandGroup(name string, subs ...*SubCommand) (*SubCommandGroup, error) {
	if name == "" {
		return nil, fmt.Errorf("subcommand group needs a name")
	}
	return &SubCommandGroup{Name: name, Description: DefaultDescription, SubCommands: subs}, nil
}

func (g *SubCommandGroup) WithDescription(d string) *SubCommandGroup {
	if d != "" {
		g.Description = d
	}
	return g
}

func (g *SubCommandGroup) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("subcommand group has no name")
	}
	for _, s := range g.SubCommands {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
	}
	return nil
}

// deriveName turns a handler's function identifier into a command name:
// package path and closure suffixes stripped, lowercased.
func deriveName(h Handler) string {
	fn := runtime.FuncForPC(reflect.ValueOf(h).Pointer())
	if fn == nil {
		return ""
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	// Anonymous functions come out as func1, func2...; refuse those.
	if strings.HasPrefix(name, "func") {
		return ""
	}
	return strings.ToLower(name)
}
