package appcmd

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// OptionType is the wire type of a command option. Values match the
// platform's application command option types.
type OptionType int

const (
	OptionSubCommand      OptionType = 1
	OptionSubCommandGroup OptionType = 2
	OptionString          OptionType = 3
	OptionInteger         OptionType = 4
	OptionBoolean         OptionType = 5
	OptionUser            OptionType = 6
	OptionChannel         OptionType = 7
	OptionRole            OptionType = 8
	OptionMentionable     OptionType = 9
	OptionNumber          OptionType = 10
)

func (t OptionType) Valid() bool {
	return t >= OptionSubCommand && t <= OptionNumber
}

func (t OptionType) String() string {
	switch t {
	case OptionSubCommand:
		return "subcommand"
	case OptionSubCommandGroup:
		return "subcommand-group"
	case OptionString:
		return "string"
	case OptionInteger:
		return "integer"
	case OptionBoolean:
		return "boolean"
	case OptionUser:
		return "user"
	case OptionChannel:
		return "channel"
	case OptionRole:
		return "role"
	case OptionMentionable:
		return "mentionable"
	case OptionNumber:
		return "number"
	default:
		return fmt.Sprintf("OptionType(%d)", int(t))
	}
}

// Choice is a fixed value a user can pick for an option. Value falls back
// to Name when left nil.
type Choice struct {
	Name  string
	Value any
}

func NewChoice(name string, value any) Choice {
	if value == nil {
		value = name
	}
	return Choice{Name: name, Value: value}
}

// Option describes one declared command argument. Declaration order is
// significant and preserved all the way to the wire: the platform expects
// required options before optional ones, and this library never reorders
// what it was given.
type Option struct {
	Name        string
	Description string
	Type        OptionType
	Required    bool
	Choices     []Choice

	// Default is applied on the incoming decode path when the payload
	// carries no value for this option. It is never sent to the platform.
	Default any
}

// NewOption validates the option type eagerly so a bad declaration fails at
// startup rather than at registration time.
func NewOption(name, description string, t OptionType, required bool) (Option, error) {
	if !t.Valid() {
		return Option{}, fmt.Errorf("option %q: invalid option type %d", name, int(t))
	}
	if description == "" {
		description = DefaultDescription
	}
	return Option{Name: name, Description: description, Type: t, Required: required}, nil
}

// MustOption is NewOption for declaration sites where the type is a constant.
func MustOption(name, description string, t OptionType, required bool) Option {
	o, err := NewOption(name, description, t, required)
	if err != nil {
		panic(err)
	}
	return o
}

func (o Option) WithChoices(choices ...Choice) Option {
	// Each option owns its own slice; choices are never shared across
	// declarations.
	o.Choices = append([]Choice(nil), choices...)
	return o
}

func (o Option) WithDefault(v any) Option {
	o.Default = v
	return o
}

func (o Option) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("option has no name")
	}
	if !o.Type.Valid() {
		return fmt.Errorf("option %q: invalid option type %d", o.Name, int(o.Type))
	}
	return nil
}

func (o Option) toApplication() *discordgo.ApplicationCommandOption {
	out := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionType(o.Type),
		Name:        o.Name,
		Description: o.Description,
		Required:    o.Required,
	}
	for _, c := range o.Choices {
		out.Choices = append(out.Choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  c.Name,
			Value: c.Value,
		})
	}
	return out
}

func optionFromApplication(in *discordgo.ApplicationCommandOption) (Option, error) {
	o := Option{
		Name:        in.Name,
		Description: in.Description,
		Type:        OptionType(in.Type),
		Required:    in.Required,
	}
	if err := o.Validate(); err != nil {
		return Option{}, err
	}
	for _, c := range in.Choices {
		o.Choices = append(o.Choices, NewChoice(c.Name, c.Value))
	}
	return o, nil
}
