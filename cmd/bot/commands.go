package main

import (
	"fmt"
	"math/rand/v2"

	"slash-command-kit/internal/appcmd"
	"slash-command-kit/internal/dispatch"
	"slash-command-kit/internal/interaction"
)

type rollArgs struct {
	Sides int64 `slash:"sides,optional" desc:"Die size"`
}

// Commands builds the bot's command set for one scope, in the order they
// should register.
func Commands(guildID string, comps *dispatch.ComponentTable) []*appcmd.Command {
	ping := must(appcmd.New("ping", handlePing)).
		WithDescription("Check that the bot is alive").
		WithGuild(guildID)

	echo := must(appcmd.New("echo", handleEcho)).
		WithDescription("Repeat a message back").
		WithGuild(guildID).
		WithOptions(
			appcmd.MustOption("text", "What to repeat", appcmd.OptionString, true),
		)

	rollOpts, err := appcmd.OptionsFromStruct(rollArgs{})
	if err != nil {
		panic(err)
	}
	rollOpts[0] = rollOpts[0].
		WithChoices(
			appcmd.NewChoice("d6", int64(6)),
			appcmd.NewChoice("d20", int64(20)),
			appcmd.NewChoice("d100", int64(100)),
		).
		WithDefault(int64(6))
	roll := must(appcmd.New("roll", handleRoll)).
		WithDescription("Roll a die").
		WithGuild(guildID).
		WithOptions(rollOpts...)

	whois := must(appcmd.New("whois", handleWhois)).
		WithDescription("Show who a user is").
		WithGuild(guildID).
		WithOptions(
			appcmd.MustOption("user", "User to look up", appcmd.OptionUser, true),
		)

	confirm := must(appcmd.New("confirm", handleConfirm(comps))).
		WithDescription("Ask for a yes/no confirmation").
		WithGuild(guildID)

	return []*appcmd.Command{ping, echo, roll, whois, confirm}
}

func handlePing(ctx *interaction.Context, _ appcmd.Args) error {
	return ctx.Reply(interaction.Message{Content: "Pong!"})
}

func handleEcho(ctx *interaction.Context, args appcmd.Args) error {
	return ctx.Reply(interaction.Message{Content: args.String("text")})
}

func handleRoll(ctx *interaction.Context, args appcmd.Args) error {
	sides := args.Int("sides")
	result := rollDie(sides)
	return ctx.Reply(interaction.Message{
		Content: fmt.Sprintf("🎲 Rolled a d%d: **%d**", sides, result),
	})
}

func handleWhois(ctx *interaction.Context, args appcmd.Args) error {
	user := args.User("user")
	if user == nil {
		return ctx.Reply(interaction.Message{Content: "Could not resolve that user.", Ephemeral: true})
	}
	content := fmt.Sprintf("%s (id %s)", user.Username, user.ID)
	if member := args.Member("user"); member != nil && member.Nick != "" {
		content = fmt.Sprintf("%s, known here as %q", content, member.Nick)
	}
	return ctx.Reply(interaction.Message{Content: content, Ephemeral: true})
}

func handleConfirm(comps *dispatch.ComponentTable) appcmd.Handler {
	return func(ctx *interaction.Context, _ appcmd.Args) error {
		view := newConfirmView(ctx.ID, comps)
		return ctx.Reply(interaction.Message{
			Content: "Are you sure?",
			View:    view,
		})
	}
}

func rollDie(sides int64) int64 {
	if sides < 1 {
		sides = 6
	}
	return rand.Int64N(sides) + 1
}

func must(cmd *appcmd.Command, err error) *appcmd.Command {
	if err != nil {
		panic(err)
	}
	return cmd
}
