package main

import (
	"fmt"
	"time"

	"slash-command-kit/internal/appcmd"
	"slash-command-kit/internal/config"
	"slash-command-kit/internal/extension"
	"slash-command-kit/internal/interaction"
)

// RegisterExtensions wires every extension's setup function into the loader.
// Extensions register late (after the static command sync), so a broken one
// costs a command, not the bot.
func RegisterExtensions(loader *extension.Loader, cfg *config.Config) {
	loader.Register("uptime", uptimeSetup(cfg.GuildID))
}

func uptimeSetup(guildID string) extension.SetupFunc {
	started := time.Now()
	return func(_ extension.Registrar) (*appcmd.Command, error) {
		cmd, err := appcmd.New("uptime", func(ctx *interaction.Context, _ appcmd.Args) error {
			up := time.Since(started).Round(time.Second)
			return ctx.Reply(interaction.Message{
				Content:   fmt.Sprintf("Up for %s.", up),
				Ephemeral: true,
			})
		})
		if err != nil {
			return nil, err
		}
		return cmd.WithDescription("How long the bot has been running").WithGuild(guildID), nil
	}
}
