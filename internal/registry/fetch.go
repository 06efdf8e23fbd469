package registry

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// FetchRemote lists the commands currently registered with the platform for
// the given scope ("" = global). It waits for the ready gate before the
// first request and filters the result down to plain slash commands; the
// platform also returns context-menu kinds this kit does not handle.
func (r *Registry) FetchRemote(ctx context.Context, guildID string) ([]*discordgo.ApplicationCommand, error) {
	if r.gate != nil {
		if err := r.gate.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for ready: %w", err)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	remote, err := r.session.ApplicationCommands(r.appID, guildID, discordgo.WithContext(callCtx))
	if err != nil {
		return nil, r.classify(err, "listing commands")
	}

	out := make([]*discordgo.ApplicationCommand, 0, len(remote))
	for _, rc := range remote {
		if rc.Type != 0 && rc.Type != discordgo.ChatApplicationCommand {
			continue
		}
		out = append(out, rc)
	}
	return out, nil
}
