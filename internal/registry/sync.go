package registry

import (
	"context"
	"fmt"

	"slash-command-kit/internal/appcmd"
	"slash-command-kit/internal/metrics"
)

// Sync reconciles a local command set against the platform's registered list
// for one scope: remote commands with no local counterpart are deleted,
// commands whose definition hash changed are created (the platform upserts
// by name), and unchanged commands are skipped, re-adopting the remote id
// they already hold. The cache may be nil; everything then counts as changed.
func (r *Registry) Sync(ctx context.Context, guildID string, cmds []*appcmd.Command, cache *HashCache) error {
	wanted := make(map[string]*appcmd.Command, len(cmds))
	for _, cmd := range cmds {
		if err := cmd.Validate(); err != nil {
			return err
		}
		if cmd.GuildID != guildID {
			return fmt.Errorf("command %q declares scope %q, sync scope is %q", cmd.Name(), cmd.GuildID, guildID)
		}
		if _, dup := wanted[cmd.Name()]; dup {
			return fmt.Errorf("%w: %q declared twice in scope %q", ErrCommandExists, cmd.Name(), guildID)
		}
		wanted[cmd.Name()] = cmd
	}

	remote, err := r.FetchRemote(ctx, guildID)
	if err != nil {
		return err
	}
	remoteByName := make(map[string]string, len(remote))
	for _, rc := range remote {
		remoteByName[rc.Name] = rc.ID
	}

	hashes := map[string]string{}
	if cache != nil {
		hashes = cache.Load(guildID)
	}

	// Delete obsolete remote commands.
	for _, rc := range remote {
		if _, keep := wanted[rc.Name]; keep {
			continue
		}
		r.log.Info("Deleting obsolete command", "name", rc.Name, "guild", guildID)
		if err := r.deleteRemote(ctx, guildID, rc.ID); err != nil {
			metrics.RegistryOperations.WithLabelValues("delete", "failure").Inc()
			r.log.Error("Failed to delete obsolete command", "name", rc.Name, "error", err)
			continue
		}
		metrics.RegistryOperations.WithLabelValues("delete", "success").Inc()
		delete(hashes, rc.Name)
	}

	// Create or update changed commands, skip the rest. Declaration order is
	// preserved so registration logs read like the declaration site.
	for _, cmd := range cmds {
		h := cmd.Hash()
		remoteID, registered := remoteByName[cmd.Name()]

		if registered && hashes[cmd.Name()] == h {
			r.adopt(&Entry{RemoteID: remoteID, GuildID: guildID, Command: cmd})
			metrics.RegistryOperations.WithLabelValues("skip", "success").Inc()
			continue
		}

		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}
		created, err := r.createRemote(ctx, cmd)
		if err != nil {
			metrics.RegistryOperations.WithLabelValues("create", "failure").Inc()
			r.log.Error("Failed to register command", "name", cmd.Name(), "error", err)
			continue
		}
		metrics.RegistryOperations.WithLabelValues("create", "success").Inc()
		r.adopt(&Entry{RemoteID: created.ID, GuildID: guildID, Command: cmd})
		hashes[cmd.Name()] = h
		r.log.Info("Registered command", "name", cmd.Name(), "id", created.ID, "guild", guildID)
	}

	if cache != nil {
		if err := cache.Save(guildID, hashes); err != nil {
			r.log.Warn("Failed to save command hash cache", "guild", guildID, "error", err)
		}
	}
	return nil
}
