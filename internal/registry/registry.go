package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"slash-command-kit/internal/appcmd"
	"slash-command-kit/internal/metrics"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// Entry is one live registration: a remote-assigned command id owning a local
// definition. The registry is the sole owner of entries.
type Entry struct {
	RemoteID string
	GuildID  string
	Command  *appcmd.Command
}

// Commands are unique per (name, scope): a global command and a guild command
// may share a name, two commands in the same scope may not.
type nameKey struct {
	name    string
	guildID string
}

// Registry is the in-process source of truth for which commands are live,
// locally and remotely, keyed by remote id. Construction is explicit: the
// session, application id and ready gate are passed in, never discovered.
type Registry struct {
	session CommandSession
	appID   string
	gate    *Gate
	timeout time.Duration
	limiter *rate.Limiter
	log     *slog.Logger

	mu      sync.RWMutex
	entries map[string]*Entry
	names   map[nameKey]string
}

type Option func(*Registry)

// WithTimeout bounds every remote registry call; a hit deadline surfaces as
// ErrRegistrationTimeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Registry) { r.timeout = d }
}

// WithCreateRate paces create calls to stay under the platform's rate limit.
func WithCreateRate(perSecond float64) Option {
	return func(r *Registry) { r.limiter = rate.NewLimiter(rate.Limit(perSecond), 1) }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

func New(session CommandSession, appID string, gate *Gate, opts ...Option) *Registry {
	r := &Registry{
		session: session,
		appID:   appID,
		gate:    gate,
		timeout: 10 * time.Second,
		limiter: rate.NewLimiter(rate.Limit(20), 1),
		log:     slog.Default(),
		entries: make(map[string]*Entry),
		names:   make(map[nameKey]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add registers a definition with the platform and stores the resulting
// entry. A same-name command already live in the same scope fails with
// ErrCommandExists; a stale same-name remote leftover from a previous run is
// deleted before the fresh create.
func (r *Registry) Add(ctx context.Context, cmd *appcmd.Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	key := nameKey{name: cmd.Name(), guildID: cmd.GuildID}

	r.mu.RLock()
	_, taken := r.names[key]
	r.mu.RUnlock()
	if taken {
		return fmt.Errorf("%w: %q", ErrCommandExists, cmd.Name())
	}

	remote, err := r.FetchRemote(ctx, cmd.GuildID)
	if err != nil {
		return err
	}
	for _, rc := range remote {
		if rc.Name != cmd.Name() {
			continue
		}
		// Stale registration from a previous process; remove before creating.
		r.log.Info("Deleting stale remote command", "name", rc.Name, "id", rc.ID, "guild", cmd.GuildID)
		if err := r.deleteRemote(ctx, cmd.GuildID, rc.ID); err != nil {
			return fmt.Errorf("deleting stale command %q: %w", rc.Name, err)
		}
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}
	created, err := r.createRemote(ctx, cmd)
	if err != nil {
		metrics.RegistryOperations.WithLabelValues("create", "failure").Inc()
		return err
	}
	metrics.RegistryOperations.WithLabelValues("create", "success").Inc()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.names[key]; taken {
		// Lost a race with a concurrent Add for the same name.
		return fmt.Errorf("%w: %q", ErrCommandExists, cmd.Name())
	}
	r.store(&Entry{RemoteID: created.ID, GuildID: cmd.GuildID, Command: cmd})

	r.log.Info("Registered command", "name", cmd.Name(), "id", created.ID, "guild", cmd.GuildID)
	return nil
}

// Reload hot-swaps the definition of an already-registered command in place,
// keeping its remote id. Local only: no network round-trip.
func (r *Registry) Reload(cmd *appcmd.Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	key := nameKey{name: cmd.Name(), guildID: cmd.GuildID}

	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.names[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrCommandNotRegistered, cmd.Name())
	}
	r.entries[id] = &Entry{RemoteID: id, GuildID: cmd.GuildID, Command: cmd}
	r.log.Info("Reloaded command", "name", cmd.Name(), "id", id)
	return nil
}

// Remove deletes the command remotely and drops the local entry.
func (r *Registry) Remove(ctx context.Context, name, guildID string) error {
	key := nameKey{name: name, guildID: guildID}

	r.mu.RLock()
	id, ok := r.names[key]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrCommandNotFound, name)
	}

	if err := r.deleteRemote(ctx, guildID, id); err != nil {
		metrics.RegistryOperations.WithLabelValues("delete", "failure").Inc()
		return err
	}
	metrics.RegistryOperations.WithLabelValues("delete", "success").Inc()

	r.mu.Lock()
	delete(r.entries, id)
	delete(r.names, key)
	r.mu.Unlock()

	r.log.Info("Removed command", "name", name, "id", id, "guild", guildID)
	return nil
}

// Get returns the live entry for a name in a scope, or false.
func (r *Registry) Get(name, guildID string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.names[nameKey{name: name, guildID: guildID}]
	if !ok {
		return nil, false
	}
	return r.entries[id], true
}

// Lookup returns the entry for a remote command id, or false. This is the
// dispatcher's hot path.
func (r *Registry) Lookup(remoteID string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[remoteID]
	return e, ok
}

// All returns every live entry, ordered by name for stable iteration.
func (r *Registry) All() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Command.Name() != out[j].Command.Name() {
			return out[i].Command.Name() < out[j].Command.Name()
		}
		return out[i].GuildID < out[j].GuildID
	})
	return out
}

// adopt records an entry without a remote call; the sync path uses it for
// commands whose remote registration is already current.
func (r *Registry) adopt(e *Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store(e)
}

// store must run under mu.
func (r *Registry) store(e *Entry) {
	key := nameKey{name: e.Command.Name(), guildID: e.GuildID}
	if old, ok := r.names[key]; ok && old != e.RemoteID {
		delete(r.entries, old)
	}
	r.entries[e.RemoteID] = e
	r.names[key] = e.RemoteID
}

func (r *Registry) createRemote(ctx context.Context, cmd *appcmd.Command) (*discordgo.ApplicationCommand, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	created, err := r.session.ApplicationCommandCreate(r.appID, cmd.GuildID, cmd.ToApplication(), discordgo.WithContext(callCtx))
	if err != nil {
		return nil, r.classify(err, fmt.Sprintf("creating command %q", cmd.Name()))
	}
	return created, nil
}

func (r *Registry) deleteRemote(ctx context.Context, guildID, remoteID string) error {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.session.ApplicationCommandDelete(r.appID, guildID, remoteID, discordgo.WithContext(callCtx)); err != nil {
		return r.classify(err, fmt.Sprintf("deleting command %s", remoteID))
	}
	return nil
}

// classify maps a hit deadline onto the registration-timeout condition so
// callers can branch on it with errors.Is.
func (r *Registry) classify(err error, op string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrRegistrationTimeout, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
