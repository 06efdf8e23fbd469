// Package extension loads commands from host-registered plugin factories.
// There is no import-by-name machinery: the host application registers every
// extension's setup function explicitly at startup, and the loader only
// resolves names against that table.
package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"slash-command-kit/internal/appcmd"
)

var (
	// ErrExtensionNotFound: no setup function was registered under the name.
	ErrExtensionNotFound = errors.New("extension not found")

	// ErrLoadFailed: the setup function failed, panicked, or produced nothing.
	ErrLoadFailed = errors.New("extension load failed")

	// ErrExtensionNotLoaded: reload or unload of a name never loaded.
	ErrExtensionNotLoaded = errors.New("extension not loaded")
)

// Registrar is the slice of the command registry the loader drives.
type Registrar interface {
	Add(ctx context.Context, cmd *appcmd.Command) error
	Reload(cmd *appcmd.Command) error
	Remove(ctx context.Context, name, guildID string) error
}

// SetupFunc builds an extension's command, ready for registration.
type SetupFunc func(r Registrar) (*appcmd.Command, error)

type loadedCommand struct {
	name    string
	guildID string
}

// Loader maps extension names to setup functions and tracks what each one
// registered so teardown knows what to remove.
type Loader struct {
	reg Registrar
	log *slog.Logger

	mu        sync.Mutex
	factories map[string]SetupFunc
	loaded    map[string]loadedCommand
}

func NewLoader(reg Registrar, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		reg:       reg,
		log:       log,
		factories: make(map[string]SetupFunc),
		loaded:    make(map[string]loadedCommand),
	}
}

// Register adds a setup function under a name. Called by the host at
// startup; registering is not loading.
func (l *Loader) Register(name string, setup SetupFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.factories[name] = setup
}

// Load runs an extension's setup and registers the resulting command.
// Registration failures (name collisions and the like) propagate unwrapped
// so callers can branch on the registry's conditions.
func (l *Loader) Load(ctx context.Context, name string) error {
	l.mu.Lock()
	setup, ok := l.factories[name]
	l.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrExtensionNotFound, name)
	}

	cmd, err := runSetup(setup, l.reg)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrLoadFailed, name, err)
	}
	cmd.Extension = name

	if err := l.reg.Add(ctx, cmd); err != nil {
		return err
	}

	l.mu.Lock()
	l.loaded[name] = loadedCommand{name: cmd.Name(), guildID: cmd.GuildID}
	l.mu.Unlock()

	l.log.Info("Loaded extension", "extension", name, "command", cmd.Name())
	return nil
}

// Reload re-runs setup and hot-swaps the command definition in place.
func (l *Loader) Reload(ctx context.Context, name string) error {
	l.mu.Lock()
	_, wasLoaded := l.loaded[name]
	setup, ok := l.factories[name]
	l.mu.Unlock()
	if !wasLoaded {
		return fmt.Errorf("%w: %q", ErrExtensionNotLoaded, name)
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrExtensionNotFound, name)
	}

	cmd, err := runSetup(setup, l.reg)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrLoadFailed, name, err)
	}
	cmd.Extension = name

	if err := l.reg.Reload(cmd); err != nil {
		return err
	}

	l.mu.Lock()
	l.loaded[name] = loadedCommand{name: cmd.Name(), guildID: cmd.GuildID}
	l.mu.Unlock()

	l.log.Info("Reloaded extension", "extension", name, "command", cmd.Name())
	return nil
}

// Unload removes the extension's command and forgets it.
func (l *Loader) Unload(ctx context.Context, name string) error {
	l.mu.Lock()
	lc, ok := l.loaded[name]
	l.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrExtensionNotLoaded, name)
	}

	if err := l.reg.Remove(ctx, lc.name, lc.guildID); err != nil {
		return err
	}

	l.mu.Lock()
	delete(l.loaded, name)
	l.mu.Unlock()

	l.log.Info("Unloaded extension", "extension", name, "command", lc.name)
	return nil
}

// LoadAll loads every registered extension, skipping (and logging) the ones
// that fail: one broken extension must not keep the bot from starting.
func (l *Loader) LoadAll(ctx context.Context) {
	l.mu.Lock()
	names := make([]string, 0, len(l.factories))
	for name := range l.factories {
		names = append(names, name)
	}
	l.mu.Unlock()

	for _, name := range names {
		if err := l.Load(ctx, name); err != nil {
			l.log.Error("Skipping extension", "extension", name, "error", err)
		}
	}
}

// runSetup shields the loader from a panicking setup function.
func runSetup(setup SetupFunc, reg Registrar) (cmd *appcmd.Command, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("setup panicked: %v", r)
		}
	}()
	cmd, err = setup(reg)
	if err != nil {
		return nil, err
	}
	if cmd == nil {
		return nil, fmt.Errorf("setup returned no command")
	}
	return cmd, nil
}
