package dispatch

import (
	"log/slog"

	"slash-command-kit/internal/interaction"
	"slash-command-kit/internal/metrics"

	"github.com/bwmarrin/discordgo"
)

// ErrorHandler receives errors returned by command handlers. The dispatcher
// never swallows them and never lets them crash the event loop; this hook is
// where the host decides what handler failure means.
type ErrorHandler func(ctx *interaction.Context, command string, err error)

// Dispatcher turns one inbound interaction into exactly one handler or
// component invocation. Lookup misses are dropped silently: an event for a
// command deleted but not yet synced is a benign race, not an error.
type Dispatcher struct {
	reg     Lookup
	res     Resolver
	comps   *ComponentTable
	log     *slog.Logger
	onError ErrorHandler
}

type Option func(*Dispatcher)

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(d *Dispatcher) { d.onError = h }
}

func New(reg Lookup, res Resolver, comps *ComponentTable, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reg:   reg,
		res:   res,
		comps: comps,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.onError == nil {
		d.onError = func(_ *interaction.Context, command string, err error) {
			d.log.Error("Command handler failed", "command", command, "error", err)
		}
	}
	return d
}

// Components exposes the binding table for wiring (context binder, sweep job).
func (d *Dispatcher) Components() *ComponentTable { return d.comps }

// HandleFunc returns a function compatible with discordgo.AddHandler.
func (d *Dispatcher) HandleFunc() func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		d.Handle(s, i)
	}
}

// Handle processes interactions using the narrow session interface (for
// testing). Interaction kinds outside commands and components are ignored.
func (d *Dispatcher) Handle(s interaction.ResponseSession, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		d.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		d.handleComponent(s, i)
	}
}

func (d *Dispatcher) handleCommand(s interaction.ResponseSession, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	entry, ok := d.reg.Lookup(data.ID)
	if !ok {
		// Removed-but-not-yet-synced commands must not crash dispatch.
		metrics.DroppedInteractions.WithLabelValues("command").Inc()
		d.log.Debug("Dropping interaction for unknown command id", "id", data.ID, "name", data.Name)
		return
	}

	inv, err := resolveInvocation(entry.Command, data.Options)
	if err != nil {
		metrics.CommandDispatches.WithLabelValues(data.Name, "failure").Inc()
		d.log.Error("Could not resolve invocation", "command", data.Name, "error", err)
		return
	}

	args, err := d.decodeArgs(inv.declared, inv.payload, i.GuildID)
	if err != nil {
		metrics.CommandDispatches.WithLabelValues(inv.qualifiedName, "failure").Inc()
		d.log.Error("Could not decode arguments", "command", inv.qualifiedName, "error", err)
		return
	}

	ctx := interaction.NewContext(s, i, d.comps, d.res)
	if err := inv.handler(ctx, args); err != nil {
		metrics.CommandDispatches.WithLabelValues(inv.qualifiedName, "failure").Inc()
		d.onError(ctx, inv.qualifiedName, err)
		return
	}
	metrics.CommandDispatches.WithLabelValues(inv.qualifiedName, "success").Inc()
}

func (d *Dispatcher) handleComponent(s interaction.ResponseSession, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	view, item, ok := d.comps.Get(customID)
	if !ok {
		metrics.DroppedInteractions.WithLabelValues("component").Inc()
		d.log.Debug("Dropping component interaction with no binding", "custom_id", customID)
		return
	}

	item.RefreshState(i)
	view.DispatchItem(item, s, i)
	metrics.ComponentDispatches.WithLabelValues("success").Inc()
}
