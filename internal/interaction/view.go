package interaction

import "github.com/bwmarrin/discordgo"

// Item is one interactive element inside a view (button, select). CustomID
// returns the element's explicitly-provided custom id, or "" when the view
// generated one internally; only explicit ids are bound for dispatch.
type Item interface {
	CustomID() string
	RefreshState(i *discordgo.InteractionCreate)
}

// View renders a set of interactive components. Rendering and per-item
// routing belong to the view implementation; the kit only stores bindings
// and hands events back.
type View interface {
	Components() []discordgo.MessageComponent
	Children() []Item
	DispatchItem(item Item, s ResponseSession, i *discordgo.InteractionCreate)
}

// Binder records a custom id → (view, item) binding so later component
// interactions can find their way back. The dispatcher's component table
// implements it.
type Binder interface {
	Bind(customID string, view View, item Item)
}
