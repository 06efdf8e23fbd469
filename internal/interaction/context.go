package interaction

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// ResponseSession is the slice of the host session a context needs to answer
// an interaction.
type ResponseSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionResponseDelete(interaction *discordgo.Interaction, options ...discordgo.RequestOption) error
}

// ChannelResolver resolves a channel, cache first then fetch.
type ChannelResolver interface {
	ResolveChannel(guildID, channelID string) (*discordgo.Channel, error)
}

// Message is the payload of a reply, follow-up or edit.
type Message struct {
	Content   string
	Embed     *discordgo.MessageEmbed
	View      View
	Ephemeral bool
}

// Context is the one-shot helper handed to a command handler for a single
// inbound interaction. It carries the interaction metadata and the response
// operations against the platform's callback/webhook endpoints.
type Context struct {
	Session ResponseSession
	Event   *discordgo.InteractionCreate

	ID            string
	Token         string
	ApplicationID string
	Version       int
	GuildID       string
	ChannelID     string
	User          *discordgo.User
	Member        *discordgo.Member

	binder   Binder
	channels ChannelResolver
	channel  *discordgo.Channel
}

// NewContext copies the event's metadata into a fresh context. In guilds the
// invoking user arrives as a member; in DMs as a bare user.
func NewContext(s ResponseSession, i *discordgo.InteractionCreate, binder Binder, channels ChannelResolver) *Context {
	ctx := &Context{
		Session:       s,
		Event:         i,
		ID:            i.ID,
		Token:         i.Token,
		ApplicationID: i.AppID,
		Version:       i.Version,
		GuildID:       i.GuildID,
		ChannelID:     i.ChannelID,
		binder:        binder,
		channels:      channels,
	}
	if i.Member != nil {
		ctx.Member = i.Member
		ctx.User = i.Member.User
	} else {
		ctx.User = i.User
	}
	return ctx
}

// Reply sends the first response to the interaction (callback type 4). The
// platform rejects a second first-response; that constraint is not enforced
// locally.
func (c *Context) Reply(msg Message) error {
	return c.Session.InteractionRespond(c.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: c.responseData(msg),
	})
}

// Defer acknowledges the interaction without content (callback type 5); the
// platform then expects an Edit within the token's lifetime.
func (c *Context) Defer(ephemeral bool) error {
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}
	if ephemeral {
		resp.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	return c.Session.InteractionRespond(c.Event.Interaction, resp)
}

// Follow sends an additional message after the first response.
func (c *Context) Follow(msg Message) error {
	params := &discordgo.WebhookParams{Content: msg.Content}
	if msg.Ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	if msg.Embed != nil {
		params.Embeds = []*discordgo.MessageEmbed{msg.Embed}
	}
	if msg.View != nil {
		params.Components = msg.View.Components()
		c.bindView(msg.View)
	}
	_, err := c.Session.FollowupMessageCreate(c.Event.Interaction, true, params)
	return err
}

// Edit replaces the original response message.
func (c *Context) Edit(msg Message) error {
	edit := &discordgo.WebhookEdit{Content: &msg.Content}
	if msg.Embed != nil {
		edit.Embeds = &[]*discordgo.MessageEmbed{msg.Embed}
	}
	if msg.View != nil {
		comps := msg.View.Components()
		edit.Components = &comps
		c.bindView(msg.View)
	}
	_, err := c.Session.InteractionResponseEdit(c.Event.Interaction, edit)
	return err
}

// Delete removes the original response message.
func (c *Context) Delete() error {
	return c.Session.InteractionResponseDelete(c.Event.Interaction)
}

// Channel resolves the invoking channel, cache first then fetch.
func (c *Context) Channel() (*discordgo.Channel, error) {
	if c.channel != nil {
		return c.channel, nil
	}
	if c.channels == nil {
		return nil, fmt.Errorf("no channel resolver configured")
	}
	ch, err := c.channels.ResolveChannel(c.GuildID, c.ChannelID)
	if err != nil {
		return nil, err
	}
	c.channel = ch
	return ch, nil
}

func (c *Context) responseData(msg Message) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{Content: msg.Content}
	if msg.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if msg.Embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{msg.Embed}
	}
	if msg.View != nil {
		data.Components = msg.View.Components()
		c.bindView(msg.View)
	}
	return data
}

// bindView registers every child carrying an explicit custom id so component
// interactions route back to the view.
func (c *Context) bindView(v View) {
	if c.binder == nil {
		return
	}
	for _, item := range v.Children() {
		if id := item.CustomID(); id != "" {
			c.binder.Bind(id, v, item)
		}
	}
}
