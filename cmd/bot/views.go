package main

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"slash-command-kit/internal/dispatch"
	"slash-command-kit/internal/interaction"
)

// button is a single pressable component. It remembers the last interaction
// that touched it so the view can answer with an update response.
type button struct {
	id    string
	label string
	style discordgo.ButtonStyle
	event *discordgo.InteractionCreate
}

func (b *button) CustomID() string { return b.id }

func (b *button) RefreshState(i *discordgo.InteractionCreate) { b.event = i }

func (b *button) render() discordgo.MessageComponent {
	return discordgo.Button{
		Label:    b.label,
		Style:    b.style,
		CustomID: b.id,
	}
}

// confirmView shows Yes/No buttons and answers the first press with an
// update that removes the components. It releases its bindings as soon as
// either button fires, so stale ids stop routing immediately instead of
// waiting for TTL eviction.
type confirmView struct {
	yes   *button
	no    *button
	comps *dispatch.ComponentTable
}

func newConfirmView(interactionID string, comps *dispatch.ComponentTable) *confirmView {
	return &confirmView{
		yes: &button{
			id:    "confirm:yes:" + interactionID,
			label: "Yes",
			style: discordgo.SuccessButton,
		},
		no: &button{
			id:    "confirm:no:" + interactionID,
			label: "No",
			style: discordgo.DangerButton,
		},
		comps: comps,
	}
}

func (v *confirmView) Components() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				v.yes.render(),
				v.no.render(),
			},
		},
	}
}

func (v *confirmView) Children() []interaction.Item {
	return []interaction.Item{v.yes, v.no}
}

func (v *confirmView) DispatchItem(item interaction.Item, s interaction.ResponseSession, i *discordgo.InteractionCreate) {
	content := "Cancelled."
	if item == v.yes {
		content = "Confirmed."
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		slog.Error("failed to answer confirm button", "custom_id", item.CustomID(), "error", err)
		return
	}
	if v.comps != nil {
		v.comps.ReleaseView(v)
	}
}
