package main

import (
	"testing"

	"slash-command-kit/internal/dispatch"

	"github.com/bwmarrin/discordgo"
)

func TestCommands_AllValid(t *testing.T) {
	cmds := Commands("guild-1", dispatch.NewComponentTable(0))

	if len(cmds) == 0 {
		t.Fatal("Expected a non-empty command set")
	}

	seen := make(map[string]bool)
	for _, cmd := range cmds {
		if err := cmd.Validate(); err != nil {
			t.Errorf("Command %q failed validation: %v", cmd.Name(), err)
		}
		if cmd.GuildID != "guild-1" {
			t.Errorf("Command %q declares scope %q, want guild-1", cmd.Name(), cmd.GuildID)
		}
		if seen[cmd.Name()] {
			t.Errorf("Command %q declared twice", cmd.Name())
		}
		seen[cmd.Name()] = true
	}
}

func TestCommands_ExpectedSet(t *testing.T) {
	cmds := Commands("", dispatch.NewComponentTable(0))

	want := []string{"ping", "echo", "roll", "whois", "confirm"}
	if len(cmds) != len(want) {
		t.Fatalf("Expected %d commands, got %d", len(want), len(cmds))
	}
	for i, name := range want {
		if cmds[i].Name() != name {
			t.Errorf("Command %d: expected %q, got %q", i, name, cmds[i].Name())
		}
	}
}

func TestCommands_RollOptionsFromBinding(t *testing.T) {
	cmds := Commands("", dispatch.NewComponentTable(0))

	for _, cmd := range cmds {
		if cmd.Name() != "roll" {
			continue
		}
		if len(cmd.Options) != 1 {
			t.Fatalf("Expected roll to declare one option, got %d", len(cmd.Options))
		}
		opt := cmd.Options[0]
		if opt.Name != "sides" || opt.Required {
			t.Errorf("Expected optional \"sides\" option, got %+v", opt)
		}
		if len(opt.Choices) != 3 {
			t.Errorf("Expected 3 die choices, got %d", len(opt.Choices))
		}
		if opt.Default != int64(6) {
			t.Errorf("Expected default d6, got %v", opt.Default)
		}
		return
	}
	t.Fatal("roll command not found")
}

func TestRollDie_Bounds(t *testing.T) {
	for i := 0; i < 200; i++ {
		got := rollDie(20)
		if got < 1 || got > 20 {
			t.Fatalf("rollDie(20) out of range: %d", got)
		}
	}

	if got := rollDie(0); got < 1 || got > 6 {
		t.Errorf("rollDie with bad sides should fall back to d6, got %d", got)
	}
}

func TestConfirmView_RendersTwoButtons(t *testing.T) {
	view := newConfirmView("int-1", dispatch.NewComponentTable(0))

	children := view.Children()
	if len(children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(children))
	}
	if children[0].CustomID() != "confirm:yes:int-1" || children[1].CustomID() != "confirm:no:int-1" {
		t.Errorf("Unexpected custom ids: %q, %q", children[0].CustomID(), children[1].CustomID())
	}

	comps := view.Components()
	if len(comps) != 1 {
		t.Fatalf("Expected one action row, got %d components", len(comps))
	}
	row, ok := comps[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("Expected an ActionsRow, got %T", comps[0])
	}
	if len(row.Components) != 2 {
		t.Errorf("Expected 2 buttons in the row, got %d", len(row.Components))
	}
}

type confirmSession struct {
	lastResponse *discordgo.InteractionResponse
}

func (s *confirmSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	s.lastResponse = resp
	return nil
}

func (s *confirmSession) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, _ *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{}, nil
}

func (s *confirmSession) InteractionResponseEdit(_ *discordgo.Interaction, _ *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{}, nil
}

func (s *confirmSession) InteractionResponseDelete(_ *discordgo.Interaction, _ ...discordgo.RequestOption) error {
	return nil
}

func TestConfirmView_YesUpdatesAndReleases(t *testing.T) {
	table := dispatch.NewComponentTable(0)
	view := newConfirmView("int-1", table)

	for _, child := range view.Children() {
		table.Bind(child.CustomID(), view, child)
	}

	session := &confirmSession{}
	event := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{Type: discordgo.InteractionMessageComponent},
	}
	view.DispatchItem(view.yes, session, event)

	if session.lastResponse == nil {
		t.Fatal("Expected a response to the button press")
	}
	if session.lastResponse.Type != discordgo.InteractionResponseUpdateMessage {
		t.Errorf("Expected an update response, got type %d", session.lastResponse.Type)
	}
	if session.lastResponse.Data.Content != "Confirmed." {
		t.Errorf("Expected \"Confirmed.\", got %q", session.lastResponse.Data.Content)
	}
	if table.Len() != 0 {
		t.Errorf("Expected bindings to be released after the press, got %d", table.Len())
	}
}

func TestConfirmView_NoCancels(t *testing.T) {
	view := newConfirmView("int-1", dispatch.NewComponentTable(0))

	session := &confirmSession{}
	event := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{Type: discordgo.InteractionMessageComponent},
	}
	view.DispatchItem(view.no, session, event)

	if session.lastResponse == nil || session.lastResponse.Data.Content != "Cancelled." {
		t.Error("Expected the No button to answer with \"Cancelled.\"")
	}
}

func TestRegisterExtensions(t *testing.T) {
	// The uptime extension must produce a loadable command.
	setup := uptimeSetup("guild-1")
	cmd, err := setup(nil)
	if err != nil {
		t.Fatalf("uptime setup failed: %v", err)
	}
	if cmd.Name() != "uptime" {
		t.Errorf("Expected command \"uptime\", got %q", cmd.Name())
	}
	if cmd.GuildID != "guild-1" {
		t.Errorf("Expected guild scope, got %q", cmd.GuildID)
	}
	if err := cmd.Validate(); err != nil {
		t.Errorf("uptime command failed validation: %v", err)
	}
}
