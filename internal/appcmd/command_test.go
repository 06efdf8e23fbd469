package appcmd

import (
	"testing"

	"slash-command-kit/internal/interaction"
)

func noopHandler(_ *interaction.Context, _ Args) error { return nil }

func TestNew_ExplicitName(t *testing.T) {
	cmd, err := New("ping", noopHandler)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if cmd.Name() != "ping" {
		t.Errorf("Expected name \"ping\", got %q", cmd.Name())
	}
	if cmd.Description != DefaultDescription {
		t.Errorf("Expected default description, got %q", cmd.Description)
	}
}

func TestNew_DerivesNameFromHandler(t *testing.T) {
	cmd, err := New("", noopHandler)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if cmd.Name() != "noophandler" {
		t.Errorf("Expected derived name \"noophandler\", got %q", cmd.Name())
	}
}

func TestNew_RejectsAnonymousHandlerWithoutName(t *testing.T) {
	_, err := New("", func(_ *interaction.Context, _ Args) error { return nil })
	if err == nil {
		t.Error("Expected error deriving a name from an anonymous handler")
	}
}

func TestNew_RejectsNoNameNoHandler(t *testing.T) {
	if _, err := New("", nil); err == nil {
		t.Error("Expected error when neither name nor handler is given")
	}
}

func TestCommand_WithDescription_IgnoresEmpty(t *testing.T) {
	cmd, _ := New("ping", noopHandler)
	cmd.WithDescription("")
	if cmd.Description != DefaultDescription {
		t.Errorf("Empty description should keep the default, got %q", cmd.Description)
	}

	cmd.WithDescription("Check liveness")
	if cmd.Description != "Check liveness" {
		t.Errorf("Expected description to be set, got %q", cmd.Description)
	}
}

func TestCommand_Validate_Recurses(t *testing.T) {
	sub, err := NewSubCommand("show", noopHandler)
	if err != nil {
		t.Fatalf("NewSubCommand failed: %v", err)
	}
	group, err := NewSubCommandGroup("admin", sub)
	if err != nil {
		t.Fatalf("NewSubCommandGroup failed: %v", err)
	}

	cmd, _ := New("settings", nil)
	cmd.WithGroups(group)
	if err := cmd.Validate(); err != nil {
		t.Errorf("Expected valid command, got %v", err)
	}

	// An invalid option nested inside a subcommand must fail the whole command.
	sub.Options = append(sub.Options, Option{Name: "bad", Type: OptionType(0)})
	if err := cmd.Validate(); err == nil {
		t.Error("Expected validation to reject nested invalid option")
	}
}

func TestNewSubCommandGroup_RequiresName(t *testing.T) {
	if _, err := NewSubCommandGroup(""); err == nil {
		t.Error("Expected error for unnamed group")
	}
}
