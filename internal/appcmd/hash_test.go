package appcmd

import "testing"

func buildHashCommand(desc string) *Command {
	cmd, _ := New("roll", noopHandler)
	return cmd.WithDescription(desc).WithOptions(
		MustOption("sides", "Die size", OptionInteger, false).
			WithChoices(NewChoice("d6", int64(6)), NewChoice("d20", int64(20))),
	)
}

func TestHash_Deterministic(t *testing.T) {
	a := buildHashCommand("Roll a die")
	b := buildHashCommand("Roll a die")

	if a.Hash() == "" {
		t.Fatal("Expected non-empty hash")
	}
	if a.Hash() != b.Hash() {
		t.Errorf("Equal definitions hash differently: %s vs %s", a.Hash(), b.Hash())
	}
}

func TestHash_ChangesWithDefinition(t *testing.T) {
	base := buildHashCommand("Roll a die")

	changedDesc := buildHashCommand("Roll some dice")
	if base.Hash() == changedDesc.Hash() {
		t.Error("Description change did not change the hash")
	}

	changedOpts := buildHashCommand("Roll a die").
		WithOptions(MustOption("times", "How many", OptionInteger, false))
	if base.Hash() == changedOpts.Hash() {
		t.Error("Option change did not change the hash")
	}
}

func TestHash_MatchesHashApplication(t *testing.T) {
	cmd := buildHashCommand("Roll a die")
	if cmd.Hash() != HashApplication(cmd.ToApplication()) {
		t.Error("Local definition and its wire descriptor hash differently")
	}
}

func TestHash_IgnoresHandlerAndScope(t *testing.T) {
	a := buildHashCommand("Roll a die")
	b := buildHashCommand("Roll a die").WithGuild("123")
	b.Handler = nil

	// Only wire-visible fields participate; scope and handler do not.
	if a.Hash() != b.Hash() {
		t.Error("Hash depends on non-wire fields")
	}
}
