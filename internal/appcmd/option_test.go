package appcmd

import "testing"

func TestNewOption_RejectsInvalidType(t *testing.T) {
	if _, err := NewOption("bad", "desc", OptionType(0), false); err == nil {
		t.Error("Expected error for option type 0")
	}
	if _, err := NewOption("bad", "desc", OptionType(11), false); err == nil {
		t.Error("Expected error for option type 11")
	}
	if _, err := NewOption("bad", "desc", OptionType(-1), false); err == nil {
		t.Error("Expected error for option type -1")
	}
}

func TestNewOption_DefaultsDescription(t *testing.T) {
	opt, err := NewOption("text", "", OptionString, true)
	if err != nil {
		t.Fatalf("NewOption failed: %v", err)
	}
	if opt.Description != DefaultDescription {
		t.Errorf("Expected default description, got %q", opt.Description)
	}
}

func TestMustOption_PanicsOnInvalidType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected MustOption to panic for invalid type")
		}
	}()
	MustOption("bad", "desc", OptionType(99), false)
}

func TestNewChoice_ValueFallsBackToName(t *testing.T) {
	c := NewChoice("easy", nil)
	if c.Value != "easy" {
		t.Errorf("Expected value to fall back to name, got %v", c.Value)
	}

	c = NewChoice("d20", int64(20))
	if c.Value != int64(20) {
		t.Errorf("Expected explicit value to be kept, got %v", c.Value)
	}
}

func TestOption_WithChoices_CopiesSlice(t *testing.T) {
	shared := []Choice{NewChoice("a", nil), NewChoice("b", nil)}

	first := MustOption("one", "", OptionString, false).WithChoices(shared...)
	second := MustOption("two", "", OptionString, false).WithChoices(shared...)

	// Mutating one option's choices must not leak into the other.
	first.Choices[0].Name = "mutated"

	if second.Choices[0].Name != "a" {
		t.Errorf("Choices are shared across options: got %q", second.Choices[0].Name)
	}
	if shared[0].Name != "a" {
		t.Errorf("Choices mutated the caller's slice: got %q", shared[0].Name)
	}
}

func TestOption_WithDefault(t *testing.T) {
	opt := MustOption("sides", "", OptionInteger, false).WithDefault(int64(6))
	if opt.Default != int64(6) {
		t.Errorf("Expected default 6, got %v", opt.Default)
	}
}

func TestOption_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		wantErr bool
	}{
		{"valid", Option{Name: "x", Type: OptionString}, false},
		{"missing name", Option{Type: OptionString}, true},
		{"invalid type", Option{Name: "x", Type: OptionType(0)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opt.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionType_String(t *testing.T) {
	if got := OptionUser.String(); got != "user" {
		t.Errorf("Expected \"user\", got %q", got)
	}
	if got := OptionType(42).String(); got != "OptionType(42)" {
		t.Errorf("Expected fallback formatting, got %q", got)
	}
}
