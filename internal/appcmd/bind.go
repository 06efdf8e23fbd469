package appcmd

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Struct binding is a convenience adapter on top of the declarative option
// builder, not part of the core: it infers an option list from a tagged
// struct type and decodes Args back into a struct value. The field tag is
//
//	`slash:"name,optional" desc:"Shown in the command picker"`
//
// where the tag name defaults to the lowercased field name and fields are
// required unless marked optional.

type fieldBinding struct {
	index    int
	name     string
	optType  OptionType
	required bool
}

var (
	userType    = reflect.TypeOf((*discordgo.User)(nil))
	channelType = reflect.TypeOf((*discordgo.Channel)(nil))
	roleType    = reflect.TypeOf((*discordgo.Role)(nil))
)

// OptionsFromStruct builds options from the exported fields of proto's type,
// in field declaration order. proto must be a struct or pointer to one.
func OptionsFromStruct(proto any) ([]Option, error) {
	bindings, err := structBindings(proto)
	if err != nil {
		return nil, err
	}

	t := derefType(reflect.TypeOf(proto))
	opts := make([]Option, 0, len(bindings))
	for _, b := range bindings {
		desc := t.Field(b.index).Tag.Get("desc")
		opt, err := NewOption(b.name, desc, b.optType, b.required)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

// DecodeArgs fills dest (pointer to struct) from decoded invocation args.
// Options absent from the payload leave the field at its zero value.
func DecodeArgs(args Args, dest any) error {
	bindings, err := structBindings(dest)
	if err != nil {
		return err
	}
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer to struct")
	}
	v = v.Elem()

	for _, b := range bindings {
		raw, ok := args[b.name]
		if !ok {
			continue
		}
		field := v.Field(b.index)
		rv := reflect.ValueOf(raw)
		switch {
		case rv.Type().AssignableTo(field.Type()):
			field.Set(rv)
		case numericKind(rv.Kind()) && numericKind(field.Kind()):
			// Width conversions only; int64→string would "convert" to a rune
			// string, which is never what a binding means.
			field.Set(rv.Convert(field.Type()))
		default:
			return fmt.Errorf("option %q: cannot assign %T to field %s", b.name, raw, field.Type())
		}
	}
	return nil
}

func structBindings(proto any) ([]fieldBinding, error) {
	if proto == nil {
		return nil, fmt.Errorf("binding target is nil")
	}
	t := derefType(reflect.TypeOf(proto))
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("binding target must be a struct, got %s", t.Kind())
	}

	var bindings []fieldBinding
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("slash")
		if tag == "-" {
			continue
		}

		name := strings.ToLower(f.Name)
		required := true
		if tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				name = parts[0]
			}
			for _, p := range parts[1:] {
				if p == "optional" {
					required = false
				}
			}
		}

		optType, err := optionTypeFor(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		bindings = append(bindings, fieldBinding{index: i, name: name, optType: optType, required: required})
	}
	return bindings, nil
}

func optionTypeFor(t reflect.Type) (OptionType, error) {
	switch t {
	case userType:
		return OptionUser, nil
	case channelType:
		return OptionChannel, nil
	case roleType:
		return OptionRole, nil
	}
	switch t.Kind() {
	case reflect.String:
		return OptionString, nil
	case reflect.Int, reflect.Int32, reflect.Int64:
		return OptionInteger, nil
	case reflect.Bool:
		return OptionBoolean, nil
	case reflect.Float32, reflect.Float64:
		return OptionNumber, nil
	}
	return 0, fmt.Errorf("no option type for Go type %s", t)
}

func numericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
