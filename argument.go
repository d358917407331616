package beans

import (
	"encoding/json"
	"fmt"
)

// ArgumentKind says how the raw value of an Argument is interpreted.
type ArgumentKind int

const (
	// Literal arguments carry a raw string converted to the parameter type.
	Literal ArgumentKind = iota

	// Reference arguments carry the id of another bean.
	Reference
)

// String returns the string representation of the ArgumentKind.
func (k ArgumentKind) String() string {
	switch k {
	case Literal:
		return "Literal"
	case Reference:
		return "Reference"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// IsValid checks if the argument kind is valid.
func (k ArgumentKind) IsValid() bool {
	return k >= Literal && k <= Reference
}

// MarshalText implements encoding.TextMarshaler.
func (k ArgumentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ArgumentKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Literal", "literal", "value":
		*k = Literal
	case "Reference", "reference", "ref":
		*k = Reference
	default:
		return fmt.Errorf("invalid argument kind: %q", string(text))
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (k ArgumentKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *ArgumentKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	return k.UnmarshalText([]byte(s))
}

// Argument is a constructor or property argument: a literal string or the id
// of another bean.
type Argument struct {
	Value string
	Kind  ArgumentKind
}

// LiteralArg returns a literal Argument.
func LiteralArg(value string) Argument {
	return Argument{Value: value, Kind: Literal}
}

// RefArg returns an Argument referencing the bean with the given id.
func RefArg(id string) Argument {
	return Argument{Value: id, Kind: Reference}
}

// IsReference reports whether the argument points at another bean.
func (a Argument) IsReference() bool {
	return a.Kind == Reference
}

func (a Argument) String() string {
	if a.IsReference() {
		return "ref:" + a.Value
	}
	return fmt.Sprintf("%q", a.Value)
}

// newArgument builds an Argument from the value/ref pair of a declaration.
// Exactly one side must be set.
func newArgument(value, ref string) (Argument, error) {
	switch {
	case value != "" && ref != "":
		return Argument{}, ErrArgumentValueConflict
	case value != "":
		return LiteralArg(value), nil
	case ref != "":
		return RefArg(ref), nil
	default:
		return Argument{}, ErrArgumentValueMissing
	}
}
