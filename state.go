package beans

import (
	"encoding/json"
	"fmt"
)

// State is where a Definition is in its lifecycle:
//
//	Declared -> Resolvable -> Instantiated -> Ready
//
// Failed is terminal and reached when construction or property injection
// returns an error.
type State int

const (
	// Declared definitions still wait for referenced beans.
	Declared State = iota

	// Resolvable definitions have no pending dependencies left.
	Resolvable

	// Instantiated definitions have an instance whose properties are not
	// injected yet.
	Instantiated

	// Ready definitions hold their finished instance.
	Ready

	// Failed definitions could not be built.
	Failed
)

// String returns the string representation of the State.
func (s State) String() string {
	switch s {
	case Declared:
		return "Declared"
	case Resolvable:
		return "Resolvable"
	case Instantiated:
		return "Instantiated"
	case Ready:
		return "Ready"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// IsValid checks if the state is valid.
func (s State) IsValid() bool {
	return s >= Declared && s <= Failed
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	for candidate := Declared; candidate <= Failed; candidate++ {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("invalid bean state: %q", string(text))
}

// MarshalJSON implements json.Marshaler.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *State) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}

	return s.UnmarshalText([]byte(text))
}
