package beans

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
		valid bool
	}{
		{Declared, "Declared", true},
		{Resolvable, "Resolvable", true},
		{Instantiated, "Instantiated", true},
		{Ready, "Ready", true},
		{Failed, "Failed", true},
		{State(-1), "Unknown(-1)", false},
		{State(99), "Unknown(99)", false},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
			assert.Equal(t, tt.valid, tt.state.IsValid())
		})
	}
}

func TestState_JSON(t *testing.T) {
	for s := Declared; s <= Failed; s++ {
		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t, `"`+s.String()+`"`, string(data))

		var decoded State
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, s, decoded)
	}

	var s State
	assert.Error(t, json.Unmarshal([]byte(`"Gone"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`3`), &s))
}
