package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOwner(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantKind   OwnerKind
		wantPlayer string
		wantErr    bool
	}{
		{"shared lower", "shared", OwnerShared, "", false},
		{"shared padded", " shared ", OwnerShared, "", false},
		{"mixed case is a player", "Shared", OwnerPlayer, "Shared", false},
		{"upper case is a player", "SHARED", OwnerPlayer, "SHARED", false},
		{"player id", "p1", OwnerPlayer, "p1", false},
		{"empty", "", 0, "", true},
		{"whitespace", "   ", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOwner(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, got.Kind())
			assert.Equal(t, tt.wantPlayer, got.PlayerID())
			assert.True(t, got.Valid())
		})
	}
}

func TestOwner_ZeroValueInvalid(t *testing.T) {
	var o Owner
	assert.False(t, o.Valid())
	assert.False(t, PlayerOwner("").Valid())

	_, err := o.MarshalText()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOwner_JSONRoundTrip(t *testing.T) {
	type wrapper struct {
		From Owner `json:"from"`
		To   Owner `json:"to"`
	}

	data, err := json.Marshal(wrapper{From: PlayerOwner("p1"), To: SharedOwner()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"p1","to":"shared"}`, string(data))

	var decoded wrapper
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.From.IsPlayer("p1"))
	assert.True(t, decoded.To.IsShared())
}
