package domain

import (
	"fmt"
	"strings"
)

// SharedOwnerToken is the wire spelling of the shared loot pool.
const SharedOwnerToken = "shared"

// OwnerKind tags which variant an Owner holds.
type OwnerKind int

const (
	// OwnerShared is the campaign-wide loot pool.
	OwnerShared OwnerKind = iota + 1
	// OwnerPlayer is one player's inventory.
	OwnerPlayer
)

func (k OwnerKind) String() string {
	switch k {
	case OwnerShared:
		return "shared"
	case OwnerPlayer:
		return "player"
	}
	return "invalid"
}

// Owner is the holder of an item: either the shared pool or a specific player.
// The zero value is invalid.
type Owner struct {
	kind     OwnerKind
	playerID string
}

// SharedOwner returns the shared-pool variant.
func SharedOwner() Owner {
	return Owner{kind: OwnerShared}
}

// PlayerOwner returns the player variant for playerID.
func PlayerOwner(playerID string) Owner {
	return Owner{kind: OwnerPlayer, playerID: playerID}
}

// ParseOwner reads the wire form: exactly "shared" or a player id. Other
// spellings such as "Shared" are player ids.
func ParseOwner(s string) (Owner, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Owner{}, fmt.Errorf("%w: owner is required", ErrValidation)
	case s == SharedOwnerToken:
		return SharedOwner(), nil
	default:
		return PlayerOwner(s), nil
	}
}

// Kind returns the variant tag.
func (o Owner) Kind() OwnerKind {
	return o.kind
}

// PlayerID returns the player id for the player variant and "" otherwise.
func (o Owner) PlayerID() string {
	return o.playerID
}

// IsShared reports whether o is the shared pool.
func (o Owner) IsShared() bool {
	return o.kind == OwnerShared
}

// IsPlayer reports whether o is the inventory of playerID.
func (o Owner) IsPlayer(playerID string) bool {
	return o.kind == OwnerPlayer && o.playerID == playerID
}

// Valid reports whether o is one of the two variants.
func (o Owner) Valid() bool {
	switch o.kind {
	case OwnerShared:
		return true
	case OwnerPlayer:
		return o.playerID != ""
	}
	return false
}

func (o Owner) String() string {
	switch o.kind {
	case OwnerShared:
		return SharedOwnerToken
	case OwnerPlayer:
		return o.playerID
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (o Owner) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: invalid owner", ErrValidation)
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Owner) UnmarshalText(text []byte) error {
	parsed, err := ParseOwner(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
