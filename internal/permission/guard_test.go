package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/LootVault_Go/internal/domain"
)

func TestCanMove(t *testing.T) {
	shared := domain.SharedOwner()
	p1 := domain.PlayerOwner("p1")
	p2 := domain.PlayerOwner("p2")

	tests := []struct {
		name      string
		role      domain.Role
		requester string
		from, to  domain.Owner
		want      bool
	}{
		{"dm shared to player", domain.RoleDM, "d1", shared, p1, true},
		{"dm player to player", domain.RoleDM, "d1", p1, p2, true},
		{"dm player to shared", domain.RoleDM, "d1", p2, shared, true},
		{"player own to shared", domain.RolePlayer, "p1", p1, shared, true},
		{"player shared to own", domain.RolePlayer, "p1", shared, p1, true},
		{"player own to other player", domain.RolePlayer, "p1", p1, p2, false},
		{"player other to shared", domain.RolePlayer, "p1", p2, shared, false},
		{"player shared to other", domain.RolePlayer, "p1", shared, p2, false},
		{"player own to own", domain.RolePlayer, "p1", p1, p1, false},
		{"player shared to shared", domain.RolePlayer, "p1", shared, shared, false},
		{"player between two others", domain.RolePlayer, "p1", p2, domain.PlayerOwner("p3"), false},
		{"unknown role", domain.Role("guest"), "p1", p1, shared, false},
		{"empty requester", domain.RoleDM, "", shared, p1, false},
		{"invalid owner", domain.RoleDM, "d1", domain.Owner{}, p1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMove(tt.role, tt.requester, tt.from, tt.to))
		})
	}
}

// Exhaustive check over a small universe: a player may move only when one side
// is themselves and the other side is the shared pool.
func TestCanMove_PlayerProperty(t *testing.T) {
	owners := []domain.Owner{
		domain.SharedOwner(),
		domain.PlayerOwner("p1"),
		domain.PlayerOwner("p2"),
		domain.PlayerOwner("p3"),
	}

	for _, requester := range []string{"p1", "p2"} {
		for _, from := range owners {
			for _, to := range owners {
				want := (from.IsPlayer(requester) && to.IsShared()) ||
					(to.IsPlayer(requester) && from.IsShared())
				assert.Equal(t, want, CanMove(domain.RolePlayer, requester, from, to),
					"requester=%s from=%s to=%s", requester, from, to)
			}
		}
	}
}

func TestCanEdit(t *testing.T) {
	assert.True(t, CanEdit(domain.RoleDM, "d1", domain.PlayerOwner("p1")))
	assert.True(t, CanEdit(domain.RolePlayer, "p1", domain.PlayerOwner("p1")))
	assert.True(t, CanEdit(domain.RolePlayer, "p1", domain.SharedOwner()))
	assert.False(t, CanEdit(domain.RolePlayer, "p1", domain.PlayerOwner("p2")))
	assert.False(t, CanEdit(domain.RolePlayer, "p1", domain.Owner{}))
}

func TestCanReplaceSharedLoot(t *testing.T) {
	assert.True(t, CanReplaceSharedLoot(domain.RoleDM))
	assert.False(t, CanReplaceSharedLoot(domain.RolePlayer))
	assert.False(t, CanReplaceSharedLoot(""))
}

func TestRoleIn(t *testing.T) {
	c := domain.Campaign{OwnerID: "d1", MemberIDs: []string{"p1"}}

	role, ok := RoleIn(c, "d1")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleDM, role)

	role, ok = RoleIn(c, "p1")
	assert.True(t, ok)
	assert.Equal(t, domain.RolePlayer, role)

	_, ok = RoleIn(c, "stranger")
	assert.False(t, ok)
	_, ok = RoleIn(c, "")
	assert.False(t, ok)
}
