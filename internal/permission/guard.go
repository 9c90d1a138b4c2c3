// Package permission decides who may move items between owners.
package permission

import "github.com/osse101/LootVault_Go/internal/domain"

// CanMove reports whether a requester acting in role may move an item from one
// owner to another. A DM may move between any two owners; campaign ownership is
// checked by the caller. A player may only trade between their own inventory and
// the shared pool.
func CanMove(role domain.Role, requesterID string, from, to domain.Owner) bool {
	if requesterID == "" || !from.Valid() || !to.Valid() {
		return false
	}

	switch role {
	case domain.RoleDM:
		return true
	case domain.RolePlayer:
		return playerCanMove(requesterID, from, to)
	}
	return false
}

func playerCanMove(requesterID string, from, to domain.Owner) bool {
	switch from.Kind() {
	case domain.OwnerShared:
		return to.IsPlayer(requesterID)
	case domain.OwnerPlayer:
		return from.IsPlayer(requesterID) && to.IsShared()
	}
	return false
}

// CanEdit reports whether a requester may add, edit or delete items held by owner.
func CanEdit(role domain.Role, requesterID string, owner domain.Owner) bool {
	if requesterID == "" || !owner.Valid() {
		return false
	}

	switch role {
	case domain.RoleDM:
		return true
	case domain.RolePlayer:
		switch owner.Kind() {
		case domain.OwnerShared:
			return true
		case domain.OwnerPlayer:
			return owner.IsPlayer(requesterID)
		}
	}
	return false
}

// CanReplaceSharedLoot reports whether role may overwrite the whole shared
// pool in one call. Only the DM may; players change shared items one at a time.
func CanReplaceSharedLoot(role domain.Role) bool {
	return role == domain.RoleDM
}

// RoleIn returns the role userID holds inside campaign: the owner acts as DM
// and members act as players. ok is false for anyone else.
func RoleIn(campaign domain.Campaign, userID string) (role domain.Role, ok bool) {
	switch {
	case userID == "":
		return "", false
	case campaign.IsOwner(userID):
		return domain.RoleDM, true
	case campaign.HasMember(userID):
		return domain.RolePlayer, true
	}
	return "", false
}
