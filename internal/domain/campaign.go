package domain

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CampaignIDLength is the length of generated campaign ids.
const CampaignIDLength = 8

// CampaignIDAlphabet is the character set of generated campaign ids.
const CampaignIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var campaignIDCaser = cases.Upper(language.Und)

// NormalizeCampaignID makes campaign id lookups case-insensitive.
func NormalizeCampaignID(id string) string {
	return campaignIDCaser.String(strings.TrimSpace(id))
}

// Campaign is a vault shared by one DM and its players.
// OwnerID is never part of MemberIDs. MemberIDs is kept in join order.
type Campaign struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	OwnerID      string    `json:"owner_id"`
	OwnerName    string    `json:"owner_name"`
	MemberIDs    []string  `json:"member_ids"`
	SharedLoot   []Item    `json:"shared_loot"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Version      int64     `json:"version"`
}

// CampaignSummary is the listing view of a campaign.
type CampaignSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	OwnerName   string    `json:"owner_name"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasMember reports whether userID joined the campaign as a player.
func (c Campaign) HasMember(userID string) bool {
	return slices.Contains(c.MemberIDs, userID)
}

// IsOwner reports whether userID is the campaign's DM.
func (c Campaign) IsOwner(userID string) bool {
	return c.OwnerID == userID
}

// CanView reports whether userID may read the campaign.
func (c Campaign) CanView(userID string) bool {
	return c.IsOwner(userID) || c.HasMember(userID)
}

// Summary returns the listing view.
func (c Campaign) Summary() CampaignSummary {
	return CampaignSummary{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		OwnerID:     c.OwnerID,
		OwnerName:   c.OwnerName,
		MemberCount: len(c.MemberIDs),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// Clone returns a deep copy safe to mutate.
func (c Campaign) Clone() Campaign {
	out := c
	out.MemberIDs = slices.Clone(c.MemberIDs)
	if out.MemberIDs == nil {
		out.MemberIDs = []string{}
	}
	out.SharedLoot = CloneItems(c.SharedLoot)
	return out
}
