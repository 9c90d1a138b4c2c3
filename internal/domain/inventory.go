package domain

import "time"

// DefaultMaxWeight is the carrying capacity given to a new inventory.
const DefaultMaxWeight = 150.0

// Inventory is one player's holdings in one campaign, keyed by (CampaignID, PlayerID).
type Inventory struct {
	CampaignID string    `json:"campaign_id"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	MaxWeight  float64   `json:"max_weight"`
	Items      []Item    `json:"items"`
	Currency   Currency  `json:"currency"`
	JoinedAt   time.Time `json:"joined_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int64     `json:"version"`
}

// InventorySummary carries derived totals for display.
type InventorySummary struct {
	PlayerID     string  `json:"player_id"`
	TotalWeight  float64 `json:"total_weight"`
	TotalValue   float64 `json:"total_value"`
	MaxWeight    float64 `json:"max_weight"`
	OverCapacity bool    `json:"over_capacity"`
	ItemCount    int     `json:"item_count"`
}

// TotalWeight is the sum of weight * quantity over all items.
func (inv Inventory) TotalWeight() float64 {
	return SumWeight(inv.Items)
}

// TotalValue is the sum of value * quantity over all items.
func (inv Inventory) TotalValue() float64 {
	return SumValue(inv.Items)
}

// Summary returns the derived totals of the inventory.
func (inv Inventory) Summary() InventorySummary {
	weight := inv.TotalWeight()
	return InventorySummary{
		PlayerID:     inv.PlayerID,
		TotalWeight:  weight,
		TotalValue:   inv.TotalValue(),
		MaxWeight:    inv.MaxWeight,
		OverCapacity: weight > inv.MaxWeight,
		ItemCount:    len(inv.Items),
	}
}

// Clone returns a deep copy safe to mutate.
func (inv Inventory) Clone() Inventory {
	out := inv
	out.Items = CloneItems(inv.Items)
	return out
}

// NewInventory returns the empty inventory created when a player joins.
func NewInventory(campaignID, playerID, playerName string, maxWeight float64, now time.Time) Inventory {
	if maxWeight <= 0 {
		maxWeight = DefaultMaxWeight
	}
	return Inventory{
		CampaignID: campaignID,
		PlayerID:   playerID,
		PlayerName: playerName,
		MaxWeight:  maxWeight,
		Items:      []Item{},
		JoinedAt:   now,
		UpdatedAt:  now,
	}
}
