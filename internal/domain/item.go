package domain

import (
	"strings"
	"time"
)

// Category is the fixed enumeration of item kinds.
type Category string

const (
	CategoryWeapon   Category = "weapon"
	CategoryArmor    Category = "armor"
	CategoryPotion   Category = "potion"
	CategoryMagic    Category = "magic"
	CategoryTreasure Category = "treasure"
	CategoryMisc     Category = "misc"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryWeapon,
	CategoryArmor,
	CategoryPotion,
	CategoryMagic,
	CategoryTreasure,
	CategoryMisc,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Rarity is ordered: common < uncommon < rare < very rare < legendary < artifact.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityVeryRare  Rarity = "very rare"
	RarityLegendary Rarity = "legendary"
	RarityArtifact  Rarity = "artifact"
)

// Rarities lists every rarity from lowest to highest.
var Rarities = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityVeryRare,
	RarityLegendary,
	RarityArtifact,
}

// Rank returns the position of r in the rarity order, or -1 if r is unknown.
func (r Rarity) Rank() int {
	for i, known := range Rarities {
		if r == known {
			return i
		}
	}
	return -1
}

// Valid reports whether r is a known rarity.
func (r Rarity) Valid() bool {
	return r.Rank() >= 0
}

// Less orders rarities from common to artifact.
func (r Rarity) Less(other Rarity) bool {
	return r.Rank() < other.Rank()
}

// Item is a tradeable good. Weight and value are per unit.
type Item struct {
	ID          string    `json:"id" validate:"required,max=64"`
	Name        string    `json:"name" validate:"required,max=120"`
	Description string    `json:"description,omitempty" validate:"max=2000"`
	Category    Category  `json:"category" validate:"category"`
	Rarity      Rarity    `json:"rarity" validate:"rarity"`
	Quantity    int       `json:"quantity" validate:"min=1"`
	Weight      float64   `json:"weight" validate:"min=0"`
	Value       *float64  `json:"value,omitempty" validate:"omitempty,min=0"`
	Notes       string    `json:"notes,omitempty" validate:"max=2000"`
	Attunement  bool      `json:"attunement"`
	CreatedAt   time.Time `json:"created_at"`
}

// StackKey identifies items that merge into one stack.
type StackKey struct {
	Name     string
	Category Category
	Rarity   Rarity
}

// StackKey returns the (name, category, rarity) identity of the item.
func (i Item) StackKey() StackKey {
	return StackKey{
		Name:     strings.TrimSpace(i.Name),
		Category: i.Category,
		Rarity:   i.Rarity,
	}
}

// StacksWith reports whether i and other share a stack identity.
func (i Item) StacksWith(other Item) bool {
	return i.StackKey() == other.StackKey()
}

// TotalWeight is weight * quantity.
func (i Item) TotalWeight() float64 {
	return i.Weight * float64(i.Quantity)
}

// TotalValue is value * quantity in gold pieces; items without a value count as zero.
func (i Item) TotalValue() float64 {
	if i.Value == nil {
		return 0
	}
	return *i.Value * float64(i.Quantity)
}

// IndexOfItem returns the position of the item with id in items, or -1.
func IndexOfItem(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// IndexOfStack returns the position of the first item stacking with item, or -1.
func IndexOfStack(items []Item, item Item) int {
	key := item.StackKey()
	for i := range items {
		if items[i].StackKey() == key {
			return i
		}
	}
	return -1
}

// CloneItems returns a copy of items that shares no backing array.
func CloneItems(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	out := make([]Item, len(items))
	for i, it := range items {
		if it.Value != nil {
			v := *it.Value
			it.Value = &v
		}
		out[i] = it
	}
	return out
}

// SumWeight returns the total carried weight of items.
func SumWeight(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += it.TotalWeight()
	}
	return total
}

// SumValue returns the total gold-piece value of items.
func SumValue(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += it.TotalValue()
	}
	return total
}

// StackInto adds item to items, merging its quantity onto an existing stack
// with the same key. The surviving entry keeps its own id. It reports whether
// a merge happened and the index of the resulting entry.
func StackInto(items []Item, item Item) ([]Item, int, bool) {
	if i := IndexOfStack(items, item); i >= 0 {
		items[i].Quantity += item.Quantity
		return items, i, true
	}
	return append(items, item), len(items), false
}

// RemoveItem removes the item with id and returns it.
func RemoveItem(items []Item, id string) ([]Item, Item, bool) {
	i := IndexOfItem(items, id)
	if i < 0 {
		return items, Item{}, false
	}
	removed := items[i]
	out := make([]Item, 0, len(items)-1)
	out = append(out, items[:i]...)
	out = append(out, items[i+1:]...)
	return out, removed, true
}
