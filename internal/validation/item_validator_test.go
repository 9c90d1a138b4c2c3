package validation

import (
	"math"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootVault_Go/internal/domain"
)

func validItem() domain.Item {
	return domain.Item{
		ID:       "i1",
		Name:     "Potion of Healing",
		Category: domain.CategoryPotion,
		Rarity:   domain.RarityCommon,
		Quantity: 2,
		Weight:   0.5,
	}
}

func TestValidateItem(t *testing.T) {
	negative := -1.0

	tests := []struct {
		name    string
		mutate  func(*domain.Item)
		wantErr string
	}{
		{"valid", func(*domain.Item) {}, ""},
		{"zero quantity", func(i *domain.Item) { i.Quantity = 0 }, "quantity: min=1"},
		{"negative weight", func(i *domain.Item) { i.Weight = -2 }, "weight: min=0"},
		{"negative value", func(i *domain.Item) { i.Value = &negative }, "value: min=0"},
		{"unknown category", func(i *domain.Item) { i.Category = "food" }, "category: category"},
		{"unknown rarity", func(i *domain.Item) { i.Rarity = "mythic" }, "rarity: rarity"},
		{"missing name", func(i *domain.Item) { i.Name = "" }, "name: required"},
		{"very rare is valid", func(i *domain.Item) { i.Rarity = domain.RarityVeryRare }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(&item)

			err := ValidateItem(item)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateItems_DuplicateIDs(t *testing.T) {
	a := validItem()
	b := validItem()
	b.Name = "Rope"

	assert.ErrorIs(t, ValidateItems([]domain.Item{a, b}), domain.ErrValidation)

	b.ID = "i2"
	assert.NoError(t, ValidateItems([]domain.Item{a, b}))
	assert.NoError(t, ValidateItems(nil))
}

func TestValidateCurrency(t *testing.T) {
	assert.NoError(t, ValidateCurrency(domain.Currency{GP: 10}))
	assert.ErrorIs(t, ValidateCurrency(domain.Currency{SP: -1}), domain.ErrValidation)
	assert.ErrorIs(t, ValidateCurrency(domain.Currency{GP: domain.MaxCoins + 1}), domain.ErrValidation)
	assert.NoError(t, ValidateCurrency(domain.Currency{GP: domain.MaxCoins}))
}

func TestValidateCurrencyDelta(t *testing.T) {
	assert.NoError(t, ValidateCurrencyDelta(domain.CurrencyDelta{GP: -domain.MaxCoins, CP: domain.MaxCoins}))
	assert.ErrorIs(t, ValidateCurrencyDelta(domain.CurrencyDelta{GP: math.MaxInt}), domain.ErrValidation)
	assert.ErrorIs(t, ValidateCurrencyDelta(domain.CurrencyDelta{SP: math.MinInt}), domain.ErrValidation)
}

func TestRegisterDomainRules_Role(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterDomainRules(v))

	type req struct {
		Role string `validate:"role"`
	}
	assert.NoError(t, v.Struct(req{Role: "dm"}))
	assert.Error(t, v.Struct(req{Role: "admin"}))
}
