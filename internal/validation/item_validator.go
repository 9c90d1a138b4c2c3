package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/LootVault_Go/internal/domain"
)

// Custom validation tags for domain enums
const (
	TagCategory = "category"
	TagRarity   = "rarity"
	TagRole     = "role"
)

var (
	itemValidator     *validator.Validate
	itemValidatorOnce sync.Once
)

// RegisterDomainRules adds the category, rarity and role tags to v
func RegisterDomainRules(v *validator.Validate) error {
	if err := v.RegisterValidation(TagCategory, func(fl validator.FieldLevel) bool {
		return domain.Category(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation(TagRarity, func(fl validator.FieldLevel) bool {
		return domain.Rarity(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation(TagRole, func(fl validator.FieldLevel) bool {
		return domain.Role(fl.Field().String()).Valid()
	})
}

func items() *validator.Validate {
	itemValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		if err := RegisterDomainRules(v); err != nil {
			panic(fmt.Sprintf("register domain validation rules: %v", err))
		}
		itemValidator = v
	})
	return itemValidator
}

// ValidateItem checks one item's field rules. Failures wrap domain.ErrValidation.
func ValidateItem(item domain.Item) error {
	if err := items().Struct(item); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, describe(err))
	}
	return nil
}

// ValidateItems checks every item and that ids are unique within the slice.
func ValidateItems(list []domain.Item) error {
	seen := make(map[string]struct{}, len(list))
	for i, item := range list {
		if err := ValidateItem(item); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: duplicate item id %s", domain.ErrValidation, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

// ValidateCurrencyDelta checks that each adjustment fits a denomination.
func ValidateCurrencyDelta(d domain.CurrencyDelta) error {
	if err := items().Struct(d); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, describe(err))
	}
	return nil
}

// ValidateCurrency checks that every denomination is in [0, MaxCoins].
func ValidateCurrency(c domain.Currency) error {
	if err := items().Struct(c); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, describe(err))
	}
	return nil
}

// describe flattens validator errors into "field: rule" pairs.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, strings.ToLower(fe.Field())+": "+rule)
	}
	return strings.Join(parts, ", ")
}
