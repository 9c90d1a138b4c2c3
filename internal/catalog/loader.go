// Package catalog loads the item templates players and DMs pick from when adding loot.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/validation"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateKey = errors.New("duplicate catalog key")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config represents the JSON catalog file
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Items []Def `json:"items"`
}

// Def is one item template
type Def struct {
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    domain.Category `json:"category"`
	Rarity      domain.Rarity   `json:"rarity"`
	Weight      float64         `json:"weight"`
	Value       *float64        `json:"value,omitempty"`
	Attunement  bool            `json:"attunement,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// Loader handles loading and validating the catalog file
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
}

type catalogLoader struct {
	schemaValidator validation.SchemaValidator
	schemaPath      string
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &catalogLoader{
		schemaValidator: validation.NewSchemaValidator(),
		schemaPath:      SchemaPath,
	}
}

// Load reads, schema-checks and parses a catalog file
func (l *catalogLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	// Validate against schema first
	if err := l.schemaValidator.ValidateBytes(data, l.schemaPath); err != nil {
		return nil, fmt.Errorf(ErrMsgSchemaFailed, path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// Validate checks the parsed catalog for errors the schema cannot express
func (l *catalogLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}

	if len(config.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItemsDefined)
	}

	keys := make(map[string]bool, len(config.Items))
	for i := range config.Items {
		if err := validateDef(i, &config.Items[i], keys); err != nil {
			return err
		}
	}

	return nil
}

func validateDef(index int, def *Def, keys map[string]bool) error {
	if def.Key == "" {
		return fmt.Errorf(ErrFmtItemAtIndexEmpty, ErrInvalidConfig, index)
	}

	if keys[def.Key] {
		return fmt.Errorf("%w: '%s'", ErrDuplicateKey, def.Key)
	}
	keys[def.Key] = true

	if def.Name == "" {
		return fmt.Errorf(ErrFmtItemHasEmptyName, ErrInvalidConfig, def.Key)
	}

	// the template must produce a valid item
	sample := def.NewItem(def.Key, 1, time.Time{})
	if err := validation.ValidateItem(sample); err != nil {
		return fmt.Errorf(ErrFmtItemInvalidFields, ErrInvalidConfig, def.Key, err)
	}

	return nil
}
