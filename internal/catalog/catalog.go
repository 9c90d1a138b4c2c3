package catalog

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/LootVault_Go/internal/domain"
)

// Catalog is an immutable, keyed set of item templates
type Catalog struct {
	version string
	defs    map[string]Def
	order   []string
}

// New builds a catalog from a validated config
func New(config *Config) *Catalog {
	c := &Catalog{
		version: config.Version,
		defs:    make(map[string]Def, len(config.Items)),
		order:   make([]string, 0, len(config.Items)),
	}
	for _, def := range config.Items {
		c.defs[def.Key] = def
		c.order = append(c.order, def.Key)
	}
	return c
}

// LoadFile loads, validates and indexes the catalog at path
func LoadFile(path string) (*Catalog, error) {
	loader := NewLoader()

	config, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	if err := loader.Validate(config); err != nil {
		return nil, err
	}

	c := New(config)
	slog.Default().Info(LogMsgCatalogLoaded, "path", path, "version", c.version, "items", len(c.order))
	return c, nil
}

// Version returns the catalog file version
func (c *Catalog) Version() string {
	return c.version
}

// Lookup finds a template by key
func (c *Catalog) Lookup(key string) (Def, error) {
	def, ok := c.defs[key]
	if !ok {
		return Def{}, fmt.Errorf("%w: catalog item %q", domain.ErrNotFound, key)
	}
	return def, nil
}

// List returns every template in file order
func (c *Catalog) List() []Def {
	out := make([]Def, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.defs[key])
	}
	return out
}

// NewItem instantiates the template
func (d Def) NewItem(id string, quantity int, now time.Time) domain.Item {
	var value *float64
	if d.Value != nil {
		v := *d.Value
		value = &v
	}
	return domain.Item{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Rarity:      d.Rarity,
		Quantity:    quantity,
		Weight:      d.Weight,
		Value:       value,
		Notes:       d.Notes,
		Attunement:  d.Attunement,
		CreatedAt:   now,
	}
}
