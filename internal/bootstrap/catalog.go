package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/osse101/LootVault_Go/internal/catalog"
)

// LoadCatalog loads the item catalog at path. A missing file is not an
// error: the service runs without catalog additions and a nil catalog is
// returned. A file that exists but fails validation stops startup.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	items, err := catalog.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn(LogMsgCatalogMissing, "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadItems, err)
	}
	return items, nil
}
