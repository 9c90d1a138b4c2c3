package handler

import (
	"net/http"

	"github.com/osse101/LootVault_Go/internal/catalog"
)

// CatalogResponse lists the item templates players can add from
type CatalogResponse struct {
	Version string        `json:"version"`
	Items   []catalog.Def `json:"items"`
}

// HandleGetCatalog returns the loaded item catalog
func HandleGetCatalog(c *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			respondJSON(w, http.StatusOK, CatalogResponse{Items: []catalog.Def{}})
			return
		}
		respondJSON(w, http.StatusOK, CatalogResponse{Version: c.Version(), Items: c.List()})
	}
}
