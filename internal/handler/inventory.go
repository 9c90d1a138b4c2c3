package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/inventory"
)

// AddItemRequest adds a hand-written item. The service assigns the id.
type AddItemRequest struct {
	Owner domain.Owner `json:"owner"`
	Item  domain.Item  `json:"item" validate:"-"`
}

// AddCatalogItemRequest adds an item from the catalog
type AddCatalogItemRequest struct {
	Owner    domain.Owner `json:"owner"`
	Key      string       `json:"key" validate:"required,max=64"`
	Quantity int          `json:"quantity" validate:"min=1,max=10000"`
}

// EditItemRequest patches one item
type EditItemRequest struct {
	Owner domain.Owner        `json:"owner"`
	Patch inventory.ItemPatch `json:"patch" validate:"-"`
}

// InventoryHandler serves inventory and item routes
type InventoryHandler struct {
	svc inventory.Service
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(svc inventory.Service) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// HandleList returns the inventories the requester may see
// @Summary List inventories
// @Tags inventories
// @Produce json
// @Param campaignID path string true "Campaign id"
// @Success 200 {array} domain.Inventory
// @Failure 403 {object} ErrorResponse
// @Router /campaigns/{campaignID}/inventories [get]
func (h *InventoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.GetInventories(r.Context(), CampaignIDParam(r), requester(r))
	if err != nil {
		respondServiceError(w, r, "List inventories", err)
		return
	}
	if list == nil {
		list = []domain.Inventory{}
	}
	respondJSON(w, http.StatusOK, list)
}

// HandleSummaries returns weight and value totals per inventory
func (h *InventoryHandler) HandleSummaries(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.InventorySummaries(r.Context(), CampaignIDParam(r), requester(r))
	if err != nil {
		respondServiceError(w, r, "Summarize inventories", err)
		return
	}
	if list == nil {
		list = []domain.InventorySummary{}
	}
	respondJSON(w, http.StatusOK, list)
}

// HandleUpdate replaces a player's items and optionally their currency and capacity
func (h *InventoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req inventory.UpdateRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update inventory"); err != nil {
		return
	}

	inv, err := h.svc.UpdateInventory(r.Context(), CampaignIDParam(r), chi.URLParam(r, ParamPlayerID), req, requester(r))
	if err != nil {
		respondServiceError(w, r, "Update inventory", err)
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

// HandleAdjustCurrency adds a signed delta to a player's purse
// @Summary Adjust currency
// @Tags inventories
// @Accept json
// @Produce json
// @Param campaignID path string true "Campaign id"
// @Param playerID path string true "Player id"
// @Param request body domain.CurrencyDelta true "Signed amounts per denomination"
// @Success 200 {object} domain.Inventory
// @Failure 400 {object} ErrorResponse
// @Router /campaigns/{campaignID}/inventories/{playerID}/currency [post]
func (h *InventoryHandler) HandleAdjustCurrency(w http.ResponseWriter, r *http.Request) {
	var delta domain.CurrencyDelta
	if err := DecodeAndValidateRequest(r, w, &delta, "Adjust currency"); err != nil {
		return
	}

	inv, err := h.svc.AdjustCurrency(r.Context(), CampaignIDParam(r), chi.URLParam(r, ParamPlayerID), delta, requester(r))
	if err != nil {
		respondServiceError(w, r, "Adjust currency", err)
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

// HandleAddItem adds one item to the shared pool or a player inventory
func (h *InventoryHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add item"); err != nil {
		return
	}
	if !req.Owner.Valid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidOwner)
		return
	}

	item, err := h.svc.AddItem(r.Context(), CampaignIDParam(r), req.Owner, req.Item, requester(r))
	if err != nil {
		respondServiceError(w, r, "Add item", err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// HandleAddCatalogItem adds an item built from a catalog entry
func (h *InventoryHandler) HandleAddCatalogItem(w http.ResponseWriter, r *http.Request) {
	var req AddCatalogItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add catalog item"); err != nil {
		return
	}
	if !req.Owner.Valid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidOwner)
		return
	}

	item, err := h.svc.AddCatalogItem(r.Context(), CampaignIDParam(r), req.Owner, req.Key, req.Quantity, requester(r))
	if err != nil {
		respondServiceError(w, r, "Add catalog item", err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// HandleEditItem patches an item in place
func (h *InventoryHandler) HandleEditItem(w http.ResponseWriter, r *http.Request) {
	var req EditItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Edit item"); err != nil {
		return
	}
	if !req.Owner.Valid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidOwner)
		return
	}

	item, err := h.svc.EditItem(r.Context(), CampaignIDParam(r), req.Owner, chi.URLParam(r, ParamItemID), req.Patch, requester(r))
	if err != nil {
		respondServiceError(w, r, "Edit item", err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// HandleDeleteItem removes an item; the holder comes from the owner query parameter
func (h *InventoryHandler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerQuery(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteItem(r.Context(), CampaignIDParam(r), owner, chi.URLParam(r, ParamItemID), requester(r)); err != nil {
		respondServiceError(w, r, "Delete item", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemDeleted})
}
