package handler

import (
	"net/http"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/transfer"
)

// MoveItemRequest is the body of POST /campaigns/{campaignID}/moves
type MoveItemRequest struct {
	ItemID string       `json:"item_id" validate:"required,max=64"`
	From   domain.Owner `json:"from"`
	To     domain.Owner `json:"to"`
}

// MoveHandler serves item transfers
type MoveHandler struct {
	svc transfer.Service
}

// NewMoveHandler creates a new MoveHandler
func NewMoveHandler(svc transfer.Service) *MoveHandler {
	return &MoveHandler{svc: svc}
}

// HandleMove moves a whole item stack between holders
// @Summary Move item
// @Description Moves an item between the shared pool and player inventories.
// @Description A stale source answers 409 and the client should refresh.
// @Tags items
// @Accept json
// @Produce json
// @Param campaignID path string true "Campaign id"
// @Param request body MoveItemRequest true "Item and holders"
// @Success 200 {object} transfer.MoveResult
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /campaigns/{campaignID}/moves [post]
func (h *MoveHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Move item"); err != nil {
		return
	}
	if !req.From.Valid() || !req.To.Valid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidOwner)
		return
	}

	res, err := h.svc.MoveItem(r.Context(), transfer.MoveRequest{
		CampaignID: CampaignIDParam(r),
		ItemID:     req.ItemID,
		From:       req.From,
		To:         req.To,
	}, requester(r))
	if err != nil {
		respondServiceError(w, r, "Move item", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
