package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/LootVault_Go/internal/campaign"
	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/logger"
	"github.com/osse101/LootVault_Go/internal/metrics"
)

// CreateCampaignRequest is the body of POST /campaigns
type CreateCampaignRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Password    string `json:"password" validate:"required,min=4,max=72"`
}

// JoinCampaignRequest is the body of POST /campaigns/{campaignID}/join
type JoinCampaignRequest struct {
	Password string `json:"password" validate:"required,max=72"`
}

// UpdateCampaignRequest is the body of PATCH /campaigns/{campaignID}
type UpdateCampaignRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// SharedLootRequest replaces the shared loot pool
type SharedLootRequest struct {
	Items []domain.Item `json:"items" validate:"required"`
}

// CampaignHandler serves campaign lifecycle routes
type CampaignHandler struct {
	svc campaign.Service
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(svc campaign.Service) *CampaignHandler {
	return &CampaignHandler{svc: svc}
}

// HandleCreate creates a campaign owned by the requester
// @Summary Create campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Param request body CreateCampaignRequest true "Campaign details"
// @Success 201 {object} domain.Campaign
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /campaigns [post]
func (h *CampaignHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateCampaignRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create campaign"); err != nil {
		return
	}

	c, err := h.svc.CreateCampaign(r.Context(), requester(r), req.Name, req.Description, req.Password)
	if err != nil {
		respondServiceError(w, r, "Create campaign", err)
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

// HandleList returns the campaigns the requester owns or has joined
// @Summary List campaigns
// @Tags campaigns
// @Produce json
// @Success 200 {array} domain.CampaignSummary
// @Router /campaigns [get]
func (h *CampaignHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	me := requester(r)
	list, err := h.svc.ListCampaignsForUser(r.Context(), me.UserID, me.Role)
	if err != nil {
		respondServiceError(w, r, "List campaigns", err)
		return
	}
	if list == nil {
		list = []domain.CampaignSummary{}
	}
	respondJSON(w, http.StatusOK, list)
}

// HandleGet returns one campaign
func (h *CampaignHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCampaign(r.Context(), CampaignIDParam(r), requester(r))
	if err != nil {
		respondServiceError(w, r, "Get campaign", err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// HandleUpdate changes the campaign name and description
func (h *CampaignHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateCampaignRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update campaign"); err != nil {
		return
	}

	c, err := h.svc.UpdateDetails(r.Context(), CampaignIDParam(r), requester(r), req.Name, req.Description)
	if err != nil {
		respondServiceError(w, r, "Update campaign", err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// HandleDelete removes a campaign and all of its inventories
func (h *CampaignHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCampaign(r.Context(), CampaignIDParam(r), requester(r)); err != nil {
		respondServiceError(w, r, "Delete campaign", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCampaignDeleted})
}

// HandleJoin adds the requester to a campaign using its password
// @Summary Join campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Param campaignID path string true "Campaign id"
// @Param request body JoinCampaignRequest true "Campaign password"
// @Success 200 {object} domain.Campaign
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /campaigns/{campaignID}/join [post]
func (h *CampaignHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	var req JoinCampaignRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Join campaign"); err != nil {
		return
	}

	c, err := h.svc.JoinCampaign(r.Context(), CampaignIDParam(r), requester(r), req.Password)
	if err != nil {
		metrics.CampaignJoins.WithLabelValues(joinOutcome(err)).Inc()
		respondServiceError(w, r, "Join campaign", err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// HandleLeave removes the requester from a campaign
func (h *CampaignHandler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.LeaveCampaign(r.Context(), CampaignIDParam(r), requester(r)); err != nil {
		respondServiceError(w, r, "Leave campaign", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCampaignLeft})
}

// HandleUpdateSharedLoot replaces the shared loot pool
func (h *CampaignHandler) HandleUpdateSharedLoot(w http.ResponseWriter, r *http.Request) {
	var req SharedLootRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update shared loot"); err != nil {
		return
	}

	c, err := h.svc.UpdateSharedLoot(r.Context(), CampaignIDParam(r), req.Items, requester(r))
	if err != nil {
		respondServiceError(w, r, "Update shared loot", err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// RequireViewer rejects requests from users who can neither own nor belong
// to the campaign in the URL. Streaming routes run it before the stream starts.
func (h *CampaignHandler) RequireViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.svc.GetCampaign(r.Context(), CampaignIDParam(r), requester(r)); err != nil {
			respondServiceError(w, r, "Open campaign stream", err)
			return
		}
		logger.FromContext(r.Context()).Debug("Campaign stream authorized", "campaign_id", CampaignIDParam(r))
		next.ServeHTTP(w, r)
	})
}

// joinOutcome labels a rejected join for the join counter
func joinOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return domain.ErrMsgUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return domain.ErrMsgNotFound
	case errors.Is(err, domain.ErrForbidden):
		return domain.ErrMsgForbidden
	case errors.Is(err, domain.ErrConflict):
		return domain.ErrMsgConflict
	}
	return metrics.OutcomeError
}
