package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/logger"
)

// URL parameter names
const (
	ParamCampaignID = "campaignID"
	ParamPlayerID   = "playerID"
	ParamItemID     = "itemID"
	QueryOwner      = "owner"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If it returns an error, the response has already been written and the
// handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Warn(LogMsgValidationFailed, "action", actionName, "error", err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// CampaignIDParam returns the campaign id URL parameter
func CampaignIDParam(r *http.Request) string {
	return domain.NormalizeCampaignID(chi.URLParam(r, ParamCampaignID))
}

// ownerQuery parses the owner query parameter, writing a 400 when it is bad
func ownerQuery(w http.ResponseWriter, r *http.Request) (domain.Owner, bool) {
	owner, err := domain.ParseOwner(r.URL.Query().Get(QueryOwner))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidOwner)
		return domain.Owner{}, false
	}
	return owner, true
}
