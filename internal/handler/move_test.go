package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/transfer"
)

func moveRouter(svc *MockTransferService, id domain.Identity) http.Handler {
	h := NewMoveHandler(svc)
	r := chi.NewRouter()
	r.Use(asUser(id))
	r.Post("/campaigns/{campaignID}/moves", h.HandleMove)
	return r
}

func TestMoveHandler(t *testing.T) {
	claim := transfer.MoveRequest{CampaignID: "LAIR0001", ItemID: "i1", From: domain.SharedOwner(), To: domain.PlayerOwner("p1")}

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockTransferService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "claimed from shared pool",
			body: `{"item_id":"i1","from":"shared","to":"p1"}`,
			setupMock: func(m *MockTransferService) {
				m.On("MoveItem", mock.Anything, claim, player).
					Return(&transfer.MoveResult{Item: domain.Item{ID: "i1", Quantity: 1}, Attempts: 1}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"merged":false`,
		},
		{
			name: "stale source",
			body: `{"item_id":"i1","from":"shared","to":"p1"}`,
			setupMock: func(m *MockTransferService) {
				m.On("MoveItem", mock.Anything, claim, player).
					Return(nil, fmt.Errorf("%w: item i1 is no longer in shared", domain.ErrConflict))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgConflictError,
		},
		{
			name: "player to player",
			body: `{"item_id":"i1","from":"p1","to":"p2"}`,
			setupMock: func(m *MockTransferService) {
				m.On("MoveItem", mock.Anything, mock.Anything, player).
					Return(nil, fmt.Errorf("%w: players may only move to or from the shared pool", domain.ErrForbidden))
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   ErrMsgForbiddenError,
		},
		{
			name:           "missing destination",
			body:           `{"item_id":"i1","from":"shared"}`,
			setupMock:      func(*MockTransferService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidOwner,
		},
		{
			name:           "missing item",
			body:           `{"from":"shared","to":"p1"}`,
			setupMock:      func(*MockTransferService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"item_id"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockTransferService{}
			tt.setupMock(svc)

			w := serve(moveRouter(svc, player), http.MethodPost, "/campaigns/lair0001/moves", jsonBody(t, tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
