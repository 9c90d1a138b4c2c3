package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/inventory"
)

func inventoryRouter(svc *MockInventoryService, id domain.Identity) http.Handler {
	h := NewInventoryHandler(svc)
	r := chi.NewRouter()
	r.Use(asUser(id))
	r.Route("/campaigns/{campaignID}", func(r chi.Router) {
		r.Get("/inventories", h.HandleList)
		r.Get("/inventories/summary", h.HandleSummaries)
		r.Put("/inventories/{playerID}", h.HandleUpdate)
		r.Post("/inventories/{playerID}/currency", h.HandleAdjustCurrency)
		r.Post("/items", h.HandleAddItem)
		r.Post("/items/catalog", h.HandleAddCatalogItem)
		r.Patch("/items/{itemID}", h.HandleEditItem)
		r.Delete("/items/{itemID}", h.HandleDeleteItem)
	})
	return r
}

func TestInventoryHandler_List(t *testing.T) {
	svc := &MockInventoryService{}
	svc.On("GetInventories", mock.Anything, "LAIR0001", player).
		Return([]domain.Inventory{{CampaignID: "LAIR0001", PlayerID: "p1", PlayerName: "Pip"}}, nil)
	svc.On("InventorySummaries", mock.Anything, "LAIR0001", player).Return(nil, nil)
	r := inventoryRouter(svc, player)

	w := serve(r, http.MethodGet, "/campaigns/lair0001/inventories", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"player_id":"p1"`)

	w = serve(r, http.MethodGet, "/campaigns/LAIR0001/inventories/summary", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())

	svc.AssertExpectations(t)
}

func TestInventoryHandler_Update(t *testing.T) {
	maxWeight := 150.0
	req := inventory.UpdateRequest{
		Items:     []domain.Item{{ID: "i1", Name: "Rope", Category: domain.CategoryMisc, Rarity: domain.RarityCommon, Quantity: 1, Weight: 10}},
		MaxWeight: &maxWeight,
	}

	svc := &MockInventoryService{}
	svc.On("UpdateInventory", mock.Anything, "LAIR0001", "p1", mock.MatchedBy(func(got inventory.UpdateRequest) bool {
		return len(got.Items) == 1 && got.Items[0].ID == "i1" && got.MaxWeight != nil && *got.MaxWeight == 150 && got.Currency == nil
	}), player).Return(&domain.Inventory{PlayerID: "p1", MaxWeight: 150}, nil)

	w := serve(inventoryRouter(svc, player), http.MethodPut, "/campaigns/LAIR0001/inventories/p1", jsonBody(t, req))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"max_weight":150`)
	svc.AssertExpectations(t)
}

func TestInventoryHandler_UpdateRejectsNegativeCurrency(t *testing.T) {
	svc := &MockInventoryService{}

	w := serve(inventoryRouter(svc, player), http.MethodPut, "/campaigns/LAIR0001/inventories/p1",
		jsonBody(t, `{"items":[],"currency":{"gp":-1}}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UpdateInventory")
}

func TestInventoryHandler_AdjustCurrency(t *testing.T) {
	svc := &MockInventoryService{}
	svc.On("AdjustCurrency", mock.Anything, "LAIR0001", "p2", domain.CurrencyDelta{GP: -3}, player).
		Return(nil, fmt.Errorf("%w: not your inventory", domain.ErrForbidden))

	w := serve(inventoryRouter(svc, player), http.MethodPost, "/campaigns/LAIR0001/inventories/p2/currency", jsonBody(t, domain.CurrencyDelta{GP: -3}))

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertExpectations(t)
}

func TestInventoryHandler_AddItem(t *testing.T) {
	item := domain.Item{Name: "Longsword", Category: domain.CategoryWeapon, Rarity: domain.RarityCommon, Quantity: 1, Weight: 3}

	t.Run("added to shared pool", func(t *testing.T) {
		svc := &MockInventoryService{}
		svc.On("AddItem", mock.Anything, "LAIR0001", domain.SharedOwner(), item, dm).
			Return(&domain.Item{ID: "new-id", Name: "Longsword"}, nil)

		w := serve(inventoryRouter(svc, dm), http.MethodPost, "/campaigns/LAIR0001/items",
			jsonBody(t, AddItemRequest{Owner: domain.SharedOwner(), Item: item}))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"new-id"`)
		svc.AssertExpectations(t)
	})

	t.Run("missing owner", func(t *testing.T) {
		svc := &MockInventoryService{}

		w := serve(inventoryRouter(svc, dm), http.MethodPost, "/campaigns/LAIR0001/items", jsonBody(t, `{"item":{"name":"Longsword"}}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidOwner)
		svc.AssertNotCalled(t, "AddItem")
	})

	t.Run("invalid item", func(t *testing.T) {
		svc := &MockInventoryService{}
		svc.On("AddItem", mock.Anything, "LAIR0001", domain.PlayerOwner("p1"), mock.Anything, player).
			Return(nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation))

		w := serve(inventoryRouter(svc, player), http.MethodPost, "/campaigns/LAIR0001/items", jsonBody(t, `{"owner":"p1","item":{"name":"Rope"}}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "quantity must be at least 1")
	})
}

func TestInventoryHandler_AddCatalogItem(t *testing.T) {
	svc := &MockInventoryService{}
	svc.On("AddCatalogItem", mock.Anything, "LAIR0001", domain.PlayerOwner("p1"), "potion_of_healing", 2, player).
		Return(&domain.Item{ID: "new-id", Name: "Potion of Healing", Quantity: 2}, nil)
	r := inventoryRouter(svc, player)

	w := serve(r, http.MethodPost, "/campaigns/LAIR0001/items/catalog", jsonBody(t, `{"owner":"p1","key":"potion_of_healing","quantity":2}`))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve(r, http.MethodPost, "/campaigns/LAIR0001/items/catalog", jsonBody(t, `{"owner":"p1","key":"potion_of_healing","quantity":0}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}

func TestInventoryHandler_EditAndDelete(t *testing.T) {
	name := "Rope of Climbing"
	svc := &MockInventoryService{}
	svc.On("EditItem", mock.Anything, "LAIR0001", domain.SharedOwner(), "i1", inventory.ItemPatch{Name: &name}, dm).
		Return(&domain.Item{ID: "i1", Name: name}, nil)
	svc.On("DeleteItem", mock.Anything, "LAIR0001", domain.PlayerOwner("p1"), "i1", dm).
		Return(fmt.Errorf("%w: item i1 is gone", domain.ErrConflict))
	r := inventoryRouter(svc, dm)

	w := serve(r, http.MethodPatch, "/campaigns/LAIR0001/items/i1", jsonBody(t, `{"owner":"shared","patch":{"name":"Rope of Climbing"}}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), name)

	w = serve(r, http.MethodDelete, "/campaigns/LAIR0001/items/i1?owner=p1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgConflictError)

	w = serve(r, http.MethodDelete, "/campaigns/LAIR0001/items/i1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}
