package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/inventory"
	"github.com/osse101/LootVault_Go/internal/transfer"
)

// MockCampaignService mocks campaign.Service
type MockCampaignService struct {
	mock.Mock
}

func (m *MockCampaignService) CreateCampaign(ctx context.Context, owner domain.Identity, name, description, password string) (*domain.Campaign, error) {
	args := m.Called(ctx, owner, name, description, password)
	c, _ := args.Get(0).(*domain.Campaign)
	return c, args.Error(1)
}

func (m *MockCampaignService) JoinCampaign(ctx context.Context, campaignID string, user domain.Identity, password string) (*domain.Campaign, error) {
	args := m.Called(ctx, campaignID, user, password)
	c, _ := args.Get(0).(*domain.Campaign)
	return c, args.Error(1)
}

func (m *MockCampaignService) ListCampaignsForUser(ctx context.Context, userID string, role domain.Role) ([]domain.CampaignSummary, error) {
	args := m.Called(ctx, userID, role)
	list, _ := args.Get(0).([]domain.CampaignSummary)
	return list, args.Error(1)
}

func (m *MockCampaignService) GetCampaign(ctx context.Context, campaignID string, requester domain.Identity) (*domain.Campaign, error) {
	args := m.Called(ctx, campaignID, requester)
	c, _ := args.Get(0).(*domain.Campaign)
	return c, args.Error(1)
}

func (m *MockCampaignService) UpdateSharedLoot(ctx context.Context, campaignID string, items []domain.Item, requester domain.Identity) (*domain.Campaign, error) {
	args := m.Called(ctx, campaignID, items, requester)
	c, _ := args.Get(0).(*domain.Campaign)
	return c, args.Error(1)
}

func (m *MockCampaignService) UpdateDetails(ctx context.Context, campaignID string, requester domain.Identity, name, description string) (*domain.Campaign, error) {
	args := m.Called(ctx, campaignID, requester, name, description)
	c, _ := args.Get(0).(*domain.Campaign)
	return c, args.Error(1)
}

func (m *MockCampaignService) DeleteCampaign(ctx context.Context, campaignID string, requester domain.Identity) error {
	return m.Called(ctx, campaignID, requester).Error(0)
}

func (m *MockCampaignService) LeaveCampaign(ctx context.Context, campaignID string, user domain.Identity) error {
	return m.Called(ctx, campaignID, user).Error(0)
}

// MockInventoryService mocks inventory.Service
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) GetInventories(ctx context.Context, campaignID string, requester domain.Identity) ([]domain.Inventory, error) {
	args := m.Called(ctx, campaignID, requester)
	list, _ := args.Get(0).([]domain.Inventory)
	return list, args.Error(1)
}

func (m *MockInventoryService) InventorySummaries(ctx context.Context, campaignID string, requester domain.Identity) ([]domain.InventorySummary, error) {
	args := m.Called(ctx, campaignID, requester)
	list, _ := args.Get(0).([]domain.InventorySummary)
	return list, args.Error(1)
}

func (m *MockInventoryService) UpdateInventory(ctx context.Context, campaignID, playerID string, req inventory.UpdateRequest, requester domain.Identity) (*domain.Inventory, error) {
	args := m.Called(ctx, campaignID, playerID, req, requester)
	inv, _ := args.Get(0).(*domain.Inventory)
	return inv, args.Error(1)
}

func (m *MockInventoryService) AdjustCurrency(ctx context.Context, campaignID, playerID string, delta domain.CurrencyDelta, requester domain.Identity) (*domain.Inventory, error) {
	args := m.Called(ctx, campaignID, playerID, delta, requester)
	inv, _ := args.Get(0).(*domain.Inventory)
	return inv, args.Error(1)
}

func (m *MockInventoryService) AddItem(ctx context.Context, campaignID string, owner domain.Owner, item domain.Item, requester domain.Identity) (*domain.Item, error) {
	args := m.Called(ctx, campaignID, owner, item, requester)
	it, _ := args.Get(0).(*domain.Item)
	return it, args.Error(1)
}

func (m *MockInventoryService) AddCatalogItem(ctx context.Context, campaignID string, owner domain.Owner, key string, quantity int, requester domain.Identity) (*domain.Item, error) {
	args := m.Called(ctx, campaignID, owner, key, quantity, requester)
	it, _ := args.Get(0).(*domain.Item)
	return it, args.Error(1)
}

func (m *MockInventoryService) EditItem(ctx context.Context, campaignID string, owner domain.Owner, itemID string, patch inventory.ItemPatch, requester domain.Identity) (*domain.Item, error) {
	args := m.Called(ctx, campaignID, owner, itemID, patch, requester)
	it, _ := args.Get(0).(*domain.Item)
	return it, args.Error(1)
}

func (m *MockInventoryService) DeleteItem(ctx context.Context, campaignID string, owner domain.Owner, itemID string, requester domain.Identity) error {
	return m.Called(ctx, campaignID, owner, itemID, requester).Error(0)
}

// MockTransferService mocks transfer.Service
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) MoveItem(ctx context.Context, req transfer.MoveRequest, requester domain.Identity) (*transfer.MoveResult, error) {
	args := m.Called(ctx, req, requester)
	res, _ := args.Get(0).(*transfer.MoveResult)
	return res, args.Error(1)
}

// MockIdentityService mocks identity.Service
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) EnsureIdentity(ctx context.Context, userID, displayName, email string) (*domain.Identity, error) {
	args := m.Called(ctx, userID, displayName, email)
	id, _ := args.Get(0).(*domain.Identity)
	return id, args.Error(1)
}

func (m *MockIdentityService) GetIdentity(ctx context.Context, userID string) (*domain.Identity, error) {
	args := m.Called(ctx, userID)
	id, _ := args.Get(0).(*domain.Identity)
	return id, args.Error(1)
}

func (m *MockIdentityService) SetRole(ctx context.Context, userID string, role domain.Role) error {
	return m.Called(ctx, userID, role).Error(0)
}

// MockPinger mocks a store health check
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
