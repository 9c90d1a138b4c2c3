package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"

	// PgErrorCodeForeignKeyViolation fires when an inventory references a missing campaign
	PgErrorCodeForeignKeyViolation = "23503"

	PgErrorCodeSerializationFailure = "40001"
	PgErrorCodeDeadlockDetected     = "40P01"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Campaign Operations
const (
	ErrMsgFailedToGetCampaign    = "failed to get campaign"
	ErrMsgFailedToListCampaigns  = "failed to list campaigns"
	ErrMsgFailedToInsertCampaign = "failed to insert campaign"
	ErrMsgFailedToUpdateCampaign = "failed to update campaign"
	ErrMsgFailedToDeleteCampaign = "failed to delete campaign"
	ErrMsgFailedToSyncMembers    = "failed to sync campaign members"
)

// Error Messages - Inventory Operations
const (
	ErrMsgFailedToGetInventory    = "failed to get inventory"
	ErrMsgFailedToListInventories = "failed to list inventories"
	ErrMsgFailedToInsertInventory = "failed to insert inventory"
	ErrMsgFailedToUpdateInventory = "failed to update inventory"
	ErrMsgFailedToDeleteInventory = "failed to delete inventory"
	ErrMsgFailedToMarshalItems    = "failed to marshal items"
	ErrMsgFailedToUnmarshalItems  = "failed to unmarshal items"
)

// Error Messages - Identity Operations
const (
	ErrMsgFailedToUpsertIdentity = "failed to upsert identity"
	ErrMsgFailedToGetIdentity    = "failed to get identity"
	ErrMsgFailedToSetRole        = "failed to set role"
)
