package inventory

// Event causes
const (
	CauseInventoryUpdated = "inventory_updated"
	CauseCurrencyAdjusted = "currency_adjusted"
	CauseItemAdded        = "item_added"
	CauseItemEdited       = "item_edited"
	CauseItemDeleted      = "item_deleted"
)

// Log messages
const (
	LogMsgInventoryUpdated = "Inventory updated"
	LogMsgCurrencyAdjusted = "Currency adjusted"
	LogMsgItemAdded        = "Item added"
	LogMsgItemEdited       = "Item edited"
	LogMsgItemDeleted      = "Item deleted"
	LogMsgMutationRejected = "Inventory mutation rejected"
)
