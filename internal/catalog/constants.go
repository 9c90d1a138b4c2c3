package catalog

// Schema path, resolved relative to the module root
const (
	SchemaPath = "configs/schemas/catalog.schema.json"
)

// File operation error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read catalog file: %w"
	ErrMsgParseConfigFailed    = "failed to parse catalog: %w"
	ErrMsgSchemaFailed         = "schema validation failed for %s: %w"
)

// Validation error fragments
const (
	ErrMsgConfigNil      = "config is nil"
	ErrMsgNoItemsDefined = "no items defined"
)

// Format strings for error construction
const (
	ErrFmtItemAtIndexEmpty  = "%w: item at index %d has empty key"
	ErrFmtItemHasEmptyName  = "%w: item '%s' has empty name"
	ErrFmtItemInvalidFields = "%w: item '%s': %v"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Item catalog loaded"
)
