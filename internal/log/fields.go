// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID     = "request_id"
	FieldCorrelationID = "correlation_id"
	FieldRecipeID      = "recipe_id"
	FieldCategory      = "category"

	// Process / pipeline fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldKind      = "kind"
	FieldCount     = "count"

	// State fields
	FieldOldState = "old_state"
	FieldNewState = "new_state"

	// Storage fields
	FieldBackend = "backend"
	FieldPath    = "path"
	FieldRow     = "row"

	// Network fields
	FieldBaseURL = "base_url"
	FieldStatus  = "status"
)
