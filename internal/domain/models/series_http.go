package models

// Requests for the series HTTP endpoints. Defined in domain for consistency and reuse.

// FetchRequest asks the orchestrator to ingest one symbol. Type is
// validated by the classifier (not the binder) so unsupported values
// surface as UnsupportedAssetClass rather than a generic binding error.
type FetchRequest struct {
	Type   string `query:"type" json:"type" validate:"required"`
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
}

// QueryRequest reads one symbol's subtree out of the cache document.
type QueryRequest struct {
	Type   string `query:"type" json:"type" validate:"required"`
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
}
