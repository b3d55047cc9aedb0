package models

// Stage is a step of the ingestion state machine. A request walks
// Classifying -> Fetching -> Writing -> Materializing -> Done, with
// StageFailed reachable from any stage.
type Stage string

const (
	StageClassifying   Stage = "classifying"
	StageFetching      Stage = "fetching"
	StageWriting       Stage = "writing"
	StageMaterializing Stage = "materializing"
	StageDone          Stage = "done"
	StageFailed        Stage = "failed"
)

// IngestStatus is the user-visible outcome of an ingestion request.
type IngestStatus string

const (
	// IngestOK means the symbol was fetched, stored, and the cache
	// regenerated.
	IngestOK IngestStatus = "ok"
	// IngestCacheStale means storage committed but the cache rebuild
	// failed; storage is the source of truth, so the request still
	// counts as (partially) succeeded.
	IngestCacheStale IngestStatus = "written_cache_stale"
	// IngestFailed means the request aborted before storage was
	// mutated (classification or fetch failure) or during the write.
	IngestFailed IngestStatus = "failed"
)

// IngestResult is the structured per-symbol outcome reported by the
// orchestrator.
type IngestResult struct {
	Type        string       `json:"type"`
	Symbol      string       `json:"symbol"`
	Status      IngestStatus `json:"status"`
	Stage       Stage        `json:"stage"`
	RowsWritten int          `json:"rows_written"`
	Empty       bool         `json:"empty,omitempty"`
	FaultKind   FaultKind    `json:"error,omitempty"`
	Detail      string       `json:"detail,omitempty"`
}
