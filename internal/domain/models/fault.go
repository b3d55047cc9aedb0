package models

import (
	"errors"
	"fmt"
)

// FaultKind names a pipeline failure category. The HTTP layer and the
// ingest result report these verbatim.
type FaultKind string

const (
	FaultUnsupportedAssetClass FaultKind = "UnsupportedAssetClass"
	FaultInvalidSymbolFormat   FaultKind = "InvalidSymbolFormat"
	FaultProviderError         FaultKind = "ProviderError"
	FaultRateLimited           FaultKind = "RateLimited"
	FaultCacheWriteFailed      FaultKind = "CacheWriteFailed"
	FaultStorageError          FaultKind = "StorageError"
)

// Fault is a typed pipeline error. Wrap an underlying cause with
// NewFaultWrap so fetch/write details are never swallowed.
type Fault struct {
	Kind    FaultKind
	Message string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Fault) Unwrap() error { return f.Err }

// NewFault creates a fault without an underlying cause.
func NewFault(kind FaultKind, message string) *Fault {
	return &Fault{Kind: kind, Message: message}
}

// NewFaultWrap creates a fault wrapping an underlying error.
func NewFaultWrap(kind FaultKind, message string, err error) *Fault {
	return &Fault{Kind: kind, Message: message, Err: err}
}

// FaultKindOf extracts the kind from an error chain, or "" if the error
// is not a pipeline fault.
func FaultKindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// IsFault reports whether err carries the given fault kind.
func IsFault(err error, kind FaultKind) bool {
	return FaultKindOf(err) == kind
}
