package domain

import (
	"errors"
	"fmt"
)

// UnsetMarker is rendered wherever a dangling reference or absent statement is
// encountered. Dangling references never crash resolution.
const UnsetMarker = "(unset)"

// NoIndicatorMarker is rendered per outcome when no measurement indicator is
// set; indicators are never silently omitted.
const NoIndicatorMarker = "no indicator set"

// ErrMissingSelection is reported when synthesis is attempted with zero
// outcomes selected. No record is produced and no state is mutated.
var ErrMissingSelection = errors.New("no outcomes selected")

// ErrStoreUnavailable is reported while the mapping store is in its terminal
// unavailable state after a failed load.
var ErrStoreUnavailable = errors.New("mapping store unavailable")

// ErrNoRecords is reported when an export is requested against an empty
// session record list; no artifact is written.
var ErrNoRecords = errors.New("no generated records to export")

// LoadError wraps a base document fetch or parse failure. The store stays
// unavailable until an explicit user-triggered reload succeeds.
type LoadError struct {
	Source string
	Err    error
}

func (e LoadError) Error() string {
	return fmt.Sprintf("load mapping document from %s: %v", e.Source, e.Err)
}

func (e LoadError) Unwrap() error { return e.Err }

// OverrideParseError records a present-but-malformed override document. It is
// non-fatal: the merge falls back to the base document and surfaces this as a
// warning.
type OverrideParseError struct {
	Err error
}

func (e OverrideParseError) Error() string {
	return fmt.Sprintf("override document malformed, using base mapping: %v", e.Err)
}

func (e OverrideParseError) Unwrap() error { return e.Err }
