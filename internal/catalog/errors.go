// Package catalog implements the placement and resolution engine for the
// household catalog: location trees, item containment, materialized display
// paths, subtree scoping, filtering and deletion closures. Everything in
// this package is a pure computation over already-fetched record sets; the
// store supplies the records and persists the results.
package catalog

import "fmt"

// Validation reasons.
const (
	MissingLocation   = "missing_location"
	InvalidContainer  = "invalid_container"
	CyclicContainment = "cyclic_containment"
)

// ValidationError rejects an illegal placement before anything is written.
type ValidationError struct {
	Reason string
	ID     string // offending record id, if any
	Field  string // offending input field, if any
}

func (e *ValidationError) Error() string {
	switch {
	case e.ID != "":
		return fmt.Sprintf("invalid placement (%s): %s", e.Reason, e.ID)
	case e.Field != "":
		return fmt.Sprintf("invalid placement (%s): field %s", e.Reason, e.Field)
	}
	return fmt.Sprintf("invalid placement (%s)", e.Reason)
}

// Constraint reasons.
const (
	HasChildLocations = "has_child_locations"
	HasItems          = "has_items"
)

// ConstraintError blocks a deletion that would orphan records. It is
// surfaced to the caller and never auto-resolved.
type ConstraintError struct {
	Reason string
	ID     string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("deletion blocked (%s): %s", e.Reason, e.ID)
}

// Resolution reasons.
const DanglingLocation = "dangling_location"

// ResolutionError reports a reference that does not resolve while
// materializing a path.
type ResolutionError struct {
	Reason string
	ID     string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("unresolved reference (%s): %s", e.Reason, e.ID)
}

// Warning flags a record whose parent reference does not resolve. Dangling
// references are data-integrity warnings, not errors: the catalog must stay
// browsable, so affected records are dropped from trees and paths are
// truncated instead of failing the whole operation.
type Warning struct {
	Kind       string `json:"kind"` // "location" or "item"
	ID         string `json:"id"`
	MissingRef string `json:"missingRef"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %s references missing record %s", w.Kind, w.ID, w.MissingRef)
}
