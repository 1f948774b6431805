// Package reconcile implements the schedule reconciliation engine.
//
// Given a batch of imported schedule slots and the authoritative registries
// of professionals and appointments, the engine normalizes and validates
// patient and professional names (applying fuzzy-match auto-correction where
// confidence is high enough), detects scheduling conflicts, and produces a
// structured change-set for human review. Nothing is committed by the engine
// itself: the caller presents the Result and decides whether to apply
// ProcessedData.
//
// # Architecture
//
// The engine is composed of small, ordered passes:
//
//  1. Name reconciliation: every occupied slot is checked against the
//     registries. Misspelled names that match a registry entry exactly, by
//     containment, or with edit-distance similarity above 0.80 are rewritten
//     to the registry's canonical spelling. Unmatched professionals get a
//     synthetic registry entry; unmatched patients are left for review.
//
//  2. Conflict detection: four independent passes flag professional
//     double-bookings, collisions with pre-existing appointments, duplicate
//     room bookings, and slots assigned to inactive professionals.
//
// # Ownership
//
// Run deep-copies its inputs into an owned working set before any mutation.
// The caller's slices are never touched; the mutated working copy is returned
// as Result.ProcessedData and the pre-run snapshot as Result.OriginalData.
// Construct a fresh Engine per run; an Engine holds only per-run state and
// must not be shared across concurrent runs.
//
// # Usage Example
//
//	engine := reconcile.New()
//	result := engine.Run(imported, professionals, appointments)
//	for _, c := range result.Conflicts {
//	    // present for review
//	}
package reconcile
