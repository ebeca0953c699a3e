package client

import "strings"

// TempIDPrefix marks optimistic placeholder ids. Placeholders exist only in
// this store; the server never sees or issues a temp id.
const TempIDPrefix = "temp-"

// IsTempID reports whether id names an optimistic placeholder
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// RecordRef is the view of a stored record a PlaceholderMatcher sees:
// its id, its parent reference, and its title. Records are presented in
// insertion order.
type RecordRef struct {
	ID       string
	ParentID string
	Title    string
}

// PlaceholderMatcher picks the placeholder an authoritative record
// confirms, returning its slot index or -1. The real id of a created
// entity is unknown until the server responds, so confirmation can only
// correlate by content. The matcher is pluggable so the heuristic can be
// tested, and replaced, in isolation.
type PlaceholderMatcher func(records []RecordRef, parentID, title string) int

// MatchParentAndTitle is the default heuristic: the earliest placeholder
// under the same parent with the same title. Two placeholders with equal
// parent and title are ambiguous; first-created wins, which pairs
// confirmations with placeholders in creation order as long as responses
// arrive in request order. Accepted limitation, not a correctness
// guarantee.
func MatchParentAndTitle(records []RecordRef, parentID, title string) int {
	for i, r := range records {
		if IsTempID(r.ID) && r.ParentID == parentID && r.Title == title {
			return i
		}
	}
	return -1
}

// createOutcome is the three-way resolution applied to every confirmed
// create, whether it arrives as a REST response or a socket event.
type createOutcome int

const (
	// outcomeReplace: a placeholder matched; the authoritative record
	// takes its slot.
	outcomeReplace createOutcome = iota
	// outcomeDiscard: the real id is already stored (the other arrival
	// path won the race); drop this copy.
	outcomeDiscard
	// outcomeAppend: neither placeholder nor record exists; fresh insert.
	outcomeAppend
)

// resolveCreate decides what to do with an authoritative record. Applying
// the same resolution to both arrival paths makes reconciliation
// commutative: [confirm, event] and [event, confirm] converge on one
// stored entity.
func resolveCreate(match PlaceholderMatcher, records []RecordRef, id, parentID, title string) (createOutcome, int) {
	if slot := match(records, parentID, title); slot >= 0 {
		return outcomeReplace, slot
	}
	for i, r := range records {
		if r.ID == id {
			return outcomeDiscard, i
		}
	}
	return outcomeAppend, -1
}
