package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Tracker maintains which users are present on which boards, and through
// which sockets. A user is present on a board while at least one of their
// sockets holds a join for it. The tracker only records state; broadcasting
// presence changes is the gateway's job.
type Tracker struct {
	mu sync.RWMutex
	// boardID -> userID -> set of socket ids
	boards map[uuid.UUID]map[uuid.UUID]map[string]struct{}
	// socketID -> set of board ids, for O(boards-joined) disconnect cleanup
	sockets map[string]map[uuid.UUID]struct{}
}

// Departure reports one board a socket was removed from and whether its
// user's presence on that board ended with it.
type Departure struct {
	BoardID      uuid.UUID
	BecameAbsent bool
}

// NewTracker creates an empty presence tracker
func NewTracker() *Tracker {
	return &Tracker{
		boards:  make(map[uuid.UUID]map[uuid.UUID]map[string]struct{}),
		sockets: make(map[string]map[uuid.UUID]struct{}),
	}
}

// Add records a socket's join on a board. It returns true when this join
// made the user newly present on the board.
func (t *Tracker) Add(boardID, userID uuid.UUID, socketID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	users := t.boards[boardID]
	if users == nil {
		users = make(map[uuid.UUID]map[string]struct{})
		t.boards[boardID] = users
	}
	socketSet := users[userID]
	becamePresent := len(socketSet) == 0
	if socketSet == nil {
		socketSet = make(map[string]struct{})
		users[userID] = socketSet
	}
	socketSet[socketID] = struct{}{}

	boardSet := t.sockets[socketID]
	if boardSet == nil {
		boardSet = make(map[uuid.UUID]struct{})
		t.sockets[socketID] = boardSet
	}
	boardSet[boardID] = struct{}{}

	return becamePresent
}

// Remove drops a socket's join on a board. It returns true when the user
// has no remaining sockets on that board, i.e. became absent.
func (t *Tracker) Remove(boardID, userID uuid.UUID, socketID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.removeLocked(boardID, userID, socketID)
}

// RemoveAll drops every join held by a socket, returning one Departure per
// board so the caller can broadcast each presence change exactly once.
func (t *Tracker) RemoveAll(userID uuid.UUID, socketID string) []Departure {
	t.mu.Lock()
	defer t.mu.Unlock()

	boardSet := t.sockets[socketID]
	if len(boardSet) == 0 {
		delete(t.sockets, socketID)
		return nil
	}

	departures := make([]Departure, 0, len(boardSet))
	for boardID := range boardSet {
		becameAbsent := t.removeLocked(boardID, userID, socketID)
		departures = append(departures, Departure{
			BoardID:      boardID,
			BecameAbsent: becameAbsent,
		})
	}
	return departures
}

// ClearBoard drops all presence state for a board, used when the board
// itself is deleted
func (t *Tracker) ClearBoard(boardID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, socketSet := range t.boards[boardID] {
		for socketID := range socketSet {
			if boardSet, ok := t.sockets[socketID]; ok {
				delete(boardSet, boardID)
				if len(boardSet) == 0 {
					delete(t.sockets, socketID)
				}
			}
		}
	}
	delete(t.boards, boardID)
}

// PresentUsers returns the ids of users with at least one live join on the
// board. Order is unspecified.
func (t *Tracker) PresentUsers(boardID uuid.UUID) []uuid.UUID {
	t.mu.RLock()
	defer t.mu.RUnlock()

	users := t.boards[boardID]
	ids := make([]uuid.UUID, 0, len(users))
	for userID := range users {
		ids = append(ids, userID)
	}
	return ids
}

// IsPresent reports whether the user currently has any socket on the board
func (t *Tracker) IsPresent(boardID, userID uuid.UUID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	users := t.boards[boardID]
	return len(users[userID]) > 0
}

// removeLocked removes one join and garbage-collects emptied entries.
// Callers must hold the write lock.
func (t *Tracker) removeLocked(boardID, userID uuid.UUID, socketID string) bool {
	becameAbsent := false

	if users, ok := t.boards[boardID]; ok {
		if socketSet, ok := users[userID]; ok {
			delete(socketSet, socketID)
			if len(socketSet) == 0 {
				delete(users, userID)
				becameAbsent = true
			}
		}
		if len(users) == 0 {
			delete(t.boards, boardID)
		}
	}

	if boardSet, ok := t.sockets[socketID]; ok {
		delete(boardSet, boardID)
		if len(boardSet) == 0 {
			delete(t.sockets, socketID)
		}
	}

	return becameAbsent
}
