package client

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/realtime"
)

// positionGap is the sparse-position increment used for provisional sort
// keys, matching the server's spacing
const positionGap = 1000

// activityBufferCap bounds the in-memory activity timeline; older entries
// are re-fetched over REST when needed
const activityBufferCap = 100

// Board is the client-side board record
type Board struct {
	ID          string   `json:"boardId"`
	OwnerID     string   `json:"ownerId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	IsPrivate   bool     `json:"isPrivate"`
	Members     []Member `json:"members"`
}

// Member is one board membership entry
type Member struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// List is the client-side list record. A temp-prefixed ID marks an
// optimistic placeholder awaiting server confirmation.
type List struct {
	ID         string `json:"listId"`
	BoardID    string `json:"boardId"`
	Title      string `json:"title"`
	Position   int    `json:"position"`
	IsArchived bool   `json:"isArchived"`
}

// Card is the client-side card record
type Card struct {
	ID           string `json:"cardId"`
	ListID       string `json:"listId"`
	BoardID      string `json:"boardId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Position     int    `json:"position"`
	IsCompleted  bool   `json:"isCompleted"`
	AssigneeID   string `json:"assigneeId"`
	CommentCount int    `json:"commentCount"`
}

// Comment is the client-side comment record
type Comment struct {
	ID      string `json:"commentId"`
	CardID  string `json:"cardId"`
	BoardID string `json:"boardId"`
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

// Activity is one entry of the board's activity timeline
type Activity struct {
	ID        string          `json:"activityId"`
	BoardID   string          `json:"boardId"`
	UserID    string          `json:"userId"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
}

// wire shapes of the broadcast payloads that are not full records
type cardMovedEvent struct {
	ID       string `json:"id"`
	ListID   string `json:"listId"`
	Position int    `json:"position"`
}

type listDeletedEvent struct {
	ListID  string `json:"listId"`
	BoardID string `json:"boardId"`
}

type cardDeletedEvent struct {
	CardID  string `json:"cardId"`
	ListID  string `json:"listId"`
	BoardID string `json:"boardId"`
}

type commentDeletedEvent struct {
	CommentID string `json:"commentId"`
	CardID    string `json:"cardId"`
	BoardID   string `json:"boardId"`
}

type memberRemovedEvent struct {
	UserID  string `json:"userId"`
	BoardID string `json:"boardId"`
}

type boardDeletedEvent struct {
	BoardID string `json:"boardId"`
}

type presenceEvent struct {
	BoardID string   `json:"boardId"`
	UserIDs []string `json:"userIds"`
}

type typingEvent struct {
	UserID  string `json:"userId"`
	BoardID string `json:"boardId"`
	CardID  string `json:"cardId"`
}

// Store is the client-side reconciling cache for the active board. Three
// write paths land in it in any order -- optimistic local mutations, REST
// response payloads, and socket broadcasts -- and it converges to the same
// state regardless of arrival order. All methods are safe for concurrent
// use; the socket read loop and the application goroutine both write here.
type Store struct {
	mu    sync.Mutex
	match PlaceholderMatcher

	// userID identifies this client so memberRemoved broadcasts for it
	// trigger the forced leave.
	userID string

	boardID    string
	board      *Board
	lists      []*List
	cards      []*Card
	comments   map[string][]*Comment
	removed    map[string]struct{} // comment tombstones for count idempotence
	activities []*Activity
	presence   map[string]struct{}
	typing     map[string]map[string]struct{}

	tempSeq       int
	onForcedLeave func(boardID string)
}

// NewStore creates a store for the given client identity. A nil matcher
// uses the parent+title heuristic.
func NewStore(userID string, match PlaceholderMatcher) *Store {
	if match == nil {
		match = MatchParentAndTitle
	}
	return &Store{
		userID:   userID,
		match:    match,
		comments: make(map[string][]*Comment),
		removed:  make(map[string]struct{}),
		presence: make(map[string]struct{}),
		typing:   make(map[string]map[string]struct{}),
	}
}

// SetOnForcedLeave registers the callback invoked when this client loses
// access to the active board (its membership is revoked or the board is
// deleted). The callback runs with the store already flushed.
func (s *Store) SetOnForcedLeave(fn func(boardID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onForcedLeave = fn
}

// LoadBoard replaces the store contents with an authoritative REST
// snapshot. Switching boards, or re-fetching after a reconnect, always
// goes through here; ephemeral presence and typing state never survives
// the switch.
func (s *Store) LoadBoard(board Board, lists []List, cards []Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.boardID = board.ID
	s.board = &board
	s.lists = make([]*List, 0, len(lists))
	for i := range lists {
		if lists[i].IsArchived {
			continue
		}
		l := lists[i]
		s.lists = append(s.lists, &l)
	}
	s.cards = make([]*Card, 0, len(cards))
	for i := range cards {
		c := cards[i]
		s.cards = append(s.cards, &c)
	}
	s.comments = make(map[string][]*Comment)
	s.removed = make(map[string]struct{})
	s.activities = nil
	s.presence = make(map[string]struct{})
	s.typing = make(map[string]map[string]struct{})
}

// LoadComments replaces the tracked comment list for one card, e.g. after
// the card detail fetch
func (s *Store) LoadComments(cardID string, comments []Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tracked := make([]*Comment, 0, len(comments))
	for i := range comments {
		c := comments[i]
		tracked = append(tracked, &c)
	}
	s.comments[cardID] = tracked
	if card := s.findCard(cardID); card != nil {
		card.CommentCount = len(tracked)
	}
}

// ActiveBoardID returns the id of the loaded board, or ""
func (s *Store) ActiveBoardID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boardID
}

// Board returns a copy of the loaded board, or nil
func (s *Store) Board() *Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return nil
	}
	b := *s.board
	b.Members = append([]Member(nil), s.board.Members...)
	return &b
}

// Members returns the loaded board's membership
func (s *Store) Members() []Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return nil
	}
	return append([]Member(nil), s.board.Members...)
}

// Lists returns the active lists ordered by position, ties by insertion
// order
func (s *Store) Lists() []List {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]List, len(s.lists))
	for i, l := range s.lists {
		out[i] = *l
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// CardsIn returns the cards of one list ordered by position
func (s *Store) CardsIn(listID string) []Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cardsInLocked(listID)
}

func (s *Store) cardsInLocked(listID string) []Card {
	var out []Card
	for _, c := range s.cards {
		if c.ListID == listID {
			out = append(out, *c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// Comments returns the tracked comments of one card in insertion order
func (s *Store) Comments(cardID string) []Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	tracked := s.comments[cardID]
	out := make([]Comment, len(tracked))
	for i, c := range tracked {
		out[i] = *c
	}
	return out
}

// Activities returns the buffered activity timeline, newest first
func (s *Store) Activities() []Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Activity, len(s.activities))
	for i, a := range s.activities {
		out[i] = *a
	}
	return out
}

// PresentUsers returns the user ids currently present on the board
func (s *Store) PresentUsers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.presence))
	for id := range s.presence {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// TypingUsers returns the user ids typing on one card
func (s *Store) TypingUsers(cardID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.typing[cardID]))
	for id := range s.typing[cardID] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ResetEphemeral drops presence and typing state wholesale. Called on
// disconnect so stale indicators never outlive the connection that
// produced them.
func (s *Store) ResetEphemeral() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presence = make(map[string]struct{})
	s.typing = make(map[string]map[string]struct{})
}

// CreateListOptimistic inserts a placeholder list at the end of the board
// and returns its temp id. The UI can render it immediately; the REST
// confirmation or the socket event later replaces it in place.
func (s *Store) CreateListOptimistic(title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	max := 0
	for _, l := range s.lists {
		if l.Position > max {
			max = l.Position
		}
	}
	position := max + positionGap

	s.tempSeq++
	id := fmt.Sprintf("%slist-%d", TempIDPrefix, s.tempSeq)
	s.lists = append(s.lists, &List{
		ID:       id,
		BoardID:  s.boardID,
		Title:    title,
		Position: position,
	})
	return id
}

// CreateCardOptimistic inserts a placeholder card at the end of a list and
// returns its temp id
func (s *Store) CreateCardOptimistic(listID, title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	max := 0
	for _, c := range s.cards {
		if c.ListID == listID && c.Position > max {
			max = c.Position
		}
	}
	position := max + positionGap

	s.tempSeq++
	id := fmt.Sprintf("%scard-%d", TempIDPrefix, s.tempSeq)
	s.cards = append(s.cards, &Card{
		ID:       id,
		ListID:   listID,
		BoardID:  s.boardID,
		Title:    title,
		Position: position,
	})
	return id
}

// RollbackOptimistic removes the one placeholder a failed create
// introduced, leaving every other optimistic entry alone. It reports
// whether the temp id was found.
func (s *Store) RollbackOptimistic(tempID string) bool {
	if !IsTempID(tempID) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.lists {
		if l.ID == tempID {
			s.lists = append(s.lists[:i], s.lists[i+1:]...)
			return true
		}
	}
	for i, c := range s.cards {
		if c.ID == tempID {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			return true
		}
	}
	return false
}

// ConfirmListCreated applies the REST response of a list create. The same
// three-way resolution runs for the socket event, so either arrival order
// converges.
func (s *Store) ConfirmListCreated(list List) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertList(list)
}

// ConfirmCardCreated applies the REST response of a card create
func (s *Store) ConfirmCardCreated(card Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertCard(card)
}

// ConfirmCommentCreated applies the REST response of a comment create
func (s *Store) ConfirmCommentCreated(comment Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertComment(comment)
}

// MoveCardLocal applies a drag-and-drop locally before the server
// responds: the card leaves its old list's ordered sequence, lands at the
// clamped target index in the new one, and both sequences are reindexed
// to dense zero-based positions. The authoritative cardMoved event later
// reconciles by id. Reports whether the card was found.
func (s *Store) MoveCardLocal(cardID, targetListID string, targetIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	card := s.findCard(cardID)
	if card == nil {
		return false
	}
	sourceListID := card.ListID

	// Ordered sequences, the moved card excluded
	source := s.orderedCards(sourceListID, cardID)
	target := source
	if targetListID != sourceListID {
		target = s.orderedCards(targetListID, cardID)
	}

	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(target) {
		targetIndex = len(target)
	}

	card.ListID = targetListID
	target = append(target, nil)
	copy(target[targetIndex+1:], target[targetIndex:])
	target[targetIndex] = card

	for i, c := range target {
		c.Position = i
	}
	if targetListID != sourceListID {
		for i, c := range source {
			c.Position = i
		}
	}
	return true
}

// orderedCards returns the store's card pointers for one list sorted by
// position, skipping excludeID
func (s *Store) orderedCards(listID, excludeID string) []*Card {
	var out []*Card
	for _, c := range s.cards {
		if c.ListID == listID && c.ID != excludeID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// Apply dispatches one socket event into the cache. Unknown events are
// ignored; the socket layer handles connection-control events before the
// store sees them.
func (s *Store) Apply(event string, data json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch event {
	case realtime.EventBoardUpdated:
		var board Board
		if err := json.Unmarshal(data, &board); err != nil {
			return err
		}
		if s.board != nil && board.ID == s.boardID {
			s.board = &board
		}

	case realtime.EventBoardDeleted:
		var deleted boardDeletedEvent
		if err := json.Unmarshal(data, &deleted); err != nil {
			return err
		}
		if deleted.BoardID == s.boardID {
			s.forceLeaveLocked()
		}

	case realtime.EventListCreated:
		var list List
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		if list.BoardID == s.boardID {
			s.upsertList(list)
		}

	case realtime.EventListUpdated:
		var list List
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		if list.BoardID == s.boardID {
			s.mergeList(list)
		}

	case realtime.EventListDeleted:
		var deleted listDeletedEvent
		if err := json.Unmarshal(data, &deleted); err != nil {
			return err
		}
		s.removeList(deleted.ListID)

	case realtime.EventCardCreated:
		var card Card
		if err := json.Unmarshal(data, &card); err != nil {
			return err
		}
		if card.BoardID == s.boardID {
			s.upsertCard(card)
		}

	case realtime.EventCardUpdated:
		var card Card
		if err := json.Unmarshal(data, &card); err != nil {
			return err
		}
		if card.BoardID == s.boardID {
			s.mergeCard(card)
		}

	case realtime.EventCardMoved:
		var moved cardMovedEvent
		if err := json.Unmarshal(data, &moved); err != nil {
			return err
		}
		if card := s.findCard(moved.ID); card != nil {
			card.ListID = moved.ListID
			card.Position = moved.Position
		}

	case realtime.EventCardDeleted:
		var deleted cardDeletedEvent
		if err := json.Unmarshal(data, &deleted); err != nil {
			return err
		}
		s.removeCard(deleted.CardID)

	case realtime.EventCommentCreated:
		var comment Comment
		if err := json.Unmarshal(data, &comment); err != nil {
			return err
		}
		if comment.BoardID == s.boardID {
			s.insertComment(comment)
		}

	case realtime.EventCommentUpdated:
		var comment Comment
		if err := json.Unmarshal(data, &comment); err != nil {
			return err
		}
		if comment.BoardID == s.boardID {
			for _, c := range s.comments[comment.CardID] {
				if c.ID == comment.ID {
					c.Content = comment.Content
					break
				}
			}
		}

	case realtime.EventCommentDeleted:
		var deleted commentDeletedEvent
		if err := json.Unmarshal(data, &deleted); err != nil {
			return err
		}
		s.removeComment(deleted.CardID, deleted.CommentID)

	case realtime.EventActivityCreated:
		var activity Activity
		if err := json.Unmarshal(data, &activity); err != nil {
			return err
		}
		if activity.BoardID == s.boardID {
			s.insertActivity(activity)
		}

	case realtime.EventMemberAdded:
		var member Member
		if err := json.Unmarshal(data, &member); err != nil {
			return err
		}
		s.addMember(member)

	case realtime.EventMemberRemoved:
		var removed memberRemovedEvent
		if err := json.Unmarshal(data, &removed); err != nil {
			return err
		}
		s.removeMember(removed)

	case realtime.EventPresenceUpdated:
		var presence presenceEvent
		if err := json.Unmarshal(data, &presence); err != nil {
			return err
		}
		if presence.BoardID == s.boardID {
			s.presence = make(map[string]struct{}, len(presence.UserIDs))
			for _, id := range presence.UserIDs {
				s.presence[id] = struct{}{}
			}
		}

	case realtime.EventTypingStarted:
		var typing typingEvent
		if err := json.Unmarshal(data, &typing); err != nil {
			return err
		}
		if typing.BoardID == s.boardID {
			if s.typing[typing.CardID] == nil {
				s.typing[typing.CardID] = make(map[string]struct{})
			}
			s.typing[typing.CardID][typing.UserID] = struct{}{}
		}

	case realtime.EventTypingStopped:
		var typing typingEvent
		if err := json.Unmarshal(data, &typing); err != nil {
			return err
		}
		if users := s.typing[typing.CardID]; users != nil {
			delete(users, typing.UserID)
			if len(users) == 0 {
				delete(s.typing, typing.CardID)
			}
		}
	}
	return nil
}

// upsertList runs the three-way create resolution for a confirmed list
func (s *Store) upsertList(list List) {
	refs := make([]RecordRef, len(s.lists))
	for i, l := range s.lists {
		refs[i] = RecordRef{ID: l.ID, ParentID: l.BoardID, Title: l.Title}
	}
	switch outcome, slot := resolveCreate(s.match, refs, list.ID, list.BoardID, list.Title); outcome {
	case outcomeReplace:
		s.lists[slot] = &list
	case outcomeDiscard:
	case outcomeAppend:
		s.lists = append(s.lists, &list)
	}
}

// upsertCard runs the three-way create resolution for a confirmed card
func (s *Store) upsertCard(card Card) {
	refs := make([]RecordRef, len(s.cards))
	for i, c := range s.cards {
		refs[i] = RecordRef{ID: c.ID, ParentID: c.ListID, Title: c.Title}
	}
	switch outcome, slot := resolveCreate(s.match, refs, card.ID, card.ListID, card.Title); outcome {
	case outcomeReplace:
		s.cards[slot] = &card
	case outcomeDiscard:
	case outcomeAppend:
		s.cards = append(s.cards, &card)
	}
}

// mergeList applies a listUpdated record. An archive transition removes
// the list from the active view instead of updating it.
func (s *Store) mergeList(list List) {
	if list.IsArchived {
		for i, l := range s.lists {
			if l.ID == list.ID {
				s.lists = append(s.lists[:i], s.lists[i+1:]...)
				return
			}
		}
		return
	}
	for i, l := range s.lists {
		if l.ID == list.ID {
			s.lists[i] = &list
			return
		}
	}
	// A restore, or an update for a list this client never saw
	s.lists = append(s.lists, &list)
}

// mergeCard applies a cardUpdated record over the stored one by id. The
// incoming parent reference always wins; a move may have reparented the
// card since the local copy was written.
func (s *Store) mergeCard(card Card) {
	for i, c := range s.cards {
		if c.ID == card.ID {
			s.cards[i] = &card
			return
		}
	}
	s.cards = append(s.cards, &card)
}

func (s *Store) removeList(listID string) {
	for i, l := range s.lists {
		if l.ID == listID {
			s.lists = append(s.lists[:i], s.lists[i+1:]...)
			break
		}
	}
	// The server deletes a list's cards with it
	kept := s.cards[:0]
	for _, c := range s.cards {
		if c.ListID == listID {
			delete(s.comments, c.ID)
			continue
		}
		kept = append(kept, c)
	}
	s.cards = kept
}

func (s *Store) removeCard(cardID string) {
	for i, c := range s.cards {
		if c.ID == cardID {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			break
		}
	}
	delete(s.comments, cardID)
	delete(s.typing, cardID)
}

// insertComment stores a confirmed comment once, whichever path delivers
// it first, and nudges the card's comment count in step with the list
func (s *Store) insertComment(comment Comment) {
	for _, c := range s.comments[comment.CardID] {
		if c.ID == comment.ID {
			return
		}
	}
	if _, gone := s.removed[comment.ID]; gone {
		return
	}
	s.comments[comment.CardID] = append(s.comments[comment.CardID], &comment)
	if card := s.findCard(comment.CardID); card != nil {
		card.CommentCount++
	}
}

// removeComment drops a comment and decrements the card's count exactly
// once. The tombstone keeps the count stable when the REST response and
// the broadcast both deliver the same delete.
func (s *Store) removeComment(cardID, commentID string) {
	if _, gone := s.removed[commentID]; gone {
		return
	}
	s.removed[commentID] = struct{}{}

	tracked := s.comments[cardID]
	for i, c := range tracked {
		if c.ID == commentID {
			s.comments[cardID] = append(tracked[:i], tracked[i+1:]...)
			break
		}
	}
	if card := s.findCard(cardID); card != nil && card.CommentCount > 0 {
		card.CommentCount--
	}
}

// RemoveCommentLocal applies a comment delete confirmed over REST
func (s *Store) RemoveCommentLocal(cardID, commentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeComment(cardID, commentID)
}

func (s *Store) insertActivity(activity Activity) {
	for _, a := range s.activities {
		if a.ID == activity.ID {
			return
		}
	}
	s.activities = append([]*Activity{&activity}, s.activities...)
	if len(s.activities) > activityBufferCap {
		s.activities = s.activities[:activityBufferCap]
	}
}

// addMember is idempotent; adding a user already on the board changes
// nothing
func (s *Store) addMember(member Member) {
	if s.board == nil {
		return
	}
	for _, m := range s.board.Members {
		if m.UserID == member.UserID {
			return
		}
	}
	s.board.Members = append(s.board.Members, member)
}

// removeMember is idempotent; removing an absent user changes nothing.
// When the revoked member is this client, the store flushes the board and
// reports the forced leave -- the user no longer has access.
func (s *Store) removeMember(removed memberRemovedEvent) {
	if s.board != nil && removed.BoardID == s.boardID {
		for i, m := range s.board.Members {
			if m.UserID == removed.UserID {
				s.board.Members = append(s.board.Members[:i], s.board.Members[i+1:]...)
				break
			}
		}
	}
	if removed.UserID == s.userID && removed.BoardID == s.boardID {
		s.forceLeaveLocked()
	}
}

// forceLeaveLocked flushes every piece of state tied to the active board
// and invokes the forced-leave callback outside the flush itself
func (s *Store) forceLeaveLocked() {
	boardID := s.boardID
	s.boardID = ""
	s.board = nil
	s.lists = nil
	s.cards = nil
	s.comments = make(map[string][]*Comment)
	s.removed = make(map[string]struct{})
	s.activities = nil
	s.presence = make(map[string]struct{})
	s.typing = make(map[string]map[string]struct{})

	if s.onForcedLeave != nil && boardID != "" {
		fn := s.onForcedLeave
		go fn(boardID)
	}
}

func (s *Store) findCard(cardID string) *Card {
	for _, c := range s.cards {
		if c.ID == cardID {
			return c
		}
	}
	return nil
}
