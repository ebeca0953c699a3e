package realtime

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Client to server events
const (
	EventAuthenticate = "authenticate"
	EventJoinBoard    = "joinBoard"
	EventLeaveBoard   = "leaveBoard"
	EventTypingStart  = "typingStart"
	EventTypingStop   = "typingStop"
)

// Server to client acknowledgements and notices
const (
	EventAuthSuccess      = "authSuccess"
	EventJoinedBoard      = "joinedBoard"
	EventAccessDenied     = "accessDenied"
	EventLeftBoard        = "leftBoard"
	EventRealtimeDisabled = "realtimeDisabled"
	EventPresenceUpdated  = "presenceUpdated"
	EventTypingStarted    = "typingStarted"
	EventTypingStopped    = "typingStopped"
)

// Broadcast events, one per mutation kind
const (
	EventBoardUpdated    = "boardUpdated"
	EventBoardDeleted    = "boardDeleted"
	EventListCreated     = "listCreated"
	EventListUpdated     = "listUpdated"
	EventListDeleted     = "listDeleted"
	EventCardCreated     = "cardCreated"
	EventCardUpdated     = "cardUpdated"
	EventCardMoved       = "cardMoved"
	EventCardDeleted     = "cardDeleted"
	EventCommentCreated  = "commentCreated"
	EventCommentUpdated  = "commentUpdated"
	EventCommentDeleted  = "commentDeleted"
	EventActivityCreated = "activityCreated"
	EventMemberAdded     = "memberAdded"
	EventMemberRemoved   = "memberRemoved"
)

// Envelope is the wire frame for every socket message in both directions.
// Data holds the event-specific payload and is decoded based on Event.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode marshals an event with its payload into a wire frame
func Encode(event string, payload interface{}) ([]byte, error) {
	env := Envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Data = data
	}
	return json.Marshal(env)
}

// Decode parses a wire frame into its envelope
func Decode(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// AuthenticatePayload carries the identity token presented by a client
type AuthenticatePayload struct {
	Token string `json:"token"`
}

// AuthSuccessPayload acknowledges a successful authentication
type AuthSuccessPayload struct {
	UserID uuid.UUID `json:"userId"`
}

// BoardPayload references a board in join and leave traffic
type BoardPayload struct {
	BoardID uuid.UUID `json:"boardId"`
}

// NoticePayload carries a human-readable message for accessDenied and
// realtimeDisabled notices
type NoticePayload struct {
	Message string `json:"message"`
}

// PresencePayload is broadcast whenever a board's present-user set changes
type PresencePayload struct {
	BoardID uuid.UUID   `json:"boardId"`
	UserIDs []uuid.UUID `json:"userIds"`
}

// TypingPayload is sent by clients to start or stop a typing indicator
type TypingPayload struct {
	BoardID uuid.UUID `json:"boardId"`
	CardID  uuid.UUID `json:"cardId"`
}

// TypingBroadcast relays a typing indicator to the rest of the room
type TypingBroadcast struct {
	UserID  uuid.UUID `json:"userId"`
	BoardID uuid.UUID `json:"boardId"`
	CardID  uuid.UUID `json:"cardId"`
}
