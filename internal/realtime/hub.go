package realtime

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder captures the realtime metrics the hub and gateway emit. A nil
// Recorder disables recording.
type Recorder interface {
	SocketConnected()
	SocketDisconnected()
	SetRealtimeRooms(count int)
	RecordBroadcast(event string)
	RecordDroppedClient()
}

type hubJoin struct {
	session *Session
	boardID uuid.UUID
	done    chan struct{}
}

type hubLeave struct {
	session *Session
	// boardID is nil when the session leaves every room (disconnect).
	boardID *uuid.UUID
	done    chan struct{}
}

type hubCast struct {
	boardID uuid.UUID
	event   string
	message []byte
	// clear empties the room after delivery, used when a board is deleted
	// so no later broadcast can reach its former subscribers.
	clear bool
	done  chan struct{}
}

// Hub groups sessions into per-board rooms and fans broadcast messages out
// to them. A single Run goroutine owns the room map, so membership changes
// and deliveries apply in submission order. Sessions that cannot keep up
// with the broadcast rate are dropped rather than allowed to stall a room.
type Hub struct {
	logger   *zap.Logger
	recorder Recorder

	joins  chan hubJoin
	leaves chan hubLeave
	casts  chan hubCast

	rooms map[uuid.UUID]map[*Session]struct{}
}

// NewHub creates a hub whose broadcast queue holds queueSize pending casts
func NewHub(queueSize int, recorder Recorder, logger *zap.Logger) *Hub {
	if queueSize <= 0 {
		queueSize = 512
	}
	return &Hub{
		logger:   logger,
		recorder: recorder,
		joins:    make(chan hubJoin),
		leaves:   make(chan hubLeave),
		casts:    make(chan hubCast, queueSize),
		rooms:    make(map[uuid.UUID]map[*Session]struct{}),
	}
}

// Run processes hub operations until ctx is cancelled. It must be running
// before any session joins a room.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case op := <-h.joins:
			room := h.rooms[op.boardID]
			if room == nil {
				room = make(map[*Session]struct{})
				h.rooms[op.boardID] = room
			}
			room[op.session] = struct{}{}
			h.recordRooms()
			close(op.done)
		case op := <-h.leaves:
			if op.boardID != nil {
				h.removeFromRoom(*op.boardID, op.session)
			} else {
				for boardID := range h.rooms {
					h.removeFromRoom(boardID, op.session)
				}
			}
			h.recordRooms()
			close(op.done)
		case op := <-h.casts:
			h.deliver(op)
			if op.done != nil {
				close(op.done)
			}
		}
	}
}

// Join adds the session to the board's room. It returns once the session
// is guaranteed to receive subsequent broadcasts for the board.
func (h *Hub) Join(session *Session, boardID uuid.UUID) {
	done := make(chan struct{})
	h.joins <- hubJoin{session: session, boardID: boardID, done: done}
	<-done
}

// Leave removes the session from the board's room
func (h *Hub) Leave(session *Session, boardID uuid.UUID) {
	done := make(chan struct{})
	h.leaves <- hubLeave{session: session, boardID: &boardID, done: done}
	<-done
}

// Detach removes the session from every room it is in, used on disconnect
func (h *Hub) Detach(session *Session) {
	done := make(chan struct{})
	h.leaves <- hubLeave{session: session, done: done}
	<-done
}

// Broadcast queues a message for every session in the board's room.
// Delivery order per room follows submission order.
func (h *Hub) Broadcast(boardID uuid.UUID, event string, message []byte) {
	h.casts <- hubCast{boardID: boardID, event: event, message: message}
}

// ClearRoom delivers a final message to the board's room and then empties
// it in one step, so nothing can be broadcast to the room in between. It
// returns once the room is gone.
func (h *Hub) ClearRoom(boardID uuid.UUID, event string, message []byte) {
	done := make(chan struct{})
	h.casts <- hubCast{boardID: boardID, event: event, message: message, clear: true, done: done}
	<-done
}

func (h *Hub) deliver(op hubCast) {
	room := h.rooms[op.boardID]
	if len(room) > 0 {
		var slow []*Session
		for session := range room {
			if !session.Enqueue(op.message) {
				slow = append(slow, session)
			}
		}
		if h.recorder != nil {
			h.recorder.RecordBroadcast(op.event)
		}
		for _, session := range slow {
			h.drop(session)
		}
	}

	if op.clear {
		for session := range h.rooms[op.boardID] {
			session.forgetBoard(op.boardID)
		}
		delete(h.rooms, op.boardID)
		h.recordRooms()
	}
}

// drop evicts a session that could not accept a broadcast. Closing its send
// channel ends the write pump, which closes the connection; the normal
// disconnect path then cleans up presence.
func (h *Hub) drop(session *Session) {
	for boardID := range h.rooms {
		h.removeFromRoom(boardID, session)
	}
	session.closeSend()
	if h.recorder != nil {
		h.recorder.RecordDroppedClient()
	}
	if h.logger != nil {
		h.logger.Warn("Dropping slow realtime client",
			zap.String("socketId", session.ID()))
	}
	h.recordRooms()
}

func (h *Hub) removeFromRoom(boardID uuid.UUID, session *Session) {
	room, ok := h.rooms[boardID]
	if !ok {
		return
	}
	if _, ok := room[session]; !ok {
		return
	}
	delete(room, session)
	session.forgetBoard(boardID)
	if len(room) == 0 {
		delete(h.rooms, boardID)
	}
}

func (h *Hub) recordRooms() {
	if h.recorder != nil {
		h.recorder.SetRealtimeRooms(len(h.rooms))
	}
}
