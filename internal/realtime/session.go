package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192

	defaultSendBuffer = 256
)

// typingKey identifies one typing indicator held by a session
type typingKey struct {
	boardID uuid.UUID
	cardID  uuid.UUID
}

// Session is the server-side state of one websocket connection: its
// identity once authenticated, the boards it has joined, and the typing
// indicators it holds. Messages to the peer go through the buffered send
// channel drained by writePump.
type Session struct {
	id   string
	conn *websocket.Conn

	sendMu     sync.Mutex
	send       chan []byte
	sendClosed bool

	mu            sync.RWMutex
	userID        uuid.UUID
	authenticated bool
	joined        map[uuid.UUID]struct{}
	typing        map[typingKey]struct{}
}

func newSession(conn *websocket.Conn, sendBuffer int) *Session {
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}
	return &Session{
		id:     "sock-" + uuid.NewString(),
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		joined: make(map[uuid.UUID]struct{}),
		typing: make(map[typingKey]struct{}),
	}
}

// ID returns the socket identifier assigned at connect
func (s *Session) ID() string { return s.id }

// Enqueue queues a message for the write pump without blocking. It returns
// false when the buffer is full or the session is closing.
func (s *Session) Enqueue(message []byte) bool {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if s.sendClosed {
		return false
	}
	select {
	case s.send <- message:
		return true
	default:
		return false
	}
}

// closeSend closes the send channel once, which ends the write pump
func (s *Session) closeSend() {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if !s.sendClosed {
		s.sendClosed = true
		close(s.send)
	}
}

// bindUser records the authenticated identity. A session keeps its first
// identity; repeated authentication returns the one already in effect.
func (s *Session) bindUser(userID uuid.UUID) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated {
		s.userID = userID
		s.authenticated = true
	}
	return s.userID
}

// user returns the bound identity and whether the session is authenticated
func (s *Session) user() (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.authenticated
}

func (s *Session) markJoined(boardID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joined[boardID] = struct{}{}
}

func (s *Session) isJoined(boardID uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.joined[boardID]
	return ok
}

// forgetBoard clears the join for the board. Typing indicators are left
// alone; the gateway collects them separately so it can broadcast the
// matching stop events.
func (s *Session) forgetBoard(boardID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.joined, boardID)
}

// setTyping records a typing indicator, reporting whether it is new
func (s *Session) setTyping(key typingKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.typing[key]; ok {
		return false
	}
	s.typing[key] = struct{}{}
	return true
}

// clearTyping removes a typing indicator, reporting whether it was held
func (s *Session) clearTyping(key typingKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.typing[key]; !ok {
		return false
	}
	delete(s.typing, key)
	return true
}

// takeTyping removes and returns the typing indicators held for one board
func (s *Session) takeTyping(boardID uuid.UUID) []typingKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []typingKey
	for key := range s.typing {
		if key.boardID == boardID {
			keys = append(keys, key)
			delete(s.typing, key)
		}
	}
	return keys
}

// takeAllTyping removes and returns every typing indicator the session holds
func (s *Session) takeAllTyping() []typingKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]typingKey, 0, len(s.typing))
	for key := range s.typing {
		keys = append(keys, key)
	}
	s.typing = make(map[typingKey]struct{})
	return keys
}

// readPump reads messages from the peer and hands them to the gateway. It
// owns the connection's read side and runs the disconnect cleanup when the
// peer goes away.
func (s *Session) readPump(ctx context.Context, g *Gateway) {
	defer func() {
		g.handleDisconnect(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				g.logger.Warn("WebSocket closed unexpectedly",
					zap.String("socketId", s.id),
					zap.Error(err))
			}
			break
		}
		g.handleMessage(ctx, s, raw)
	}
}

// writePump drains the send channel to the peer and keeps the connection
// alive with pings. It exits when the send channel closes or a write fails.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
