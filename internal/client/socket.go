package client

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/realtime"
)

const (
	socketWriteWait  = 10 * time.Second
	socketPongWait   = 60 * time.Second
	reconnectBase    = time.Second
	reconnectCeiling = 30 * time.Second
)

// SocketCallbacks are the hooks the application wires before connecting.
// All of them are optional and run on the socket's read goroutine.
type SocketCallbacks struct {
	// OnReconnect fires after a dropped connection is re-established and
	// the tracked boards have been re-joined. Events missed while offline
	// are unrecoverable over the socket, so the application must re-fetch
	// authoritative board state over REST from here.
	OnReconnect func()
	// OnAccessDenied fires when the server rejects an operation on this
	// socket.
	OnAccessDenied func(message string)
	// OnRealtimeDisabled fires when the server refuses the connection
	// because realtime is switched off; the socket stops reconnecting.
	OnRealtimeDisabled func(message string)
}

// Socket owns the single long-lived connection of an authenticated
// session. It authenticates on connect, forwards broadcasts into the
// store, and on reconnect re-joins the tracked boards itself -- the
// server does not restore room membership for a fresh connection.
type Socket struct {
	url       string
	token     string
	store     *Store
	callbacks SocketCallbacks
	dialer    *websocket.Dialer
	logger    *zap.Logger

	mu       sync.Mutex
	conn     *websocket.Conn
	authed   bool
	joined   map[string]struct{}
	closed   bool
	disabled bool
	wasUp    bool
}

// NewSocket creates a socket manager for one gateway URL and identity
// token. Connect must be called before any other operation.
func NewSocket(url, token string, store *Store, callbacks SocketCallbacks, logger *zap.Logger) *Socket {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Socket{
		url:       url,
		token:     token,
		store:     store,
		callbacks: callbacks,
		dialer:    &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		logger:    logger,
		joined:    make(map[string]struct{}),
	}
}

// Connect dials the gateway and starts the read loop. The first dial is
// synchronous so the caller learns immediately whether the gateway is
// reachable; later drops reconnect in the background with exponential
// backoff.
func (s *Socket) Connect(ctx context.Context) error {
	conn, err := s.dial(ctx)
	if err != nil {
		return err
	}
	go s.run(ctx, conn)
	return nil
}

// Close shuts the connection down for good; no reconnect follows. Called
// on logout or when the application leaves the collaborative context.
func (s *Socket) Close() {
	s.mu.Lock()
	s.closed = true
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if conn != nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(socketWriteWait))
		conn.Close()
	}
	s.store.ResetEphemeral()
}

// JoinBoard subscribes to a board's broadcasts. The board stays tracked
// until LeaveBoard, so a reconnect re-subscribes automatically.
func (s *Socket) JoinBoard(boardID string) {
	s.mu.Lock()
	s.joined[boardID] = struct{}{}
	ready := s.authed
	s.mu.Unlock()

	if ready {
		s.emit(realtime.EventJoinBoard, map[string]string{"boardId": boardID})
	}
}

// LeaveBoard unsubscribes from a board and stops tracking it
func (s *Socket) LeaveBoard(boardID string) {
	s.mu.Lock()
	delete(s.joined, boardID)
	ready := s.authed
	s.mu.Unlock()

	if ready {
		s.emit(realtime.EventLeaveBoard, map[string]string{"boardId": boardID})
	}
}

// TypingStart announces that the user started typing on a card. Best
// effort; dropped when the socket is down.
func (s *Socket) TypingStart(boardID, cardID string) {
	s.emit(realtime.EventTypingStart, map[string]string{"boardId": boardID, "cardId": cardID})
}

// TypingStop announces that the user stopped typing on a card
func (s *Socket) TypingStop(boardID, cardID string) {
	s.emit(realtime.EventTypingStop, map[string]string{"boardId": boardID, "cardId": cardID})
}

func (s *Socket) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, resp, err := s.dialer.DialContext(ctx, s.url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	conn.SetReadDeadline(time.Now().Add(socketPongWait))
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(socketPongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(socketWriteWait))
	})

	s.mu.Lock()
	s.conn = conn
	s.authed = false
	s.mu.Unlock()

	// Authentication is the first frame on every fresh connection
	s.emit(realtime.EventAuthenticate, map[string]string{"token": s.token})
	return conn, nil
}

// run reads the active connection until it drops, then reconnects until
// the socket is closed or the context ends
func (s *Socket) run(ctx context.Context, conn *websocket.Conn) {
	for {
		s.serve(conn)

		// Whatever the server told us about presence and typing died
		// with the connection.
		s.store.ResetEphemeral()
		s.mu.Lock()
		s.authed = false
		s.conn = nil
		done := s.closed || s.disabled
		s.mu.Unlock()
		if done || ctx.Err() != nil {
			return
		}

		next := s.reconnect(ctx)
		if next == nil {
			return
		}
		conn = next
	}
}

// reconnect dials with exponential backoff until it succeeds or the
// socket is closed
func (s *Socket) reconnect(ctx context.Context) *websocket.Conn {
	delay := reconnectBase
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}

		s.mu.Lock()
		stopped := s.closed || s.disabled
		s.mu.Unlock()
		if stopped {
			return nil
		}

		conn, err := s.dial(ctx)
		if err == nil {
			return conn
		}
		s.logger.Warn("Realtime reconnect failed, backing off",
			zap.Duration("retryIn", delay),
			zap.Error(err))
		if delay *= 2; delay > reconnectCeiling {
			delay = reconnectCeiling
		}
	}
}

// serve is the read loop of one connection
func (s *Socket) serve(conn *websocket.Conn) {
	defer conn.Close()
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(socketPongWait))

		envelope, err := realtime.Decode(raw)
		if err != nil {
			s.logger.Warn("Discarding malformed realtime frame", zap.Error(err))
			continue
		}
		s.handle(envelope)
	}
}

func (s *Socket) handle(envelope *realtime.Envelope) {
	switch envelope.Event {
	case realtime.EventAuthSuccess:
		s.onAuthenticated()

	case realtime.EventAccessDenied:
		if s.callbacks.OnAccessDenied != nil {
			s.callbacks.OnAccessDenied(noticeMessage(envelope.Data))
		}

	case realtime.EventRealtimeDisabled:
		s.mu.Lock()
		s.disabled = true
		s.mu.Unlock()
		s.logger.Info("Realtime disabled by server; not reconnecting")
		if s.callbacks.OnRealtimeDisabled != nil {
			s.callbacks.OnRealtimeDisabled(noticeMessage(envelope.Data))
		}

	case realtime.EventJoinedBoard, realtime.EventLeftBoard:
		// Acknowledgements; membership is already tracked locally

	default:
		if err := s.store.Apply(envelope.Event, envelope.Data); err != nil {
			s.logger.Warn("Failed to apply realtime event",
				zap.String("event", envelope.Event),
				zap.Error(err))
		}
	}
}

// onAuthenticated re-joins every tracked board, then -- on anything but
// the first connection -- tells the application to re-fetch, since
// broadcasts missed while disconnected are gone for good.
func (s *Socket) onAuthenticated() {
	s.mu.Lock()
	s.authed = true
	rejoin := make([]string, 0, len(s.joined))
	for boardID := range s.joined {
		rejoin = append(rejoin, boardID)
	}
	reconnected := s.wasUp
	s.wasUp = true
	s.mu.Unlock()

	for _, boardID := range rejoin {
		s.emit(realtime.EventJoinBoard, map[string]string{"boardId": boardID})
	}
	if reconnected && s.callbacks.OnReconnect != nil {
		s.callbacks.OnReconnect()
	}
}

// emit sends one frame on the active connection, dropping it when the
// socket is down
func (s *Socket) emit(event string, payload interface{}) {
	message, err := realtime.Encode(event, payload)
	if err != nil {
		s.logger.Error("Failed to encode client event",
			zap.String("event", event),
			zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return
	}
	s.conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		s.logger.Warn("Realtime write failed",
			zap.String("event", event),
			zap.Error(err))
	}
}

func noticeMessage(data json.RawMessage) string {
	var notice struct {
		Message string `json:"message"`
	}
	json.Unmarshal(data, &notice)
	return notice.Message
}
