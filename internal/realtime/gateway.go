package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/access"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/dto"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/settings"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/util"
)

// Notifier is the broadcast API the mutation services call after a
// successful write. Calls are fire-and-forget: they never fail the caller,
// and they silently no-op while realtime is disabled so REST keeps working
// when the socket layer is switched off.
type Notifier interface {
	NotifyBoardUpdated(ctx context.Context, boardID uuid.UUID, board *dto.BoardResponse)
	NotifyBoardDeleted(ctx context.Context, boardID uuid.UUID)
	NotifyListCreated(ctx context.Context, boardID uuid.UUID, list *dto.ListResponse)
	NotifyListUpdated(ctx context.Context, boardID uuid.UUID, list *dto.ListResponse)
	NotifyListDeleted(ctx context.Context, boardID uuid.UUID, deleted *dto.ListDeletedResponse)
	NotifyCardCreated(ctx context.Context, boardID uuid.UUID, card *dto.CardResponse)
	NotifyCardUpdated(ctx context.Context, boardID uuid.UUID, card *dto.CardResponse)
	NotifyCardMoved(ctx context.Context, boardID uuid.UUID, moved *dto.CardMovedResponse)
	NotifyCardDeleted(ctx context.Context, boardID uuid.UUID, deleted *dto.CardDeletedResponse)
	NotifyCommentCreated(ctx context.Context, boardID uuid.UUID, comment *dto.CommentResponse)
	NotifyCommentUpdated(ctx context.Context, boardID uuid.UUID, comment *dto.CommentResponse)
	NotifyCommentDeleted(ctx context.Context, boardID uuid.UUID, deleted *dto.CommentDeletedResponse)
	NotifyActivityCreated(ctx context.Context, boardID uuid.UUID, activity *dto.ActivityResponse)
	NotifyMemberAdded(ctx context.Context, boardID uuid.UUID, member *dto.MemberResponse)
	NotifyMemberRemoved(ctx context.Context, boardID uuid.UUID, removed *dto.MemberRemovedResponse)
}

// Gateway drives the socket protocol: authentication, room joins gated by
// the access resolver, presence and typing relays, and the Notifier
// broadcasts. One Gateway serves every connection.
type Gateway struct {
	hub        *Hub
	tracker    *Tracker
	resolver   access.Resolver
	settings   settings.Service
	jwtSecret  string
	sendBuffer int
	recorder   Recorder
	logger     *zap.Logger
}

func NewGateway(
	hub *Hub,
	tracker *Tracker,
	resolver access.Resolver,
	settingsService settings.Service,
	jwtSecret string,
	sendBuffer int,
	recorder Recorder,
	logger *zap.Logger,
) *Gateway {
	return &Gateway{
		hub:        hub,
		tracker:    tracker,
		resolver:   resolver,
		settings:   settingsService,
		jwtSecret:  jwtSecret,
		sendBuffer: sendBuffer,
		recorder:   recorder,
		logger:     logger,
	}
}

// Tracker exposes the presence state, e.g. for the REST presence endpoint
func (g *Gateway) Tracker() *Tracker {
	return g.tracker
}

// ServeConn runs the protocol on an upgraded websocket connection. It
// blocks until the peer disconnects. When realtime is disabled the peer
// gets a realtimeDisabled notice and the connection is closed before any
// message is read.
func (g *Gateway) ServeConn(ctx context.Context, conn *websocket.Conn) {
	if !g.settings.RealtimeEnabled(ctx) {
		if notice, err := Encode(EventRealtimeDisabled, NoticePayload{Message: "Realtime collaboration is disabled"}); err == nil {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.TextMessage, notice)
		}
		conn.Close()
		return
	}

	session := newSession(conn, g.sendBuffer)
	if g.recorder != nil {
		g.recorder.SocketConnected()
	}
	g.logger.Info("WebSocket connected", zap.String("socketId", session.id))

	go session.writePump()
	session.readPump(ctx, g)
}

func (g *Gateway) handleMessage(ctx context.Context, s *Session, raw []byte) {
	envelope, err := Decode(raw)
	if err != nil {
		g.logger.Warn("Failed to parse realtime message",
			zap.String("socketId", s.id),
			zap.Error(err))
		return
	}

	switch envelope.Event {
	case EventAuthenticate:
		g.handleAuthenticate(s, envelope.Data)
	case EventJoinBoard:
		g.handleJoinBoard(ctx, s, envelope.Data)
	case EventLeaveBoard:
		g.handleLeaveBoard(s, envelope.Data)
	case EventTypingStart:
		g.handleTyping(s, envelope.Data, true)
	case EventTypingStop:
		g.handleTyping(s, envelope.Data, false)
	default:
		g.logger.Warn("Unknown realtime event",
			zap.String("event", envelope.Event),
			zap.String("socketId", s.id))
	}
}

// handleAuthenticate binds the socket to the user carried by a valid
// token. Failures are reported to the socket only and leave its state
// untouched; authenticating an already-bound socket re-acknowledges the
// existing identity.
func (g *Gateway) handleAuthenticate(s *Session, data json.RawMessage) {
	var payload AuthenticatePayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.Token == "" {
		g.sendTo(s, EventAccessDenied, NoticePayload{Message: "Invalid token"})
		return
	}

	userID, err := util.ParseUserID(payload.Token, g.jwtSecret)
	if err != nil {
		g.logger.Warn("WebSocket authentication failed",
			zap.String("socketId", s.id),
			zap.Error(err))
		g.sendTo(s, EventAccessDenied, NoticePayload{Message: "Invalid token"})
		return
	}

	bound := s.bindUser(userID)
	g.sendTo(s, EventAuthSuccess, AuthSuccessPayload{UserID: bound})
	g.logger.Info("WebSocket authenticated",
		zap.String("socketId", s.id),
		zap.String("userId", bound.String()))
}

// handleJoinBoard grants room membership after the access resolver allows
// it. The socket is only added to the room once the check has resolved, so
// a denied socket can never see a broadcast for the board.
func (g *Gateway) handleJoinBoard(ctx context.Context, s *Session, data json.RawMessage) {
	userID, authenticated := s.user()
	if !authenticated {
		g.sendTo(s, EventAccessDenied, NoticePayload{Message: "Authentication required"})
		return
	}

	var payload BoardPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.BoardID == uuid.Nil {
		g.sendTo(s, EventAccessDenied, NoticePayload{Message: "Invalid board id"})
		return
	}

	allowed, err := g.resolver.CanAccess(ctx, userID, payload.BoardID)
	if err != nil {
		g.logger.Error("Board access check failed",
			zap.String("boardId", payload.BoardID.String()),
			zap.String("userId", userID.String()),
			zap.Error(err))
	}
	if err != nil || !allowed {
		g.sendTo(s, EventAccessDenied, NoticePayload{Message: "Access to board denied"})
		return
	}

	g.hub.Join(s, payload.BoardID)
	s.markJoined(payload.BoardID)
	g.tracker.Add(payload.BoardID, userID, s.id)

	g.sendTo(s, EventJoinedBoard, BoardPayload{BoardID: payload.BoardID})
	g.broadcastPresence(payload.BoardID)
	g.logger.Info("Socket joined board",
		zap.String("socketId", s.id),
		zap.String("boardId", payload.BoardID.String()),
		zap.String("userId", userID.String()))
}

// handleLeaveBoard is idempotent: leaving a board the socket never joined
// still acknowledges with leftBoard.
func (g *Gateway) handleLeaveBoard(s *Session, data json.RawMessage) {
	var payload BoardPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.BoardID == uuid.Nil {
		return
	}

	g.leaveBoard(s, payload.BoardID)
	g.sendTo(s, EventLeftBoard, BoardPayload{BoardID: payload.BoardID})
}

// leaveBoard removes the socket from the room, stops its typing indicators
// there, and broadcasts a smaller presence list when the user's last socket
// left the board. The leaver is out of the room before the broadcasts, so
// it does not receive them.
func (g *Gateway) leaveBoard(s *Session, boardID uuid.UUID) {
	typingKeys := s.takeTyping(boardID)
	g.hub.Leave(s, boardID)

	userID, authenticated := s.user()
	if !authenticated {
		return
	}
	for _, key := range typingKeys {
		g.broadcastTyping(EventTypingStopped, userID, key)
	}
	if g.tracker.Remove(boardID, userID, s.id) {
		g.broadcastPresence(boardID)
	}
}

// handleTyping relays start and stop indicators to the board room. Only
// transitions broadcast, so repeated starts for the same card stay quiet.
func (g *Gateway) handleTyping(s *Session, data json.RawMessage, start bool) {
	userID, authenticated := s.user()
	if !authenticated {
		g.sendTo(s, EventAccessDenied, NoticePayload{Message: "Authentication required"})
		return
	}

	var payload TypingPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.BoardID == uuid.Nil || payload.CardID == uuid.Nil {
		return
	}
	if !s.isJoined(payload.BoardID) {
		g.sendTo(s, EventAccessDenied, NoticePayload{Message: "Join the board before sending typing updates"})
		return
	}

	key := typingKey{boardID: payload.BoardID, cardID: payload.CardID}
	if start {
		if s.setTyping(key) {
			g.broadcastTyping(EventTypingStarted, userID, key)
		}
	} else {
		if s.clearTyping(key) {
			g.broadcastTyping(EventTypingStopped, userID, key)
		}
	}
}

// handleDisconnect runs the leaveBoard-equivalent cleanup for every board
// the socket had joined. Each affected board gets its typingStopped events
// and, when this was the user's last socket there, exactly one presence
// broadcast.
func (g *Gateway) handleDisconnect(s *Session) {
	typingKeys := s.takeAllTyping()
	g.hub.Detach(s)

	userID, authenticated := s.user()
	if authenticated {
		for _, key := range typingKeys {
			g.broadcastTyping(EventTypingStopped, userID, key)
		}
		for _, departure := range g.tracker.RemoveAll(userID, s.id) {
			if departure.BecameAbsent {
				g.broadcastPresence(departure.BoardID)
			}
		}
	}

	s.closeSend()
	if g.recorder != nil {
		g.recorder.SocketDisconnected()
	}
	g.logger.Info("WebSocket disconnected", zap.String("socketId", s.id))
}

func (g *Gateway) broadcastPresence(boardID uuid.UUID) {
	payload := PresencePayload{
		BoardID: boardID,
		UserIDs: g.tracker.PresentUsers(boardID),
	}
	message, err := Encode(EventPresenceUpdated, payload)
	if err != nil {
		g.logger.Error("Failed to encode presence update", zap.Error(err))
		return
	}
	g.hub.Broadcast(boardID, EventPresenceUpdated, message)
}

func (g *Gateway) broadcastTyping(event string, userID uuid.UUID, key typingKey) {
	message, err := Encode(event, TypingBroadcast{
		UserID:  userID,
		BoardID: key.boardID,
		CardID:  key.cardID,
	})
	if err != nil {
		g.logger.Error("Failed to encode typing event", zap.Error(err))
		return
	}
	g.hub.Broadcast(key.boardID, event, message)
}

// sendTo queues a message for a single socket
func (g *Gateway) sendTo(s *Session, event string, payload interface{}) {
	message, err := Encode(event, payload)
	if err != nil {
		g.logger.Error("Failed to encode event",
			zap.String("event", event),
			zap.Error(err))
		return
	}
	if !s.Enqueue(message) {
		g.logger.Warn("Dropping message to unresponsive socket",
			zap.String("event", event),
			zap.String("socketId", s.id))
	}
}

// notify encodes and broadcasts one mutation event to a board room
func (g *Gateway) notify(ctx context.Context, boardID uuid.UUID, event string, payload interface{}) {
	if !g.settings.RealtimeEnabled(ctx) {
		return
	}
	message, err := Encode(event, payload)
	if err != nil {
		g.logger.Error("Failed to encode broadcast",
			zap.String("event", event),
			zap.Error(err))
		return
	}
	g.hub.Broadcast(boardID, event, message)
}

func (g *Gateway) NotifyBoardUpdated(ctx context.Context, boardID uuid.UUID, board *dto.BoardResponse) {
	g.notify(ctx, boardID, EventBoardUpdated, board)
}

// NotifyBoardDeleted tells every subscriber the board is gone and then
// clears the room and its presence state in one step, so no later
// broadcast can reach former subscribers.
func (g *Gateway) NotifyBoardDeleted(ctx context.Context, boardID uuid.UUID) {
	if !g.settings.RealtimeEnabled(ctx) {
		return
	}
	message, err := Encode(EventBoardDeleted, dto.BoardDeletedResponse{BoardID: boardID})
	if err != nil {
		g.logger.Error("Failed to encode broadcast",
			zap.String("event", EventBoardDeleted),
			zap.Error(err))
		return
	}
	g.hub.ClearRoom(boardID, EventBoardDeleted, message)
	g.tracker.ClearBoard(boardID)
}

func (g *Gateway) NotifyListCreated(ctx context.Context, boardID uuid.UUID, list *dto.ListResponse) {
	g.notify(ctx, boardID, EventListCreated, list)
}

func (g *Gateway) NotifyListUpdated(ctx context.Context, boardID uuid.UUID, list *dto.ListResponse) {
	g.notify(ctx, boardID, EventListUpdated, list)
}

func (g *Gateway) NotifyListDeleted(ctx context.Context, boardID uuid.UUID, deleted *dto.ListDeletedResponse) {
	g.notify(ctx, boardID, EventListDeleted, deleted)
}

func (g *Gateway) NotifyCardCreated(ctx context.Context, boardID uuid.UUID, card *dto.CardResponse) {
	g.notify(ctx, boardID, EventCardCreated, card)
}

func (g *Gateway) NotifyCardUpdated(ctx context.Context, boardID uuid.UUID, card *dto.CardResponse) {
	g.notify(ctx, boardID, EventCardUpdated, card)
}

func (g *Gateway) NotifyCardMoved(ctx context.Context, boardID uuid.UUID, moved *dto.CardMovedResponse) {
	g.notify(ctx, boardID, EventCardMoved, moved)
}

func (g *Gateway) NotifyCardDeleted(ctx context.Context, boardID uuid.UUID, deleted *dto.CardDeletedResponse) {
	g.notify(ctx, boardID, EventCardDeleted, deleted)
}

func (g *Gateway) NotifyCommentCreated(ctx context.Context, boardID uuid.UUID, comment *dto.CommentResponse) {
	g.notify(ctx, boardID, EventCommentCreated, comment)
}

func (g *Gateway) NotifyCommentUpdated(ctx context.Context, boardID uuid.UUID, comment *dto.CommentResponse) {
	g.notify(ctx, boardID, EventCommentUpdated, comment)
}

func (g *Gateway) NotifyCommentDeleted(ctx context.Context, boardID uuid.UUID, deleted *dto.CommentDeletedResponse) {
	g.notify(ctx, boardID, EventCommentDeleted, deleted)
}

func (g *Gateway) NotifyActivityCreated(ctx context.Context, boardID uuid.UUID, activity *dto.ActivityResponse) {
	g.notify(ctx, boardID, EventActivityCreated, activity)
}

func (g *Gateway) NotifyMemberAdded(ctx context.Context, boardID uuid.UUID, member *dto.MemberResponse) {
	g.notify(ctx, boardID, EventMemberAdded, member)
}

// NotifyMemberRemoved broadcasts the revocation to the room, including the
// removed user's own sockets; the client reacts by leaving the board.
func (g *Gateway) NotifyMemberRemoved(ctx context.Context, boardID uuid.UUID, removed *dto.MemberRemovedResponse) {
	g.notify(ctx, boardID, EventMemberRemoved, removed)
}
