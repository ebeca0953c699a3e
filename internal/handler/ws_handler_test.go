package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/realtime"
)

const wsTestSecret = "ws-handler-test-secret"

// allowAllResolver grants every user access to every board
type allowAllResolver struct{}

func (allowAllResolver) CanAccess(ctx context.Context, userID, boardID uuid.UUID) (bool, error) {
	return true, nil
}

// newWSServer wires a live gateway behind the websocket route and returns
// a test server speaking the real protocol end to end.
func newWSServer(t *testing.T, settingsService *MockSettingsService) *httptest.Server {
	t.Helper()

	hub := realtime.NewHub(16, nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	tracker := realtime.NewTracker()
	gateway := realtime.NewGateway(hub, tracker, allowAllResolver{}, settingsService, wsTestSecret, 16, nil, zap.NewNop())
	handler := NewWSHandler(gateway, zap.NewNop())

	router := setupTestRouter()
	router.GET("/ws", handler.Serve)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return server
}

func dialWS(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func wsSend(t *testing.T, conn *websocket.Conn, event string, payload interface{}) {
	t.Helper()
	raw, err := realtime.Encode(event, payload)
	if err != nil {
		t.Fatalf("Failed to encode %s: %v", event, err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		t.Fatalf("Failed to send %s: %v", event, err)
	}
}

func wsRead(t *testing.T, conn *websocket.Conn) *realtime.Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read frame: %v", err)
	}
	env, err := realtime.Decode(raw)
	if err != nil {
		t.Fatalf("Failed to decode frame %q: %v", raw, err)
	}
	return env
}

func wsMintToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userID.String()})
	signed, err := token.SignedString([]byte(wsTestSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func TestWSHandler_RealtimeDisabled(t *testing.T) {
	settingsService := &MockSettingsService{
		RealtimeEnabledFunc: func(ctx context.Context) bool { return false },
	}
	server := newWSServer(t, settingsService)
	conn := dialWS(t, server)

	env := wsRead(t, conn)
	if env.Event != realtime.EventRealtimeDisabled {
		t.Fatalf("first frame = %q, want %q", env.Event, realtime.EventRealtimeDisabled)
	}

	// The server hangs up right after the notice
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("connection still open after realtimeDisabled notice")
	}
}

func TestWSHandler_AuthenticateAndJoin(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()

	server := newWSServer(t, &MockSettingsService{})
	conn := dialWS(t, server)

	// Authenticate binds the socket to the token's user
	wsSend(t, conn, realtime.EventAuthenticate, realtime.AuthenticatePayload{Token: wsMintToken(t, userID)})
	env := wsRead(t, conn)
	if env.Event != realtime.EventAuthSuccess {
		t.Fatalf("auth reply = %q, want %q", env.Event, realtime.EventAuthSuccess)
	}
	var auth realtime.AuthSuccessPayload
	if err := json.Unmarshal(env.Data, &auth); err != nil {
		t.Fatalf("Failed to decode authSuccess: %v", err)
	}
	if auth.UserID != userID {
		t.Errorf("authSuccess userId = %v, want %v", auth.UserID, userID)
	}

	// Joining acks and then announces the new presence to the room,
	// which now includes the joiner itself
	wsSend(t, conn, realtime.EventJoinBoard, realtime.BoardPayload{BoardID: boardID})
	env = wsRead(t, conn)
	if env.Event != realtime.EventJoinedBoard {
		t.Fatalf("join reply = %q, want %q", env.Event, realtime.EventJoinedBoard)
	}
	var joined realtime.BoardPayload
	if err := json.Unmarshal(env.Data, &joined); err != nil {
		t.Fatalf("Failed to decode joinedBoard: %v", err)
	}
	if joined.BoardID != boardID {
		t.Errorf("joinedBoard boardId = %v, want %v", joined.BoardID, boardID)
	}

	env = wsRead(t, conn)
	if env.Event != realtime.EventPresenceUpdated {
		t.Fatalf("frame after join = %q, want %q", env.Event, realtime.EventPresenceUpdated)
	}
	var presence realtime.PresencePayload
	if err := json.Unmarshal(env.Data, &presence); err != nil {
		t.Fatalf("Failed to decode presenceUpdated: %v", err)
	}
	if len(presence.UserIDs) != 1 || presence.UserIDs[0] != userID {
		t.Errorf("presenceUpdated users = %v, want [%v]", presence.UserIDs, userID)
	}
}

func TestWSHandler_AuthenticateBadToken(t *testing.T) {
	server := newWSServer(t, &MockSettingsService{})
	conn := dialWS(t, server)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": uuid.New().String()})
	signed, err := token.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	wsSend(t, conn, realtime.EventAuthenticate, realtime.AuthenticatePayload{Token: signed})
	env := wsRead(t, conn)
	if env.Event != realtime.EventAccessDenied {
		t.Errorf("auth reply = %q, want %q", env.Event, realtime.EventAccessDenied)
	}
}
