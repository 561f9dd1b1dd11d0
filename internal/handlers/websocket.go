package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"statuscheck-backend/internal/debounce"
	"statuscheck-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for MVP
	},
}

// checkDelay is the quiet interval before a username availability
// query fires; rapid keystrokes reset it.
const checkDelay = 500 * time.Millisecond

// WSMessage is the envelope for both directions of the live connection.
type WSMessage struct {
	Type        string          `json:"type"`
	Topic       string          `json:"topic,omitempty"`
	Event       *services.Event `json:"event,omitempty"`
	Username    string          `json:"username,omitempty"`
	State       string          `json:"state,omitempty"`
	Suggestions []string        `json:"suggestions,omitempty"`
	Message     string          `json:"message,omitempty"`
}

// WebSocketHandler owns the live session protocol: topic subscriptions
// with guaranteed cancellation on disconnect, and the debounced
// username availability check.
type WebSocketHandler struct {
	hub            *services.Hub
	authService    *services.AuthService
	profileService *services.ProfileService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	hub *services.Hub,
	authService *services.AuthService,
	profileService *services.ProfileService,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		authService:    authService,
		profileService: profileService,
	}
}

// wsConn serializes writes; gorilla connections allow one writer at a time.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) send(msg WSMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Topic kinds a session may subscribe to. Every topic is scoped to the
// session's own user id.
var topicKinds = map[string]func(string) string{
	"profile": services.ProfileTopic,
	"circle":  services.CircleTopic,
	"journal": services.JournalTopic,
	"alert":   services.AlertTopic,
}

// HandleWebSocket handles GET /ws?token=...
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "token required", http.StatusUnauthorized)
		return
	}

	userID, err := h.authService.ValidateJWT(token)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ws := &wsConn{conn: conn}

	// Opening the session replaces any previous one for this user and
	// immediately binds the profile and alert listeners; closing it
	// cancels everything the session subscribed to.
	session := h.hub.OpenSession(userID)
	defer session.Close()
	session.Subscribe(services.ProfileTopic(userID))
	session.Subscribe(services.AlertTopic(userID))

	deb := debounce.New(checkDelay)
	defer deb.Stop()

	// Pump live events to the client until the session ends.
	go func() {
		for ev := range session.Events() {
			e := ev
			msg := WSMessage{Type: "event", Topic: ev.Topic, Event: &e}
			if err := ws.send(msg); err != nil {
				log.Error().Err(err).Str("user_id", userID).Msg("Failed to deliver event")
				return
			}
		}
	}()

	log.Info().Str("user_id", userID).Msg("WebSocket connection established")

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("user_id", userID).Msg("WebSocket error")
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to parse WebSocket message")
			h.sendError(ws, "Invalid message format")
			continue
		}

		if err := h.handleMessage(ctx, ws, session, deb, msg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("type", msg.Type).Msg("Failed to handle message")
			h.sendError(ws, err.Error())
		}
	}
}

// handleMessage processes incoming WebSocket messages
func (h *WebSocketHandler) handleMessage(
	ctx context.Context,
	ws *wsConn,
	session *services.Session,
	deb *debounce.Debouncer,
	msg WSMessage,
) error {
	switch msg.Type {
	case "subscribe":
		topic, ok := topicKinds[msg.Topic]
		if !ok {
			return h.sendError(ws, "Unknown topic")
		}
		session.Subscribe(topic(session.UserID()))
		return nil
	case "unsubscribe":
		topic, ok := topicKinds[msg.Topic]
		if !ok {
			return h.sendError(ws, "Unknown topic")
		}
		session.Unsubscribe(topic(session.UserID()))
		return nil
	case "check_username":
		h.handleCheckUsername(ctx, ws, deb, msg.Username)
		return nil
	default:
		return h.sendError(ws, "Unknown message type")
	}
}

// handleCheckUsername debounces availability queries: each keystroke
// cancels the pending timer, only the final candidate is queried, and
// a result that was superseded while in flight is discarded.
func (h *WebSocketHandler) handleCheckUsername(ctx context.Context, ws *wsConn, deb *debounce.Debouncer, candidate string) {
	if candidate == "" {
		deb.Stop()
		_ = ws.send(WSMessage{Type: "username_status", State: services.AvailabilityEmpty})
		return
	}

	_ = ws.send(WSMessage{
		Type:     "username_status",
		Username: candidate,
		State:    services.AvailabilityChecking,
	})

	deb.Trigger(func(seq uint64) {
		result, err := h.profileService.CheckUsername(ctx, candidate)
		if err != nil {
			log.Error().Err(err).Str("username", candidate).Msg("Username check failed")
			return
		}
		if deb.Superseded(seq) {
			// A newer candidate is already being checked.
			return
		}
		_ = ws.send(WSMessage{
			Type:        "username_status",
			Username:    result.Username,
			State:       result.State,
			Suggestions: result.Suggestions,
		})
	})
}

// sendError sends an error message over the live connection
func (h *WebSocketHandler) sendError(ws *wsConn, message string) error {
	return ws.send(WSMessage{Type: "error", Message: message})
}
