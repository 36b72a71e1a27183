package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/standapp/standapp-backend/internal/models"
	"github.com/standapp/standapp-backend/internal/services"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, allowed := range wsAllowedOrigins {
			if strings.EqualFold(origin, allowed) {
				return true
			}
		}
		return false
	},
}

var wsAllowedOrigins []string

// InitChatWS configures the origins accepted for WebSocket upgrades
func InitChatWS(origins []string) {
	wsAllowedOrigins = origins
}

// wsConn serializes writes. The ping loop and the streaming turn handler
// write from different goroutines and gorilla/websocket allows one writer.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) writeEvent(ev wsEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(ev); err != nil {
		log.Printf("WebSocket write error: %v", err)
	}
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// wsEvent is one server-to-client frame
type wsEvent struct {
	Type      string           `json:"type"`
	Text      string           `json:"text,omitempty"`
	Message   string           `json:"message,omitempty"`
	Resources *CrisisResources `json:"resources,omitempty"`
}

// wsIncoming is one client-to-server frame
type wsIncoming struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func greeting(profile *models.UserProfile) string {
	if profile.Language == models.LanguageSinhala {
		if profile.Name != "" {
			return "ආයුබෝවන් " + profile.Name + "! මම STANDAPP. අද ඔබට සහාය විය හැක්කේ කෙසේද?"
		}
		return "ආයුබෝවන්! මම STANDAPP. අද ඔබට සහාය විය හැක්කේ කෙසේද?"
	}
	if profile.Name != "" {
		return "Hi " + profile.Name + "! I'm STANDAPP. How can I support you today?"
	}
	return "Hi! I'm STANDAPP. How can I support you today?"
}

// chatToken pulls the session token from the Authorization header or the
// token query parameter. Browsers cannot set headers on WebSocket upgrades,
// so the query form is the common path.
func chatToken(r *http.Request) string {
	if token := extractBearerToken(r); token != "" {
		return token
	}
	return r.URL.Query().Get("token")
}

// ChatWebSocket handles GET /ws/chat. One connection is one conversation:
// the session carries its history on the provider side and turns are
// processed sequentially.
func ChatWebSocket(w http.ResponseWriter, r *http.Request) {
	token := chatToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	profile, err := authService.Restore(r.Context(), token)
	if err != nil || profile == nil {
		respondError(w, http.StatusUnauthorized, "Invalid or expired session")
		return
	}
	if generator == nil {
		respondError(w, http.StatusServiceUnavailable, "Chat is not configured")
		return
	}

	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer raw.Close()
	conn := &wsConn{conn: raw}

	raw.SetReadLimit(maxMessageSize)
	raw.SetReadDeadline(time.Now().Add(pongWait))
	raw.SetPongHandler(func(string) error {
		raw.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	session, err := generator.StartChat(r.Context(), profile.Language, profile.Name)
	if err != nil {
		log.Printf("Failed to start chat session for %s: %v", profile.Username, err)
		conn.writeEvent(wsEvent{Type: "error", Message: "Failed to start conversation"})
		return
	}

	conn.writeEvent(wsEvent{Type: "ready", Text: greeting(profile)})

	// Keep the connection alive across slow generations.
	stopPing := make(chan struct{})
	defer close(stopPing)
	go pingLoop(conn, stopPing)

	// One message per 2 seconds with a small burst. Enforced per connection.
	limiter := rate.NewLimiter(rate.Every(2*time.Second), 3)

	for {
		var in wsIncoming
		if err := raw.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error for %s: %v", profile.Username, err)
			}
			return
		}
		raw.SetReadDeadline(time.Now().Add(pongWait))

		if in.Type != "message" {
			continue
		}
		text := strings.TrimSpace(in.Text)
		if text == "" {
			continue
		}

		if !limiter.Allow() {
			conn.writeEvent(wsEvent{Type: "error", Message: "You're sending messages too quickly. Take a breath."})
			continue
		}

		handleChatTurn(conn, session, profile, text)
	}
}

// handleChatTurn processes one user message: safety scan, persistence, and
// the streamed model reply.
func handleChatTurn(conn *wsConn, session *services.ChatSession, profile *models.UserProfile, text string) {
	services.SaveChatMessageAsync(models.ChatMessage{
		Username:  profile.Username,
		Role:      models.RoleUser,
		Text:      text,
		Timestamp: time.Now().UTC(),
	})

	if status := services.ScanMessage(text); status == models.SafetyCrisis {
		resources := CrisisResourcesFor(profile.Language)
		conn.writeEvent(wsEvent{Type: "crisis_resources", Resources: &resources})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var reply strings.Builder
	err := session.StreamReply(ctx, text, func(chunk string) {
		reply.WriteString(chunk)
		conn.writeEvent(wsEvent{Type: "chunk", Text: chunk})
	})
	if err != nil {
		log.Printf("Chat generation error for %s: %v", profile.Username, err)
		conn.writeEvent(wsEvent{Type: "error", Message: "I couldn't respond just now. Please try again."})
		return
	}

	conn.writeEvent(wsEvent{Type: "done"})

	if reply.Len() > 0 {
		services.SaveChatMessageAsync(models.ChatMessage{
			Username:  profile.Username,
			Role:      models.RoleModel,
			Text:      reply.String(),
			Timestamp: time.Now().UTC(),
		})
	}
}

func pingLoop(conn *wsConn, stop <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}
