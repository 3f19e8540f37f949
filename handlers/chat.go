package handlers

import (
	"net/http"
	"time"

	"grillbook/models"
	"grillbook/services/chat"
	"grillbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const apologyReply = "Sorry, something went wrong while processing your message. Please try again."

// inboundFrame is the envelope carrying one user message.
type inboundFrame struct {
	Message string `json:"message"`
}

// outboundFrame is one chunk of a streamed reply, or the terminal end marker.
type outboundFrame struct {
	Content string `json:"content,omitempty"`
	Status  string `json:"status"`
}

// ChatHandler bridges one websocket to one session: it registers the session,
// greets newly created ones, then reads one message at a time, runs the
// dialogue engine and streams the reply back in fixed-size chunks. All work
// for a session is sequential; sessions only share the registry.
type ChatHandler struct {
	registry   *chat.Registry
	engine     *chat.Engine
	chunkSize  int
	chunkDelay time.Duration
	upgrader   websocket.Upgrader
}

func NewChatHandler(registry *chat.Registry, engine *chat.Engine, chunkSize int, chunkDelay time.Duration) *ChatHandler {
	return &ChatHandler{
		registry:   registry,
		engine:     engine,
		chunkSize:  chunkSize,
		chunkDelay: chunkDelay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// HandleSession serves GET /ws/:sessionID for the connection's lifetime.
func (h *ChatHandler) HandleSession(c *gin.Context) {
	logger := utils.GetLogger()
	sessionID := c.Param("sessionID")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", zap.String("session", sessionID), zap.Error(err))
		return
	}
	defer conn.Close()

	sess, created, err := h.registry.GetOrCreate(sessionID)
	if err != nil {
		logger.Error("session creation failed", zap.String("session", sessionID), zap.Error(err))
		return
	}

	// A brand-new session is greeted with the summary. The greeting is sent
	// as data only and never committed to the history, so the first
	// completion call after it omits the greeting turn.
	if created {
		if err := h.streamReply(conn, sess.Summary); err != nil {
			h.registry.Remove(sessionID)
			return
		}
	}

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			logger.Info("session disconnected", zap.String("session", sessionID), zap.Error(err))
			h.registry.Remove(sessionID)
			return
		}

		sess.Append(models.RoleUser, frame.Message)

		reply, err := h.engine.Process(c.Request.Context(), sess, frame.Message)
		if err != nil {
			logger.Error("dialogue processing failed", zap.String("session", sessionID), zap.Error(err))
			reply = apologyReply
		}

		if err := h.streamReply(conn, reply); err != nil {
			logger.Warn("reply streaming failed", zap.String("session", sessionID), zap.Error(err))
			h.registry.Remove(sessionID)
			return
		}
		sess.Append(models.RoleAssistant, reply)
	}
}

// streamReply delivers text as consecutive fixed-size chunks followed by one
// terminal end frame. Chunk boundaries are code points, so a multi-byte
// character is never split, but grapheme clusters can be.
func (h *ChatHandler) streamReply(conn *websocket.Conn, text string) error {
	runes := []rune(text)
	for i := 0; i < len(runes); i += h.chunkSize {
		end := i + h.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := outboundFrame{Content: string(runes[i:end]), Status: "streaming"}
		if err := conn.WriteJSON(chunk); err != nil {
			return err
		}
		time.Sleep(h.chunkDelay)
	}
	return conn.WriteJSON(outboundFrame{Status: "end"})
}
