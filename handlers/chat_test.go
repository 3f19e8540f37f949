package handlers_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"grillbook/handlers"
	"grillbook/models"
	"grillbook/services/chat"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompletions struct {
	reply       string
	err         error
	lastContent string
}

func (f *fakeCompletions) Complete(_ context.Context, _ string, _ []models.Message) (string, error) {
	return f.reply, f.err
}

func (f *fakeCompletions) Summarize(_ context.Context, content string) (string, error) {
	f.lastContent = content
	return f.reply, f.err
}

type fakeBookings struct{}

func (fakeBookings) Append(context.Context, models.BookingRecord) error { return nil }
func (fakeBookings) FindAndReplace(context.Context, string, models.BookingRecord) (bool, error) {
	return false, nil
}
func (fakeBookings) ClearAndReset(context.Context) error { return nil }

type fixedLoader struct{ summary string }

func (l fixedLoader) Load() (string, error) { return l.summary, nil }

func newChatServer(t *testing.T, summary string, completions *fakeCompletions) (*httptest.Server, *chat.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := chat.NewRegistry(fixedLoader{summary: summary})
	engine := &chat.Engine{Completions: completions, Bookings: fakeBookings{}}

	r := gin.New()
	h := handlers.NewChatHandler(registry, engine, 20, 0)
	r.GET("/ws/:sessionID", h.HandleSession)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, registry
}

func dial(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readReply consumes one full streamed reply, returning the chunk contents
// in order. It fails the test unless the frames are well-formed and end with
// exactly one terminal frame.
func readReply(t *testing.T, conn *websocket.Conn) []string {
	t.Helper()
	var chunks []string
	for {
		var frame struct {
			Content string `json:"content"`
			Status  string `json:"status"`
		}
		require.NoError(t, conn.ReadJSON(&frame))
		if frame.Status == "end" {
			assert.Empty(t, frame.Content)
			return chunks
		}
		require.Equal(t, "streaming", frame.Status)
		chunks = append(chunks, frame.Content)
	}
}

func send(t *testing.T, conn *websocket.Conn, text string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]string{"message": text}))
}

func TestNewSessionIsGreetedWithSummary(t *testing.T) {
	summary := "Welcome! Ask me about bookings."
	srv, _ := newChatServer(t, summary, &fakeCompletions{})
	conn := dial(t, srv, "greet-1")

	chunks := readReply(t, conn)
	assert.Equal(t, summary, strings.Join(chunks, ""))
	for _, c := range chunks[:len(chunks)-1] {
		assert.Len(t, []rune(c), 20)
	}
}

func TestReplyStreamsInFixedChunks(t *testing.T) {
	reply := strings.Repeat("x", 45)
	srv, _ := newChatServer(t, "hi", &fakeCompletions{reply: reply})
	conn := dial(t, srv, "chunks-1")
	readReply(t, conn) // greeting

	send(t, conn, "what time do you open?")
	chunks := readReply(t, conn)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 20)
	assert.Len(t, chunks[1], 20)
	assert.Len(t, chunks[2], 5)
	assert.Equal(t, reply, strings.Join(chunks, ""))
}

func TestGreetingIsNotRepeatedOnReconnectOfLiveSession(t *testing.T) {
	srv, registry := newChatServer(t, "hello", &fakeCompletions{reply: "fine"})
	conn := dial(t, srv, "twice-1")
	readReply(t, conn) // greeting

	second := dial(t, srv, "twice-1")
	// The session already exists, so no greeting is streamed; the next frame
	// this connection sees is the reply to its own message.
	send(t, second, "how are you?")
	chunks := readReply(t, second)
	assert.Equal(t, "fine", strings.Join(chunks, ""))

	_, ok := registry.Get("twice-1")
	assert.True(t, ok)
}

func TestBookingFlowOverTransport(t *testing.T) {
	srv, _ := newChatServer(t, "hi", &fakeCompletions{})
	conn := dial(t, srv, "flow-1")
	readReply(t, conn) // greeting

	send(t, conn, "I want to book a table")
	chunks := readReply(t, conn)
	assert.Contains(t, strings.Join(chunks, ""), "What's your name?")
}

func TestEngineErrorYieldsApologeticReply(t *testing.T) {
	srv, _ := newChatServer(t, "hi", &fakeCompletions{err: errors.New("model offline")})
	conn := dial(t, srv, "err-1")
	readReply(t, conn) // greeting

	send(t, conn, "what's on the menu?")
	chunks := readReply(t, conn)
	assert.Contains(t, strings.Join(chunks, ""), "Sorry, something went wrong")
}

func TestHistoryOrderingAndDisconnectCleanup(t *testing.T) {
	srv, registry := newChatServer(t, "hi", &fakeCompletions{reply: "an answer"})
	conn := dial(t, srv, "hist-1")
	readReply(t, conn) // greeting, never committed to history

	send(t, conn, "first question")
	readReply(t, conn)
	send(t, conn, "second question")
	readReply(t, conn)

	sess, ok := registry.Get("hist-1")
	require.True(t, ok)

	conn.Close()
	require.Eventually(t, func() bool {
		_, ok := registry.Get("hist-1")
		return !ok
	}, time.Second, 10*time.Millisecond, "disconnect must deregister the session")

	require.Len(t, sess.Messages, 4)
	assert.Equal(t, models.RoleUser, sess.Messages[0].Role)
	assert.Equal(t, "first question", sess.Messages[0].Content)
	assert.Equal(t, models.RoleAssistant, sess.Messages[1].Role)
	assert.Equal(t, models.RoleUser, sess.Messages[2].Role)
	assert.Equal(t, "second question", sess.Messages[2].Content)
	assert.Equal(t, models.RoleAssistant, sess.Messages[3].Role)
}
