package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageValidation(t *testing.T) {
	f := newFixture(t)
	sender := f.createUser(t, "sender@example.com", model.RoleUser)
	ctx := context.Background()

	_, err := f.chatSvc.Send(ctx, sender.ID, SendMessageInput{Message: "hi"})
	assert.ErrorIs(t, err, util.ErrMessageRequired)

	_, err = f.chatSvc.Send(ctx, sender.ID, SendMessageInput{RecipientID: uintPtr(sender.ID), Message: "   "})
	assert.ErrorIs(t, err, util.ErrMessageRequired)

	_, err = f.chatSvc.Send(ctx, sender.ID, SendMessageInput{RecipientID: uintPtr(9999), Message: "hi"})
	assert.ErrorIs(t, err, util.ErrRecipientNotFound)
}

func TestSendAndListMessages(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "admin@example.com", model.RoleAdmin)
	alice := f.createUser(t, "alice@example.com", model.RoleUser)
	bob := f.createUser(t, "bob@example.com", model.RoleUser)
	ctx := context.Background()

	_, err := f.chatSvc.Send(ctx, admin.ID, SendMessageInput{RecipientID: uintPtr(alice.ID), Message: "Your attempt was flagged"})
	require.NoError(t, err)
	_, err = f.chatSvc.Send(ctx, alice.ID, SendMessageInput{RecipientID: uintPtr(admin.ID), Message: "I switched tabs by accident"})
	require.NoError(t, err)
	_, err = f.chatSvc.Send(ctx, admin.ID, SendMessageInput{RecipientID: uintPtr(bob.ID), Message: "Welcome"})
	require.NoError(t, err)

	thread, err := f.chatSvc.List(alice.ID, admin.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "Your attempt was flagged", thread[0].Message)
	assert.Equal(t, alice.ID, thread[1].SenderID)

	all, err := f.chatSvc.List(admin.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bobs, err := f.chatSvc.List(bob.ID, 0)
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	assert.Equal(t, "Welcome", bobs[0].Message)
}

func dialHub(t *testing.T, hub *ChatHub, userID uint) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r, userID)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.IsUserOnline(userID) }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func TestSendMessagePushesToOnlineRecipient(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "admin@example.com", model.RoleAdmin)
	alice := f.createUser(t, "alice@example.com", model.RoleUser)

	hub := NewChatHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	f.chatSvc.Hub = hub

	conn := dialHub(t, hub, alice.ID)

	msg, err := f.chatSvc.Send(context.Background(), admin.ID, SendMessageInput{RecipientID: uintPtr(alice.ID), Message: "ping"})
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got struct {
		Type string            `json:"type"`
		Data model.ChatMessage `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "CHAT_MESSAGE", got.Type)
	assert.Equal(t, msg.ID, got.Data.ID)
	assert.Equal(t, admin.ID, got.Data.SenderID)
	assert.Equal(t, "ping", got.Data.Message)
}

func TestChatHubReplacesExistingConnection(t *testing.T) {
	hub := NewChatHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	assert.False(t, hub.IsUserOnline(42))
	first := dialHub(t, hub, 42)
	second := dialHub(t, hub, 42)

	// 旧连接会收到关闭帧
	require.NoError(t, first.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := first.ReadMessage()
	assert.Error(t, err)

	hub.PushToUsers(context.Background(), []uint{42}, WSMessage{Type: "NOTICE", Data: "still here"})
	require.NoError(t, second.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got WSMessage
	require.NoError(t, second.ReadJSON(&got))
	assert.Equal(t, "NOTICE", got.Type)
	assert.Equal(t, "still here", got.Data)
	assert.True(t, hub.IsUserOnline(42))
}

func TestServeWsAfterHubStopped(t *testing.T) {
	hub := NewChatHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	cancel()

	select {
	case <-hub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	served := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r, 7)
		close(served)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	select {
	case <-served:
	case <-time.After(2 * time.Second):
		t.Fatal("ServeWs blocked after the hub stopped")
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected read error: %v", err)
	assert.False(t, hub.IsUserOnline(7))
}

func TestConnectionClosesCleanlyAfterHubStopped(t *testing.T) {
	hub := NewChatHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	conn := dialHub(t, hub, 9)
	cancel()
	<-hub.Done()

	// 写端关闭后读端退出，注销不会阻塞
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.False(t, hub.IsUserOnline(9))
}
