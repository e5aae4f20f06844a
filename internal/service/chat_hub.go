package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/PriyanshVijay26/quiz-master/pkg/logger"
	"github.com/PriyanshVijay26/quiz-master/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	shardCount     = 32
	chatChannel    = "chat_channel"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Client struct {
	Hub    *ChatHub
	Conn   *websocket.Conn
	Send   chan []byte
	UserID uint
}

// readPump 只用于处理 pong 与关闭，客户端上行消息一律忽略
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Error("WebSocket unexpected close", zap.Error(err), zap.Uint("userId", c.UserID))
			}
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

type shard struct {
	clients map[uint]*Client
	mu      sync.RWMutex
}

// ChatHub 向在线用户推送新消息，仅作通知，不保证送达。
// 配置了 Redis 时经 pub/sub 转发，否则直接投递到本机连接。
type ChatHub struct {
	shards     [shardCount]*shard
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	Redis      *redis.Client
}

func NewChatHub(rdb *redis.Client) *ChatHub {
	h := &ChatHub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		Redis:      rdb,
	}
	for i := 0; i < shardCount; i++ {
		h.shards[i] = &shard{
			clients: make(map[uint]*Client),
		}
	}
	return h
}

func (h *ChatHub) getShard(userID uint) *shard {
	return h.shards[userID%shardCount]
}

type PubSubMessage struct {
	TargetUsers []uint          `json:"targetUsers"`
	Payload     json.RawMessage `json:"payload"`
}

func (h *ChatHub) Run(ctx context.Context) {
	if h.Redis != nil {
		pubsub := h.Redis.Subscribe(ctx, chatChannel)
		defer pubsub.Close()
		go func() {
			for msg := range pubsub.Channel() {
				var psMsg PubSubMessage
				if err := json.Unmarshal([]byte(msg.Payload), &psMsg); err != nil {
					logger.Log.Error("PubSub unmarshal error", zap.Error(err))
					continue
				}
				h.pushToLocalUsers(psMsg.TargetUsers, psMsg.Payload)
			}
		}()
	}

	for {
		select {
		case client := <-h.register:
			s := h.getShard(client.UserID)
			s.mu.Lock()
			if old, ok := s.clients[client.UserID]; ok {
				close(old.Send)
			} else {
				monitoring.ChatConnections.Inc()
			}
			s.clients[client.UserID] = client
			s.mu.Unlock()

		case client := <-h.unregister:
			s := h.getShard(client.UserID)
			s.mu.Lock()
			if current, ok := s.clients[client.UserID]; ok && current == client {
				delete(s.clients, client.UserID)
				close(client.Send)
				monitoring.ChatConnections.Dec()
			}
			s.mu.Unlock()

		case <-ctx.Done():
			h.stop()
			return
		}
	}
}

// Done 在 Run 退出后关闭
func (h *ChatHub) Done() <-chan struct{} {
	return h.done
}

// stop 关闭所有连接，之后的注册与注销直接放弃
func (h *ChatHub) stop() {
	h.stopOnce.Do(func() { close(h.done) })

	closed := 0
	for i := 0; i < shardCount; i++ {
		s := h.shards[i]
		s.mu.Lock()
		for userID, client := range s.clients {
			close(client.Send)
			delete(s.clients, userID)
			closed++
		}
		s.mu.Unlock()
	}

	monitoring.ChatConnections.Set(0)
	logger.Log.Info("ChatHub stopped", zap.Int("closedConnections", closed))
}

func (h *ChatHub) PushToUsers(ctx context.Context, userIDs []uint, msg WSMessage) {
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return
	}

	if h.Redis == nil {
		h.pushToLocalUsers(userIDs, msgBytes)
		return
	}

	payload, _ := json.Marshal(PubSubMessage{
		TargetUsers: userIDs,
		Payload:     msgBytes,
	})
	if err := h.Redis.Publish(ctx, chatChannel, payload).Err(); err != nil {
		logger.Log.Warn("Chat publish failed, delivering locally", zap.Error(err))
		h.pushToLocalUsers(userIDs, msgBytes)
	}
}

func (h *ChatHub) pushToLocalUsers(userIDs []uint, payload []byte) {
	for _, id := range userIDs {
		s := h.getShard(id)
		s.mu.RLock()
		if client, ok := s.clients[id]; ok {
			select {
			case client.Send <- payload:
			default:
			}
		}
		s.mu.RUnlock()
	}
}

func (h *ChatHub) IsUserOnline(userID uint) bool {
	s := h.getShard(userID)
	s.mu.RLock()
	_, ok := s.clients[userID]
	s.mu.RUnlock()
	return ok
}

func ServeWs(hub *ChatHub, w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("WebSocket upgrade failed", zap.Error(err), zap.Uint("userId", userID))
		return
	}
	client := &Client{
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		UserID: userID,
	}
	select {
	case hub.register <- client:
	case <-hub.done:
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
