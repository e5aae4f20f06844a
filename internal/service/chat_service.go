package service

import (
	"context"
	"strings"
	"time"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/repository"
	"github.com/PriyanshVijay26/quiz-master/internal/util"
)

type SendMessageInput struct {
	RecipientID *uint  `json:"recipient_id"`
	Message     string `json:"message"`
}

type ChatService struct {
	ChatRepo *repository.ChatRepository
	UserRepo *repository.UserRepository
	Hub      *ChatHub
}

func NewChatService(chatRepo *repository.ChatRepository, userRepo *repository.UserRepository, hub *ChatHub) *ChatService {
	return &ChatService{
		ChatRepo: chatRepo,
		UserRepo: userRepo,
		Hub:      hub,
	}
}

// Send 落库后推送给在线的接收方
func (s *ChatService) Send(ctx context.Context, senderID uint, in SendMessageInput) (*model.ChatMessage, error) {
	if in.RecipientID == nil || strings.TrimSpace(in.Message) == "" {
		return nil, util.ErrMessageRequired
	}

	ok, err := s.UserRepo.Exists(*in.RecipientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrRecipientNotFound
	}

	msg := &model.ChatMessage{
		SenderID:    senderID,
		RecipientID: *in.RecipientID,
		Message:     in.Message,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.ChatRepo.Create(msg); err != nil {
		return nil, err
	}

	if s.Hub != nil {
		s.Hub.PushToUsers(ctx, []uint{msg.RecipientID}, WSMessage{Type: "CHAT_MESSAGE", Data: msg})
	}
	return msg, nil
}

// List withUserID 为 0 时返回当前用户收发的全部消息
func (s *ChatService) List(userID, withUserID uint) ([]model.ChatMessage, error) {
	if withUserID == 0 {
		return s.ChatRepo.ListForUser(userID)
	}
	return s.ChatRepo.ListBetween(userID, withUserID)
}
