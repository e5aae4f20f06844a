package repository

import (
	"github.com/PriyanshVijay26/quiz-master/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) Create(msg *model.ChatMessage) error {
	return r.DB.Omit(clause.Associations).Create(msg).Error
}

// ListBetween 两个用户之间的全部消息，按写入顺序
func (r *ChatRepository) ListBetween(userA, userB uint) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := r.DB.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", userA, userB, userB, userA).
		Order("id asc").
		Find(&msgs).Error
	return msgs, err
}

func (r *ChatRepository) ListForUser(userID uint) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := r.DB.
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("id asc").
		Find(&msgs).Error
	return msgs, err
}
