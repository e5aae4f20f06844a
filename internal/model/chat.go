package model

import (
	"time"
)

// ChatMessage 用户之间的定向消息，只追加不修改
// swagger:model ChatMessage
type ChatMessage struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	Sender      *User     `gorm:"foreignKey:SenderID" json:"-"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Recipient   *User     `gorm:"foreignKey:RecipientID" json:"-"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
