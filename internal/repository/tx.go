package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager 工作单元：fn 返回错误或发生 panic 时整体回滚
type TxManager struct {
	DB *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{DB: db}
}

func (m *TxManager) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.DB.WithContext(ctx).Transaction(fn)
}
