package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager wraps gorm's transaction runner so services can be exercised in
// unit tests with a pass-through fake (the repos receive the tx handle and
// mocks simply ignore it).
type TxManager interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
