package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type txContextKey struct{}

// TransactionManager runs a unit of work inside a single gorm transaction.
// The transaction travels in the context so repositories pick it up through
// Conn without being told about it.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	if db == nil {
		return nil
	}
	return &TransactionManager{db: db}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
// A call made while a transaction is already open joins it.
func (m *TransactionManager) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return errors.New("database: transaction function is required")
	}
	if m == nil {
		return fn(ctx)
	}
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(contextWithTx(ctx, tx))
	})
}

// Conn returns the transaction stored in ctx, or fallback bound to ctx.
func Conn(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

func contextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

func txFromContext(ctx context.Context) (*gorm.DB, bool) {
	if ctx == nil {
		return nil, false
	}
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok
}
