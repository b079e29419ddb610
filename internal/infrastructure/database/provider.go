package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNoConnection is returned by a provider that has nothing to hand out
var ErrNoConnection = errors.New("database connection not configured")

// Provider hands a request-scoped database handle to repositories.
// Repositories ask for a handle on every call instead of holding one.
type Provider interface {
	Conn(ctx context.Context) (*gorm.DB, error)
}

// PoolProvider serves handles from a shared gorm pool
type PoolProvider struct {
	db *gorm.DB
}

// NewPoolProvider wraps a gorm pool
func NewPoolProvider(db *gorm.DB) *PoolProvider {
	return &PoolProvider{db: db}
}

// Conn returns a session bound to ctx
func (p *PoolProvider) Conn(ctx context.Context) (*gorm.DB, error) {
	if p == nil || p.db == nil {
		return nil, ErrNoConnection
	}
	return p.db.WithContext(ctx), nil
}
