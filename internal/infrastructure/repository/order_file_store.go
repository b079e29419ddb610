package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	domainRepo "github.com/sangkips/yardops-api/internal/domain/repository"
	"go.uber.org/zap"
)

type orderFileStore struct {
	path string
	log  *zap.Logger
}

// NewOrderFileStore stores the entity display order as a JSON list in path
func NewOrderFileStore(path string, log *zap.Logger) domainRepo.OrderStore {
	return &orderFileStore{path: path, log: log}
}

// Load never fails: a missing file is an empty order, and an unreadable or
// malformed one is logged and treated the same way.
func (s *orderFileStore) Load(_ context.Context) []string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("cannot read stats order file", zap.String("path", s.path), zap.Error(err))
		}
		return []string{}
	}

	var order []string
	if err := json.Unmarshal(data, &order); err != nil {
		s.log.Warn("malformed stats order file", zap.String("path", s.path), zap.Error(err))
		return []string{}
	}
	if order == nil {
		return []string{}
	}
	return order
}

// Save writes through a temporary file so readers never see a partial list
func (s *orderFileStore) Save(_ context.Context, order []string) error {
	if order == nil {
		order = []string{}
	}
	data, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		return fmt.Errorf("encode stats order: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create stats order dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".stats_order-*.json")
	if err != nil {
		return fmt.Errorf("create stats order temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write stats order: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write stats order: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace stats order: %w", err)
	}
	return nil
}
