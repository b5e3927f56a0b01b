// Package store is the access layer over the relational database. Lookups
// by id return a nil record, not an error, when nothing matches.
package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a Store bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func first[T any](query *gorm.DB, dest *T) (*T, error) {
	if err := query.First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dest, nil
}
