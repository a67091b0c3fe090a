// Package repository persists predicted students.
package repository

import (
	"context"

	"github.com/okian/studyscore/internal/domain/model"
)

// Store provides read/write access to the persisted predictions.
type Store interface {
	// Create persists s, assigning ID and CreatedAt when empty.
	Create(ctx context.Context, s model.Student) (model.Student, error)

	// FindByName returns the earliest student stored under name.
	// Returns ErrNotFound if no student has that name.
	FindByName(ctx context.Context, name string) (model.Student, error)

	// Count returns the number of stored students.
	Count(ctx context.Context) (int64, error)

	// Close releases the underlying database.
	Close() error
}
