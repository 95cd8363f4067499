package repository

import (
	"context"

	"github.com/pkg/errors"

	"pinboard/internal/domain"
)

// ErrNotFound is returned when a named circuit or metadata key does not exist
var ErrNotFound = errors.New("not found")

// Repository defines the interface for circuit persistence
type Repository interface {
	// Saved circuits
	SaveCircuit(ctx context.Context, circuit *domain.SavedCircuit) error
	GetCircuit(ctx context.Context, name string) (*domain.SavedCircuit, error)
	ListCircuits(ctx context.Context) ([]domain.CircuitSummary, error)
	DeleteCircuit(ctx context.Context, name string) error

	// Metadata
	SetMeta(ctx context.Context, key string, value interface{}) error
	GetMeta(ctx context.Context, key string, target interface{}) error

	// Close releases resources
	Close() error
}
