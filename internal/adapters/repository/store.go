// Package repository keeps analysis sessions in memory for a limited time.
package repository

import (
	"context"

	"github.com/okian/cambios/internal/domain/model"
)

// Store provides read/write access to analysis sessions.
type Store interface {
	// Save inserts or replaces a session and restarts its expiry.
	Save(ctx context.Context, a model.Analysis) error
	// Get returns ErrNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (model.Analysis, error)
	// Delete is a no-op for unknown sessions.
	Delete(ctx context.Context, id string) error
	// Count returns the number of sessions held, including expired ones not yet purged.
	Count(ctx context.Context) int
}
