package repo

import (
	"context"

	"github.com/cronpost/cronpost-go/internal/biz/domain"
)

// DraftRepo is the local draft store (SQLite). Drafts are the only
// state the client persists; everything else is re-fetched.
type DraftRepo interface {
	// Save creates or replaces a draft by its local id.
	Save(ctx context.Context, draft *domain.MessageDraft) error

	// Get returns the draft, or nil when it does not exist.
	Get(ctx context.Context, localID string) (*domain.MessageDraft, error)

	// List returns all drafts, most recently updated first.
	List(ctx context.Context) ([]*domain.MessageDraft, error)

	// Delete removes a draft. Deleting a missing draft is not an error.
	Delete(ctx context.Context, localID string) error

	// Close releases the underlying database.
	Close() error
}
