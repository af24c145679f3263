package repo

import (
	"context"

	"github.com/cronpost/cronpost-go/cronpost"
	"github.com/cronpost/cronpost-go/internal/biz/domain"
)

// StateRepo fetches the authoritative check-in state. The server owns
// every entity; the client only holds re-fetchable snapshots.
type StateRepo interface {
	// FullState gets the lifecycle snapshot, initial message, follow-up
	// messages and preferences in one call.
	FullState(ctx context.Context) (*domain.FullState, error)
}

// IMRepo operates on the (singleton) initial message.
type IMRepo interface {
	// Create submits a new initial message with its schedule.
	Create(ctx context.Context, req *cronpost.IMRequest) error

	// Update rewrites the message and schedule. The sending method is
	// immutable here; ChangeMethod is the only way to change it.
	Update(ctx context.Context, req *cronpost.IMRequest) error

	// Activate starts a fresh check-in loop.
	Activate(ctx context.Context) error

	// Stop halts the loop and clears any pending countdown.
	Stop(ctx context.Context) error

	// Delete removes the initial message.
	Delete(ctx context.Context) error

	// CheckIn confirms presence; the loop restarts from this moment.
	CheckIn(ctx context.Context, pin string) error

	// ChangeMethod reassigns the sending method via the dedicated call.
	ChangeMethod(ctx context.Context, method domain.SendingMethod) error
}

// FMRepo operates on follow-up messages.
type FMRepo interface {
	Create(ctx context.Context, req *cronpost.FMRequest) (string, error)
	Update(ctx context.Context, id string, req *cronpost.FMRequest) error
	Delete(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}

// ScmRepo operates on scheduled cron messages.
type ScmRepo interface {
	List(ctx context.Context) ([]*domain.ScmEntry, error)
	Create(ctx context.Context, req *cronpost.SCMRequest) (string, error)
	Update(ctx context.Context, id string, req *cronpost.SCMRequest) error
	Delete(ctx context.Context, id string) error
	Pause(ctx context.Context, id string) error
	Resume(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}
