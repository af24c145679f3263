package data

import (
	"context"
	"fmt"
	"time"

	"github.com/cronpost/cronpost-go/cronpost"
	"github.com/cronpost/cronpost-go/internal/biz/domain"
	"github.com/cronpost/cronpost-go/internal/biz/repo"
)

// stateRepo implements the full-state repository over the HTTP client.
type stateRepo struct {
	client *cronpost.Client
}

// NewStateRepo creates the full-state repository.
func NewStateRepo(client *cronpost.Client) repo.StateRepo {
	return &stateRepo{client: client}
}

// FullState fetches and decodes the authoritative snapshot.
func (r *stateRepo) FullState(ctx context.Context) (*domain.FullState, error) {
	resp, err := r.client.FullState(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch full state: %w", err)
	}
	return decodeFullState(resp)
}

func decodeFullState(resp *cronpost.FullStateResponse) (*domain.FullState, error) {
	state := &domain.FullState{
		InitialMessage: cronpost.DecodeMessage(resp.InitialMessage),
		Preferences: domain.Preferences{
			UsePinForAllActions: resp.Preferences.UsePinForAllActions,
			Timezone:            resp.Preferences.Timezone,
		},
	}

	state.IM.Status = domain.IMStatus(resp.IMState.Status)
	if resp.IMState.CountdownUntil != nil {
		until, err := time.Parse(time.RFC3339, *resp.IMState.CountdownUntil)
		if err != nil {
			return nil, fmt.Errorf("decode countdown: %w", err)
		}
		state.IM.CountdownUntil = &until
	}
	if resp.IMState.Schedule != nil {
		spec, wct, err := cronpost.DecodeIMSchedule(resp.IMState.Schedule, resp.IMState.RepeatNumber)
		if err != nil {
			return nil, err
		}
		state.IM.CLC = spec
		state.IM.WCT = wct
	}

	for _, fm := range resp.FollowMessages {
		entry := domain.FollowUpMessage{
			ID:      fm.ID,
			Status:  domain.FMStatus(fm.Status),
			Message: cronpost.DecodeMessage(fm.Message),
		}
		if fm.Schedule != nil {
			spec, err := cronpost.DecodeFMSchedule(fm.Schedule, fm.RepeatNumber)
			if err != nil {
				return nil, fmt.Errorf("follow message %s: %w", fm.ID, err)
			}
			entry.Schedule = spec
		}
		state.FollowUps = append(state.FollowUps, entry)
	}
	return state, nil
}

// imRepo implements the initial-message repository.
type imRepo struct {
	client *cronpost.Client
}

// NewIMRepo creates the initial-message repository.
func NewIMRepo(client *cronpost.Client) repo.IMRepo {
	return &imRepo{client: client}
}

func (r *imRepo) Create(ctx context.Context, req *cronpost.IMRequest) error {
	return r.client.CreateIM(ctx, req)
}

func (r *imRepo) Update(ctx context.Context, req *cronpost.IMRequest) error {
	return r.client.UpdateIM(ctx, req)
}

func (r *imRepo) Activate(ctx context.Context) error {
	return r.client.ActivateIM(ctx)
}

func (r *imRepo) Stop(ctx context.Context) error {
	return r.client.StopIM(ctx)
}

func (r *imRepo) Delete(ctx context.Context) error {
	return r.client.DeleteIM(ctx)
}

func (r *imRepo) CheckIn(ctx context.Context, pin string) error {
	return r.client.CheckIn(ctx, pin)
}

func (r *imRepo) ChangeMethod(ctx context.Context, method domain.SendingMethod) error {
	return r.client.ChangeIMMethod(ctx, method)
}

// fmRepo implements the follow-up message repository.
type fmRepo struct {
	client *cronpost.Client
}

// NewFMRepo creates the follow-up message repository.
func NewFMRepo(client *cronpost.Client) repo.FMRepo {
	return &fmRepo{client: client}
}

func (r *fmRepo) Create(ctx context.Context, req *cronpost.FMRequest) (string, error) {
	return r.client.CreateFM(ctx, req)
}

func (r *fmRepo) Update(ctx context.Context, id string, req *cronpost.FMRequest) error {
	return r.client.UpdateFM(ctx, id, req)
}

func (r *fmRepo) Delete(ctx context.Context, id string) error {
	return r.client.DeleteFM(ctx, id)
}

func (r *fmRepo) Cancel(ctx context.Context, id string) error {
	return r.client.CancelFM(ctx, id)
}

// scmRepo implements the cron-message repository.
type scmRepo struct {
	client *cronpost.Client
}

// NewScmRepo creates the cron-message repository.
func NewScmRepo(client *cronpost.Client) repo.ScmRepo {
	return &scmRepo{client: client}
}

func (r *scmRepo) List(ctx context.Context) ([]*domain.ScmEntry, error) {
	resp, err := r.client.ListSCM(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cron messages: %w", err)
	}

	entries := make([]*domain.ScmEntry, 0, len(resp))
	for _, e := range resp {
		entry := &domain.ScmEntry{
			ID:      e.ID,
			Status:  domain.ScmStatus(e.Status),
			Mode:    domain.ScheduleMode(e.ScheduleType),
			Message: cronpost.DecodeMessage(e.Message),
		}
		if e.Schedule != nil {
			spec, err := cronpost.DecodeSCMSchedule(e.Schedule, entry.Mode, e.RepeatNumber)
			if err != nil {
				return nil, fmt.Errorf("cron message %s: %w", e.ID, err)
			}
			entry.Schedule = spec
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *scmRepo) Create(ctx context.Context, req *cronpost.SCMRequest) (string, error) {
	return r.client.CreateSCM(ctx, req)
}

func (r *scmRepo) Update(ctx context.Context, id string, req *cronpost.SCMRequest) error {
	return r.client.UpdateSCM(ctx, id, req)
}

func (r *scmRepo) Delete(ctx context.Context, id string) error {
	return r.client.DeleteSCM(ctx, id)
}

func (r *scmRepo) Pause(ctx context.Context, id string) error {
	return r.client.PauseSCM(ctx, id)
}

func (r *scmRepo) Resume(ctx context.Context, id string) error {
	return r.client.ResumeSCM(ctx, id)
}

func (r *scmRepo) Cancel(ctx context.Context, id string) error {
	return r.client.CancelSCM(ctx, id)
}
