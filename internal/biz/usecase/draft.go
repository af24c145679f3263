package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cronpost/cronpost-go/internal/biz/domain"
	"github.com/cronpost/cronpost-go/internal/biz/repo"
)

// DraftUsecase manages locally persisted drafts. A draft survives
// restarts; nothing typed is lost if the submit fails or never happens.
type DraftUsecase struct {
	draftRepo repo.DraftRepo
	log       *logrus.Entry
}

// NewDraftUsecase creates a new draft usecase
func NewDraftUsecase(draftRepo repo.DraftRepo, log *logrus.Entry) *DraftUsecase {
	return &DraftUsecase{draftRepo: draftRepo, log: log}
}

// New starts an empty draft for the given family and mode.
func (uc *DraftUsecase) New(family domain.ScheduleFamily, mode domain.ScheduleMode) *domain.MessageDraft {
	return &domain.MessageDraft{
		LocalID:   uuid.NewString(),
		Family:    family,
		Mode:      mode,
		IsDraft:   true,
		UpdatedAt: time.Now(),
	}
}

// FromExisting starts an edit draft from a live server entity. The
// remote id makes any later submit an update instead of a create.
func (uc *DraftUsecase) FromExisting(remoteID string, family domain.ScheduleFamily, mode domain.ScheduleMode, msg domain.MessageCore, schedule domain.ScheduleSpec, wct domain.WCTDuration) *domain.MessageDraft {
	return &domain.MessageDraft{
		LocalID:   uuid.NewString(),
		RemoteID:  remoteID,
		Family:    family,
		Mode:      mode,
		Message:   msg,
		Schedule:  schedule,
		WCT:       wct,
		UpdatedAt: time.Now(),
	}
}

// ApplySchedule encodes the picker selection into the draft and reports
// the advisory skip warning, if any. Warnings never block saving.
func (uc *DraftUsecase) ApplySchedule(draft *domain.MessageDraft, picker domain.PickerState) (domain.WarningKind, bool, error) {
	spec, err := picker.Encode(draft.Mode)
	if err != nil {
		return "", false, err
	}
	if !spec.Trigger.AllowedIn(draft.Family) {
		return "", false, fmt.Errorf("trigger %s not allowed for %s messages", spec.Trigger, draft.Family)
	}
	draft.Schedule = spec
	kind, found := domain.CheckSkipWarning(spec)
	return kind, found, nil
}

// Save persists the draft, stamping the update time.
func (uc *DraftUsecase) Save(ctx context.Context, draft *domain.MessageDraft) error {
	draft.UpdatedAt = time.Now()
	if err := uc.draftRepo.Save(ctx, draft); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Get loads a draft by local id, nil when absent.
func (uc *DraftUsecase) Get(ctx context.Context, localID string) (*domain.MessageDraft, error) {
	return uc.draftRepo.Get(ctx, localID)
}

// List returns all drafts, most recent first.
func (uc *DraftUsecase) List(ctx context.Context) ([]*domain.MessageDraft, error) {
	return uc.draftRepo.List(ctx)
}

// Delete discards a draft.
func (uc *DraftUsecase) Delete(ctx context.Context, localID string) error {
	return uc.draftRepo.Delete(ctx, localID)
}
