package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/cronpost/cronpost-go/cronpost"
	"github.com/cronpost/cronpost-go/internal/biz/domain"
	"github.com/cronpost/cronpost-go/internal/biz/repo"
)

// ErrSubmitInProgress is returned while another submission is in
// flight. The caller retries after the current one settles; it must
// never issue a second concurrent request.
var ErrSubmitInProgress = errors.New("a submission is already in progress")

// SubmitUsecase turns a validated draft into exactly one create or
// update call. Create vs update is decided solely by whether the draft
// carries a remote id.
type SubmitUsecase struct {
	imRepo    repo.IMRepo
	fmRepo    repo.FMRepo
	scmRepo   repo.ScmRepo
	draftRepo repo.DraftRepo
	log       *logrus.Entry

	submitting atomic.Bool
}

// NewSubmitUsecase creates a new submit usecase
func NewSubmitUsecase(
	imRepo repo.IMRepo,
	fmRepo repo.FMRepo,
	scmRepo repo.ScmRepo,
	draftRepo repo.DraftRepo,
	log *logrus.Entry,
) *SubmitUsecase {
	return &SubmitUsecase{
		imRepo:    imRepo,
		fmRepo:    fmRepo,
		scmRepo:   scmRepo,
		draftRepo: draftRepo,
		log:       log,
	}
}

// SubmitResult reports what the submission did. Warning, when set, is
// advisory only; the submission already succeeded.
type SubmitResult struct {
	RemoteID   string
	Created    bool
	Warning    domain.WarningKind
	HasWarning bool
}

// Submit validates the draft, sends it, and clears the local copy on
// success. A failed submission keeps the draft untouched so nothing
// typed is lost.
func (uc *SubmitUsecase) Submit(ctx context.Context, draft *domain.MessageDraft) (*SubmitResult, error) {
	if !uc.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInProgress
	}
	defer uc.submitting.Store(false)

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	result := &SubmitResult{
		RemoteID: draft.RemoteID,
		Created:  draft.RemoteID == "",
	}
	result.Warning, result.HasWarning = domain.CheckSkipWarning(draft.Schedule)

	var err error
	switch draft.Family {
	case domain.FamilyIM:
		err = uc.submitIM(ctx, draft)
	case domain.FamilyFM:
		result.RemoteID, err = uc.submitFM(ctx, draft)
	case domain.FamilySCM:
		result.RemoteID, err = uc.submitSCM(ctx, draft)
	default:
		return nil, fmt.Errorf("submit: unknown message family %q", draft.Family)
	}
	if err != nil {
		uc.log.WithError(err).WithField("family", draft.Family).Warn("submission failed, draft kept")
		return nil, err
	}

	if draft.LocalID != "" {
		if derr := uc.draftRepo.Delete(ctx, draft.LocalID); derr != nil {
			// The message is live; a leftover draft is only cosmetic.
			uc.log.WithError(derr).Warn("failed to clear submitted draft")
		}
	}
	return result, nil
}

func (uc *SubmitUsecase) submitIM(ctx context.Context, draft *domain.MessageDraft) error {
	schedule, err := cronpost.EncodeIMSchedule(draft.Schedule, draft.WCT)
	if err != nil {
		return err
	}
	req := &cronpost.IMRequest{
		Message:      cronpost.EncodeMessage(draft.Message),
		Schedule:     schedule,
		RepeatNumber: draft.Schedule.RepeatCount,
	}
	if draft.RemoteID == "" {
		// Create-only fields. Updates never carry the sending method;
		// ChangeIMMethod is the one way to change it after creation.
		setCreateOnly(&req.IsDraft, &req.SendingMethod, draft)
		return uc.imRepo.Create(ctx, req)
	}
	return uc.imRepo.Update(ctx, req)
}

func (uc *SubmitUsecase) submitFM(ctx context.Context, draft *domain.MessageDraft) (string, error) {
	schedule, err := cronpost.EncodeFMSchedule(draft.Schedule)
	if err != nil {
		return "", err
	}
	req := &cronpost.FMRequest{
		Message:      cronpost.EncodeMessage(draft.Message),
		Schedule:     schedule,
		RepeatNumber: draft.Schedule.RepeatCount,
	}
	if draft.RemoteID == "" {
		setCreateOnly(&req.IsDraft, &req.SendingMethod, draft)
		return uc.fmRepo.Create(ctx, req)
	}
	return draft.RemoteID, uc.fmRepo.Update(ctx, draft.RemoteID, req)
}

func (uc *SubmitUsecase) submitSCM(ctx context.Context, draft *domain.MessageDraft) (string, error) {
	schedule, err := cronpost.EncodeSCMSchedule(draft.Schedule, draft.Mode)
	if err != nil {
		return "", err
	}
	req := &cronpost.SCMRequest{
		Message:      cronpost.EncodeMessage(draft.Message),
		Schedule:     schedule,
		ScheduleType: string(draft.Mode),
		RepeatNumber: draft.Schedule.RepeatCount,
	}
	if draft.RemoteID == "" {
		setCreateOnly(&req.IsDraft, &req.SendingMethod, draft)
		return uc.scmRepo.Create(ctx, req)
	}
	return draft.RemoteID, uc.scmRepo.Update(ctx, draft.RemoteID, req)
}

// ChangeIMMethod switches the initial message's sending method through
// the dedicated endpoint. It issues that single call and nothing else;
// the caller re-fetches state and composes the next screen.
func (uc *SubmitUsecase) ChangeIMMethod(ctx context.Context, method domain.SendingMethod) error {
	if !uc.submitting.CompareAndSwap(false, true) {
		return ErrSubmitInProgress
	}
	defer uc.submitting.Store(false)

	if err := uc.imRepo.ChangeMethod(ctx, method); err != nil {
		return fmt.Errorf("change sending method: %w", err)
	}
	return nil
}

func setCreateOnly(isDraft **bool, method **string, draft *domain.MessageDraft) {
	d := draft.IsDraft
	m := string(draft.Message.SendingMethod)
	*isDraft = &d
	if m != "" {
		*method = &m
	}
}
