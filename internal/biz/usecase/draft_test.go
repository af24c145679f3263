package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cronpost/cronpost-go/internal/biz/domain"
)

func TestNewDraftStartsAsDraft(t *testing.T) {
	uc := NewDraftUsecase(newMockDraftRepo(), testLogger())

	a := uc.New(domain.FamilyIM, domain.ModeLoop)
	b := uc.New(domain.FamilyIM, domain.ModeLoop)

	assert.True(t, a.IsDraft)
	assert.Empty(t, a.RemoteID)
	assert.NotEmpty(t, a.LocalID)
	assert.NotEqual(t, a.LocalID, b.LocalID)
}

func TestFromExistingKeepsRemoteID(t *testing.T) {
	uc := NewDraftUsecase(newMockDraftRepo(), testLogger())

	d := uc.FromExisting("fm-7", domain.FamilyFM, domain.ModeLoop,
		domain.MessageCore{Recipients: []string{"a@b.c"}, Content: "hi"},
		domain.DaysAfterAnchor(2, domain.TimeOfDay{Hour: 9}, 0),
		domain.WCTDuration{})

	assert.Equal(t, "fm-7", d.RemoteID)
	assert.NotEmpty(t, d.LocalID)
	assert.False(t, d.IsDraft)
}

func TestApplyScheduleEncodesAndWarns(t *testing.T) {
	uc := NewDraftUsecase(newMockDraftRepo(), testLogger())
	draft := uc.New(domain.FamilySCM, domain.ModeLoop)

	picker := domain.PickerState{
		Trigger:  domain.TriggerDateOfMonth,
		Day:      31,
		SendTime: domain.TimeOfDay{Hour: 9},
	}
	kind, found, err := uc.ApplySchedule(draft, picker)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.WarningShortMonth, kind)
	assert.Equal(t, domain.TriggerDateOfMonth, draft.Schedule.Trigger)
	assert.Equal(t, 31, draft.Schedule.DayOfMonth)
}

func TestApplyScheduleRejectsWrongFamily(t *testing.T) {
	uc := NewDraftUsecase(newMockDraftRepo(), testLogger())
	draft := uc.New(domain.FamilyFM, domain.ModeLoop)

	// Lunar triggers never apply to follow-up messages.
	picker := domain.PickerState{
		Trigger:    domain.TriggerLunarDateOfYear,
		LunarMonth: 8,
		LunarDay:   15,
		SendTime:   domain.TimeOfDay{Hour: 9},
	}
	_, _, err := uc.ApplySchedule(draft, picker)
	assert.Error(t, err)
	assert.Empty(t, draft.Schedule.Trigger)
}

func TestSaveStampsUpdateTime(t *testing.T) {
	repo := newMockDraftRepo()
	uc := NewDraftUsecase(repo, testLogger())
	draft := uc.New(domain.FamilyIM, domain.ModeLoop)
	draft.UpdatedAt = time.Time{}

	require.NoError(t, uc.Save(context.Background(), draft))
	assert.False(t, repo.drafts[draft.LocalID].UpdatedAt.IsZero())
}
