package usecase

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/cronpost/cronpost-go/cronpost"
	"github.com/cronpost/cronpost-go/internal/biz/domain"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// mockStateRepo serves a canned snapshot.
type mockStateRepo struct {
	state *domain.FullState
	err   error
	calls int
}

func (m *mockStateRepo) FullState(ctx context.Context) (*domain.FullState, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.state, nil
}

// mockIMRepo records every call.
type mockIMRepo struct {
	created     []*cronpost.IMRequest
	updated     []*cronpost.IMRequest
	activates   int
	stops       int
	deletes     int
	checkIns    []string
	methodCalls []domain.SendingMethod
	err         error
	activateErr error
}

func (m *mockIMRepo) Create(ctx context.Context, req *cronpost.IMRequest) error {
	m.created = append(m.created, req)
	return m.err
}

func (m *mockIMRepo) Update(ctx context.Context, req *cronpost.IMRequest) error {
	m.updated = append(m.updated, req)
	return m.err
}

func (m *mockIMRepo) Activate(ctx context.Context) error {
	m.activates++
	return m.activateErr
}

func (m *mockIMRepo) Stop(ctx context.Context) error {
	m.stops++
	return m.err
}

func (m *mockIMRepo) Delete(ctx context.Context) error {
	m.deletes++
	return m.err
}

func (m *mockIMRepo) CheckIn(ctx context.Context, pin string) error {
	m.checkIns = append(m.checkIns, pin)
	return m.err
}

func (m *mockIMRepo) ChangeMethod(ctx context.Context, method domain.SendingMethod) error {
	m.methodCalls = append(m.methodCalls, method)
	return m.err
}

type mockFMRepo struct {
	created []*cronpost.FMRequest
	updated map[string]*cronpost.FMRequest
	nextID  string
	err     error
}

func (m *mockFMRepo) Create(ctx context.Context, req *cronpost.FMRequest) (string, error) {
	m.created = append(m.created, req)
	return m.nextID, m.err
}

func (m *mockFMRepo) Update(ctx context.Context, id string, req *cronpost.FMRequest) error {
	if m.updated == nil {
		m.updated = make(map[string]*cronpost.FMRequest)
	}
	m.updated[id] = req
	return m.err
}

func (m *mockFMRepo) Delete(ctx context.Context, id string) error { return m.err }
func (m *mockFMRepo) Cancel(ctx context.Context, id string) error { return m.err }

type mockScmRepo struct {
	created []*cronpost.SCMRequest
	updated map[string]*cronpost.SCMRequest
	nextID  string
	err     error
}

func (m *mockScmRepo) List(ctx context.Context) ([]*domain.ScmEntry, error) { return nil, m.err }

func (m *mockScmRepo) Create(ctx context.Context, req *cronpost.SCMRequest) (string, error) {
	m.created = append(m.created, req)
	return m.nextID, m.err
}

func (m *mockScmRepo) Update(ctx context.Context, id string, req *cronpost.SCMRequest) error {
	if m.updated == nil {
		m.updated = make(map[string]*cronpost.SCMRequest)
	}
	m.updated[id] = req
	return m.err
}

func (m *mockScmRepo) Delete(ctx context.Context, id string) error { return m.err }
func (m *mockScmRepo) Pause(ctx context.Context, id string) error  { return m.err }
func (m *mockScmRepo) Resume(ctx context.Context, id string) error { return m.err }
func (m *mockScmRepo) Cancel(ctx context.Context, id string) error { return m.err }

// mockDraftRepo is an in-memory draft store.
type mockDraftRepo struct {
	drafts  map[string]*domain.MessageDraft
	saveErr error
}

func newMockDraftRepo() *mockDraftRepo {
	return &mockDraftRepo{drafts: make(map[string]*domain.MessageDraft)}
}

func (m *mockDraftRepo) Save(ctx context.Context, draft *domain.MessageDraft) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.drafts[draft.LocalID] = draft
	return nil
}

func (m *mockDraftRepo) Get(ctx context.Context, localID string) (*domain.MessageDraft, error) {
	return m.drafts[localID], nil
}

func (m *mockDraftRepo) List(ctx context.Context) ([]*domain.MessageDraft, error) {
	var out []*domain.MessageDraft
	for _, d := range m.drafts {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockDraftRepo) Delete(ctx context.Context, localID string) error {
	delete(m.drafts, localID)
	return nil
}

func (m *mockDraftRepo) Close() error { return nil }
