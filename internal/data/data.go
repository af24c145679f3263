package data

import (
	"github.com/cronpost/cronpost-go/cronpost"
	"github.com/cronpost/cronpost-go/internal/biz/repo"
)

// Repositories contains all repositories
type Repositories struct {
	State repo.StateRepo
	IM    repo.IMRepo
	FM    repo.FMRepo
	Scm   repo.ScmRepo
	Draft repo.DraftRepo
}

// NewRepositories creates all repositories
func NewRepositories(client *cronpost.Client, draftDBPath string) (*Repositories, error) {
	draftRepo, err := NewDraftRepo(draftDBPath)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		State: NewStateRepo(client),
		IM:    NewIMRepo(client),
		FM:    NewFMRepo(client),
		Scm:   NewScmRepo(client),
		Draft: draftRepo,
	}, nil
}

// Close releases locally held resources. The API-backed repositories
// hold nothing to release.
func (r *Repositories) Close() error {
	return r.Draft.Close()
}
