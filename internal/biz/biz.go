package biz

import (
	"github.com/sirupsen/logrus"

	"github.com/cronpost/cronpost-go/internal/biz/usecase"
	"github.com/cronpost/cronpost-go/internal/data"
)

// Usecases contains all usecases
type Usecases struct {
	Submit    *usecase.SubmitUsecase
	Lifecycle *usecase.LifecycleUsecase
	Draft     *usecase.DraftUsecase
}

// NewUsecases wires the usecases over the repositories
func NewUsecases(repos *data.Repositories, log *logrus.Entry) *Usecases {
	return &Usecases{
		Submit:    usecase.NewSubmitUsecase(repos.IM, repos.FM, repos.Scm, repos.Draft, log),
		Lifecycle: usecase.NewLifecycleUsecase(repos.State, repos.IM, log),
		Draft:     usecase.NewDraftUsecase(repos.Draft, log),
	}
}
