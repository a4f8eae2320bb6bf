package job

import (
	"context"

	"jobboard/internal/common"
)

// Filter is a conjunction of optional job predicates; zero fields are ignored.
type Filter struct {
	Text            string
	Skills          []string
	ExperienceLevel ExperienceLevel
	Type            Type
	Location        string
	Status          Status
}

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	ListByOwner(ctx context.Context, ownerID common.UUID) ([]Job, error)
	Search(ctx context.Context, filter Filter, limit, offset int) ([]Job, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Job, error)
}
