package application

import (
	"context"

	"jobboard/internal/common"
)

// Filter narrows a job's applicant list. Status applies to the application,
// the rest to the joined student; zero values impose no constraint.
type Filter struct {
	Status  Status
	Skills  []string
	Year    int
	College string
}

func (f Filter) HasStudentCriteria() bool {
	return len(f.Skills) > 0 || f.Year != 0 || f.College != ""
}

type Repository interface {
	// Create inserts a new application. A second application for the same
	// (job, student) pair fails with CodeConflict, including when two inserts race.
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*Application, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]Submission, error)
	ListByJob(ctx context.Context, jobID common.UUID, filter Filter) ([]Applicant, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
}
