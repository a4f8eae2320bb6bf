package app

import (
	"context"
	"log/slog"
	"strings"

	"jobboard/internal/authz"
	"jobboard/internal/common"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

type JobService struct {
	jobs   job.Repository
	logger *slog.Logger
}

func NewJobService(jobs job.Repository, logger *slog.Logger) *JobService {
	return &JobService{jobs: jobs, logger: logger}
}

type CreateJobInput struct {
	Title           string              `json:"title" validate:"required,max=200"`
	Description     string              `json:"description" validate:"required,min=10,max=10000"`
	SkillsRequired  []string            `json:"skills_required" validate:"required,min=1,max=50,dive,max=50"`
	Location        string              `json:"location" validate:"required,max=200"`
	Salary          string              `json:"salary" validate:"required,max=100"`
	ExperienceLevel job.ExperienceLevel `json:"experience_level" validate:"required,experience_level"`
	Type            job.Type            `json:"job_type" validate:"required,job_type"`
}

// Create posts a job owned by the calling recruiter. Company is taken from
// the recruiter's profile, never from the input.
func (s *JobService) Create(ctx context.Context, p user.Principal, input CreateJobInput) (*job.Job, error) {
	if err := authz.Authorize(p, authz.ActionCreateJob, authz.Resource{}); err != nil {
		return nil, err
	}
	recruiter, _ := p.Recruiter()
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Location = strings.TrimSpace(input.Location)
	input.Salary = strings.TrimSpace(input.Salary)
	input.ExperienceLevel = job.ExperienceLevel(strings.TrimSpace(string(input.ExperienceLevel)))
	input.Type = job.Type(strings.TrimSpace(string(input.Type)))
	input.SkillsRequired = cleanList(input.SkillsRequired)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	created, err := s.jobs.Create(ctx, job.Job{
		Title:           input.Title,
		Description:     input.Description,
		SkillsRequired:  input.SkillsRequired,
		Company:         recruiter.Company,
		Location:        input.Location,
		Salary:          input.Salary,
		ExperienceLevel: input.ExperienceLevel,
		Type:            input.Type,
		OwnerID:         p.ID,
		Status:          job.StatusActive,
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "job.created", slog.String("job_id", created.ID.String()), slog.String("recruiter_id", p.ID.String()))
	return created, nil
}

func (s *JobService) Search(ctx context.Context, criteria JobSearchCriteria) (*JobPage, error) {
	filter, page, limit, err := criteria.compile()
	if err != nil {
		return nil, err
	}
	total, err := s.jobs.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	pagination := newPagination(page, limit, total)
	jobs := []job.Job{}
	// Comparing pages before multiplying keeps (page-1)*limit below total, so
	// a huge page number cannot overflow into a negative offset.
	if page <= pagination.Pages {
		jobs, err = s.jobs.Search(ctx, filter, limit, (page-1)*limit)
		if err != nil {
			return nil, err
		}
	}
	return &JobPage{Jobs: jobs, Pagination: pagination}, nil
}

func (s *JobService) ListOwn(ctx context.Context, p user.Principal) ([]job.Job, error) {
	if err := authz.Authorize(p, authz.ActionListOwnJobs, authz.Resource{}); err != nil {
		return nil, err
	}
	return s.jobs.ListByOwner(ctx, p.ID)
}

func (s *JobService) Get(ctx context.Context, id common.UUID) (*job.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// UpdateStatus closes or reopens a job. Closed jobs stay readable but no
// longer accept applications.
func (s *JobService) UpdateStatus(ctx context.Context, p user.Principal, id common.UUID, rawStatus string) (*job.Job, error) {
	status, err := parseJobStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	current, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionUpdateJobStatus, authz.Resource{OwnerID: current.OwnerID}); err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}
	updated, err := s.jobs.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "job.status_changed", slog.String("job_id", id.String()), slog.String("from", string(current.Status)), slog.String("to", string(status)))
	return updated, nil
}
