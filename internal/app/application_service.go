package app

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"jobboard/internal/authz"
	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

const maxCoverLetterLength = 5000

type ApplicationService struct {
	apps   application.Repository
	jobs   job.Repository
	logger *slog.Logger
}

func NewApplicationService(apps application.Repository, jobs job.Repository, logger *slog.Logger) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, logger: logger}
}

// Apply records the calling student's application to an active job. The
// store's (job, student) unique constraint is authoritative; the lookup
// before insert only saves a round trip in the common case.
func (s *ApplicationService) Apply(ctx context.Context, p user.Principal, jobID common.UUID, coverLetter string) (*application.Application, error) {
	if err := authz.Authorize(p, authz.ActionApplyToJob, authz.Resource{}); err != nil {
		return nil, err
	}
	coverLetter = strings.TrimSpace(coverLetter)
	if utf8.RuneCountInString(coverLetter) > maxCoverLetterLength {
		return nil, common.NewValidationError("invalid input", map[string]string{"cover_letter": "must be at most 5000 characters"})
	}
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if posting.Status != job.StatusActive {
		return nil, common.NewError(common.CodeInvalidState, "job is not accepting applications", nil)
	}
	if _, err := s.apps.FindByJobAndStudent(ctx, jobID, p.ID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied to this job", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	created, err := s.apps.Create(ctx, application.Application{
		JobID:       jobID,
		StudentID:   p.ID,
		Status:      application.StatusApplied,
		CoverLetter: coverLetter,
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "application.created",
		slog.String("application_id", created.ID.String()),
		slog.String("job_id", jobID.String()),
		slog.String("student_id", p.ID.String()))
	return created, nil
}

// ListForJob checks ownership before looking at the filter, so a caller who
// does not own the job never learns more than Forbidden.
func (s *ApplicationService) ListForJob(ctx context.Context, p user.Principal, jobID common.UUID, criteria ApplicantCriteria) ([]application.Applicant, error) {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionListJobApplications, authz.Resource{OwnerID: posting.OwnerID}); err != nil {
		return nil, err
	}
	filter, err := criteria.compile()
	if err != nil {
		return nil, err
	}
	return s.apps.ListByJob(ctx, jobID, filter)
}

// UpdateStatus moves an application along applied -> shortlisted -> hired,
// with rejected reachable from either open status. Only the owner of the
// application's job may do so.
func (s *ApplicationService) UpdateStatus(ctx context.Context, p user.Principal, applicationID common.UUID, rawStatus string) (*application.Application, error) {
	next, err := parseApplicationStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	current, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	posting, err := s.jobs.GetByID(ctx, current.JobID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionUpdateApplicationStatus, authz.Resource{OwnerID: posting.OwnerID}); err != nil {
		return nil, err
	}
	if current.Status == next {
		return current, nil
	}
	if !application.CanTransition(current.Status, next) {
		if application.IsFinal(current.Status) {
			return nil, common.NewError(common.CodeInvalidState, "application status is final", nil)
		}
		return nil, common.NewError(common.CodeInvalidState, "cannot move application from "+string(current.Status)+" to "+string(next), nil)
	}
	updated, err := s.apps.UpdateStatus(ctx, applicationID, next)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "application.status_changed",
		slog.String("application_id", applicationID.String()),
		slog.String("from", string(current.Status)),
		slog.String("to", string(next)),
		slog.String("recruiter_id", p.ID.String()))
	return updated, nil
}

func (s *ApplicationService) ListOwn(ctx context.Context, p user.Principal) ([]application.Submission, error) {
	if err := authz.Authorize(p, authz.ActionListOwnApplications, authz.Resource{}); err != nil {
		return nil, err
	}
	return s.apps.ListByStudent(ctx, p.ID)
}
