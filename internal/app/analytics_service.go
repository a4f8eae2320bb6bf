package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"jobboard/internal/authz"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/user"
)

type AnalyticsService struct {
	repo analytics.Repository
}

func NewAnalyticsService(repo analytics.Repository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// Compute summarises applications received across the caller's jobs. The
// aggregates run concurrently and are not cached. TotalApplications is the sum
// of the status counts so the two always agree.
func (s *AnalyticsService) Compute(ctx context.Context, p user.Principal) (*analytics.Summary, error) {
	if err := authz.Authorize(p, authz.ActionViewAnalytics, authz.Resource{}); err != nil {
		return nil, err
	}
	var (
		summary  analytics.Summary
		byStatus map[application.Status]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary.TotalJobs, err = s.repo.CountJobs(gctx, p.ID)
		return err
	})
	g.Go(func() error {
		var err error
		byStatus, err = s.repo.CountByStatus(gctx, p.ID)
		return err
	})
	g.Go(func() error {
		var err error
		summary.SkillsStats, err = s.repo.TopSkills(gctx, p.ID, analytics.TopSkillsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.StatusStats = make(map[application.Status]int64, len(application.Statuses))
	for _, status := range application.Statuses {
		summary.StatusStats[status] = byStatus[status]
		summary.TotalApplications += byStatus[status]
	}
	if summary.SkillsStats == nil {
		summary.SkillsStats = []analytics.SkillCount{}
	}
	return &summary, nil
}
