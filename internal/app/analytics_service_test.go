package app

import (
	"context"
	"errors"
	"testing"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/application"
)

func TestAnalyticsSummary(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.recruiter("Rita", "Acme")
	other := f.recruiter("Omar", "Globex")
	backend := f.postJob(owner, jobInput("Backend", "go"))
	frontend := f.postJob(owner, jobInput("Frontend", "react"))
	foreign := f.postJob(other, jobInput("Foreign", "go"))

	alice := f.student("Alice", "IIT", 3, "go", "sql")
	bob := f.student("Bob", "NIT", 2, "go", "react")
	carol := f.student("Carol", "BITS", 4)

	hired, err := f.appSvc.Apply(ctx, alice, backend.ID, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	for _, pair := range []struct {
		student common.UUID
		job     common.UUID
	}{{bob.ID, backend.ID}, {alice.ID, frontend.ID}, {carol.ID, frontend.ID}, {bob.ID, foreign.ID}} {
		p, _ := f.users.GetByID(ctx, pair.student)
		if _, err := f.appSvc.Apply(ctx, p.Principal(), pair.job, ""); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}
	for _, step := range []string{"shortlisted", "hired"} {
		if _, err := f.appSvc.UpdateStatus(ctx, owner, hired.ID, step); err != nil {
			t.Fatalf("update: %v", err)
		}
	}

	summary, err := f.analyticsSvc.Compute(ctx, owner)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if summary.TotalJobs != 2 || summary.TotalApplications != 4 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
	if len(summary.StatusStats) != len(application.Statuses) {
		t.Fatalf("expected every status present, got %v", summary.StatusStats)
	}
	var sum int64
	for _, count := range summary.StatusStats {
		sum += count
	}
	if sum != summary.TotalApplications {
		t.Fatalf("status stats sum %d != total %d", sum, summary.TotalApplications)
	}
	if summary.StatusStats[application.StatusHired] != 1 || summary.StatusStats[application.StatusShortlisted] != 0 {
		t.Fatalf("unexpected status stats: %v", summary.StatusStats)
	}
	if len(summary.SkillsStats) != 3 || summary.SkillsStats[0].Skill != "go" || summary.SkillsStats[0].Count != 3 {
		t.Fatalf("unexpected skills stats: %+v", summary.SkillsStats)
	}
}

func TestAnalyticsForRecruiterWithoutJobs(t *testing.T) {
	f := newFixture()
	summary, err := f.analyticsSvc.Compute(context.Background(), f.recruiter("Rita", "Acme"))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if summary.TotalJobs != 0 || summary.TotalApplications != 0 || summary.SkillsStats == nil {
		t.Fatalf("unexpected empty summary: %+v", summary)
	}
	for _, status := range application.Statuses {
		if count, ok := summary.StatusStats[status]; !ok || count != 0 {
			t.Fatalf("expected zero for %s, got %d (present=%v)", status, count, ok)
		}
	}
}

func TestAnalyticsGuardAndErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.analyticsSvc.Compute(ctx, f.student("Sam", "IIT", 1)); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for student, got %v", err)
	}

	storeErr := common.NewError(common.CodeInternal, "boom", errors.New("db down"))
	f.stats.err = storeErr
	if _, err := f.analyticsSvc.Compute(ctx, f.recruiter("Rita", "Acme")); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

type stubAnalyticsRepo struct {
	jobs     int64
	byStatus map[application.Status]int64
}

func (r stubAnalyticsRepo) CountJobs(context.Context, common.UUID) (int64, error) {
	return r.jobs, nil
}

func (r stubAnalyticsRepo) CountByStatus(context.Context, common.UUID) (map[application.Status]int64, error) {
	return r.byStatus, nil
}

func (r stubAnalyticsRepo) TopSkills(context.Context, common.UUID, int) ([]analytics.SkillCount, error) {
	return nil, nil
}

func TestAnalyticsTotalIsSumOfStatusCounts(t *testing.T) {
	f := newFixture()
	svc := NewAnalyticsService(stubAnalyticsRepo{
		jobs: 3,
		byStatus: map[application.Status]int64{
			application.StatusApplied:     5,
			application.StatusShortlisted: 2,
			application.StatusHired:       1,
		},
	})
	summary, err := svc.Compute(context.Background(), f.recruiter("Rita", "Acme"))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	var sum int64
	for _, count := range summary.StatusStats {
		sum += count
	}
	if summary.TotalApplications != 8 || sum != summary.TotalApplications {
		t.Fatalf("total %d does not match status stats %v", summary.TotalApplications, summary.StatusStats)
	}
	if summary.StatusStats[application.StatusRejected] != 0 || summary.SkillsStats == nil {
		t.Fatalf("expected zero-filled stats and non-nil skills, got %+v", summary)
	}
}
