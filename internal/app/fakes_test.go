package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeClock struct {
	mu      sync.Mutex
	current time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current.IsZero() {
		c.current = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	c.current = c.current.Add(time.Second)
	return c.current
}

type fakeUserRepo struct {
	mu      sync.Mutex
	clock   *fakeClock
	byID    map[common.UUID]*user.User
	byEmail map[string]common.UUID
}

func newFakeUserRepo(clock *fakeClock) *fakeUserRepo {
	return &fakeUserRepo{clock: clock, byID: make(map[common.UUID]*user.User), byEmail: make(map[string]common.UUID)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.Email = user.NormalizeEmail(u.Email)
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	}
	u.ID = common.NewUUID()
	u.CreatedAt = r.clock.now()
	stored := u
	r.byID[u.ID] = &stored
	r.byEmail[u.Email] = u.ID
	return &u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copy := *account
	return &copy, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	id, ok := r.byEmail[user.NormalizeEmail(email)]
	r.mu.Unlock()
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return r.GetByID(ctx, id)
}

func (r *fakeUserRepo) ListStudents(ctx context.Context, filter user.StudentFilter) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []user.User{}
	for _, account := range r.byID {
		profile, ok := account.Profile.(user.StudentProfile)
		if !ok || !matchesStudent(profile, filter.Skills, filter.Year, filter.College) {
			continue
		}
		items = append(items, *account)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func matchesStudent(profile user.StudentProfile, skills []string, year int, college string) bool {
	if len(skills) > 0 && !overlaps(profile.Skills, skills) {
		return false
	}
	if year != 0 && profile.Year != year {
		return false
	}
	if college != "" && !containsFold(profile.College, college) {
		return false
	}
	return true
}

func overlaps(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

type fakeJobRepo struct {
	mu    sync.Mutex
	clock *fakeClock
	jobs  map[common.UUID]*job.Job
}

func newFakeJobRepo(clock *fakeClock) *fakeJobRepo {
	return &fakeJobRepo{clock: clock, jobs: make(map[common.UUID]*job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	j.CreatedAt = r.clock.now()
	j.UpdatedAt = j.CreatedAt
	stored := j
	r.jobs[j.ID] = &stored
	return &j, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := r.jobs[id]
	if j == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	copy := *j
	return &copy, nil
}

func (r *fakeJobRepo) ListByOwner(ctx context.Context, ownerID common.UUID) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []job.Job{}
	for _, j := range r.jobs {
		if j.OwnerID == ownerID {
			items = append(items, *j)
		}
	}
	sortJobs(items)
	return items, nil
}

func (r *fakeJobRepo) matching(filter job.Filter) []job.Job {
	items := []job.Job{}
	for _, j := range r.jobs {
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		if filter.Text != "" && !containsFold(j.Title+" "+j.Description, filter.Text) {
			continue
		}
		if len(filter.Skills) > 0 && !overlaps(j.SkillsRequired, filter.Skills) {
			continue
		}
		if filter.ExperienceLevel != "" && j.ExperienceLevel != filter.ExperienceLevel {
			continue
		}
		if filter.Type != "" && j.Type != filter.Type {
			continue
		}
		if filter.Location != "" && !containsFold(j.Location, filter.Location) {
			continue
		}
		items = append(items, *j)
	}
	sortJobs(items)
	return items
}

func (r *fakeJobRepo) Search(ctx context.Context, filter job.Filter, limit, offset int) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offset < 0 || limit <= 0 {
		return nil, fmt.Errorf("invalid window limit=%d offset=%d", limit, offset)
	}
	items := r.matching(filter)
	if offset >= len(items) {
		return []job.Job{}, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], nil
}

func (r *fakeJobRepo) Count(ctx context.Context, filter job.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

func (r *fakeJobRepo) UpdateStatus(ctx context.Context, id common.UUID, status job.Status) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := r.jobs[id]
	if j == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	j.Status = status
	j.UpdatedAt = r.clock.now()
	copy := *j
	return &copy, nil
}

func sortJobs(items []job.Job) {
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
}

// fakeApplicationRepo enforces (job, student) uniqueness on insert like the
// real stores. skipLookup makes FindByJobAndStudent miss, simulating a
// concurrent insert that landed after the pre-check.
type fakeApplicationRepo struct {
	mu         sync.Mutex
	clock      *fakeClock
	users      *fakeUserRepo
	jobs       *fakeJobRepo
	apps       map[common.UUID]*application.Application
	skipLookup bool
}

func newFakeApplicationRepo(clock *fakeClock, users *fakeUserRepo, jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{clock: clock, users: users, jobs: jobs, apps: make(map[common.UUID]*application.Application)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.JobID == app.JobID && existing.StudentID == app.StudentID {
			return nil, common.NewError(common.CodeConflict, "already applied to this job", nil)
		}
	}
	app.ID = common.NewUUID()
	app.CreatedAt = r.clock.now()
	app.UpdatedAt = app.CreatedAt
	stored := app
	r.apps[app.ID] = &stored
	return &app, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.apps[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copy := *app
	return &copy, nil
}

func (r *fakeApplicationRepo) FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.skipLookup {
		for _, app := range r.apps {
			if app.JobID == jobID && app.StudentID == studentID {
				copy := *app
				return &copy, nil
			}
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) snapshot() []application.Application {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]application.Application, 0, len(r.apps))
	for _, app := range r.apps {
		items = append(items, *app)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items
}

func (r *fakeApplicationRepo) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Submission, error) {
	items := []application.Submission{}
	for _, app := range r.snapshot() {
		if app.StudentID != studentID {
			continue
		}
		posting, err := r.jobs.GetByID(ctx, app.JobID)
		if err != nil {
			return nil, err
		}
		items = append(items, application.Submission{Application: app, Job: posting.Summary()})
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID, filter application.Filter) ([]application.Applicant, error) {
	items := []application.Applicant{}
	for _, app := range r.snapshot() {
		if app.JobID != jobID || (filter.Status != "" && app.Status != filter.Status) {
			continue
		}
		student, err := r.users.GetByID(ctx, app.StudentID)
		if err != nil {
			return nil, err
		}
		profile, _ := student.Profile.(user.StudentProfile)
		if !matchesStudent(profile, filter.Skills, filter.Year, filter.College) {
			continue
		}
		posting, err := r.jobs.GetByID(ctx, jobID)
		if err != nil {
			return nil, err
		}
		items = append(items, application.Applicant{
			Application: app,
			JobTitle:    posting.Title,
			Student: user.StudentSummary{
				ID:      student.ID,
				Name:    student.Name,
				Email:   student.Email,
				College: profile.College,
				Year:    profile.Year,
				Skills:  profile.Skills,
			},
		})
	}
	return items, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.apps[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = status
	app.UpdatedAt = r.clock.now()
	copy := *app
	return &copy, nil
}

// fakeAnalyticsRepo derives aggregates from the other fakes.
type fakeAnalyticsRepo struct {
	users *fakeUserRepo
	jobs  *fakeJobRepo
	apps  *fakeApplicationRepo
	err   error
}

func (r *fakeAnalyticsRepo) owned(ctx context.Context, ownerID common.UUID) ([]application.Application, error) {
	items := []application.Application{}
	for _, app := range r.apps.snapshot() {
		posting, err := r.jobs.GetByID(ctx, app.JobID)
		if err != nil {
			return nil, err
		}
		if posting.OwnerID == ownerID {
			items = append(items, app)
		}
	}
	return items, nil
}

func (r *fakeAnalyticsRepo) CountJobs(ctx context.Context, ownerID common.UUID) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	jobs, err := r.jobs.ListByOwner(ctx, ownerID)
	return int64(len(jobs)), err
}

func (r *fakeAnalyticsRepo) CountByStatus(ctx context.Context, ownerID common.UUID) (map[application.Status]int64, error) {
	items, err := r.owned(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	stats := map[application.Status]int64{}
	for _, app := range items {
		stats[app.Status]++
	}
	return stats, nil
}

func (r *fakeAnalyticsRepo) TopSkills(ctx context.Context, ownerID common.UUID, limit int) ([]analytics.SkillCount, error) {
	items, err := r.owned(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	counts := map[string]int64{}
	for _, app := range items {
		student, err := r.users.GetByID(ctx, app.StudentID)
		if err != nil {
			return nil, err
		}
		profile, _ := student.Profile.(user.StudentProfile)
		for _, skill := range cleanList(profile.Skills) {
			counts[skill]++
		}
	}
	out := make([]analytics.SkillCount, 0, len(counts))
	for skill, count := range counts {
		out = append(out, analytics.SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Skill < out[j].Skill
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fixture wires every service against shared fakes.
type fixture struct {
	clock        *fakeClock
	users        *fakeUserRepo
	jobs         *fakeJobRepo
	apps         *fakeApplicationRepo
	stats        *fakeAnalyticsRepo
	jobSvc       *JobService
	appSvc       *ApplicationService
	analyticsSvc *AnalyticsService
	studentSvc   *StudentService
}

func newFixture() *fixture {
	clock := &fakeClock{}
	users := newFakeUserRepo(clock)
	jobs := newFakeJobRepo(clock)
	apps := newFakeApplicationRepo(clock, users, jobs)
	stats := &fakeAnalyticsRepo{users: users, jobs: jobs, apps: apps}
	logger := discardLogger()
	return &fixture{
		clock:        clock,
		users:        users,
		jobs:         jobs,
		apps:         apps,
		stats:        stats,
		jobSvc:       NewJobService(jobs, logger),
		appSvc:       NewApplicationService(apps, jobs, logger),
		analyticsSvc: NewAnalyticsService(stats),
		studentSvc:   NewStudentService(users),
	}
}

func (f *fixture) recruiter(name, company string) user.Principal {
	created, err := f.users.Create(context.Background(), user.User{
		Name:    name,
		Email:   strings.ToLower(name) + "@example.com",
		Profile: user.RecruiterProfile{Company: company},
	})
	if err != nil {
		panic(err)
	}
	return created.Principal()
}

func (f *fixture) student(name, college string, year int, skills ...string) user.Principal {
	created, err := f.users.Create(context.Background(), user.User{
		Name:    name,
		Email:   strings.ToLower(name) + "@example.com",
		Profile: user.StudentProfile{College: college, Year: year, Skills: skills},
	})
	if err != nil {
		panic(err)
	}
	return created.Principal()
}

func (f *fixture) postJob(p user.Principal, input CreateJobInput) *job.Job {
	created, err := f.jobSvc.Create(context.Background(), p, input)
	if err != nil {
		panic(err)
	}
	return created
}

func jobInput(title string, skills ...string) CreateJobInput {
	return CreateJobInput{
		Title:           title,
		Description:     "Build and run " + title + " services",
		SkillsRequired:  skills,
		Location:        "Bengaluru",
		Salary:          "12 LPA",
		ExperienceLevel: job.ExperienceEntry,
		Type:            job.TypeFullTime,
	}
}
