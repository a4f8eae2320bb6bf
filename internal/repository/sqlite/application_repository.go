package sqlite

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

type ApplicationRepository struct {
	store *Store
}

func NewApplicationRepository(store *Store) *ApplicationRepository {
	return &ApplicationRepository{store: store}
}

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := r.store.timestamp()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = application.StatusApplied
	}
	record := applicationRecord{
		ID:          app.ID.String(),
		JobID:       app.JobID.String(),
		StudentID:   app.StudentID.String(),
		Status:      string(app.Status),
		CoverLetter: app.CoverLetter,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
	if err := r.store.db.WithContext(ctx).Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "already applied to this job", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	var record applicationRecord
	if err := r.store.db.WithContext(ctx).First(&record, "id = ?", id.String()).Error; err != nil {
		return nil, notFoundOr(err, "application")
	}
	app := record.toDomain()
	return &app, nil
}

func (r *ApplicationRepository) FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*application.Application, error) {
	var record applicationRecord
	err := r.store.db.WithContext(ctx).
		Where("job_id = ? AND student_id = ?", jobID.String(), studentID.String()).
		First(&record).Error
	if err != nil {
		return nil, notFoundOr(err, "application")
	}
	app := record.toDomain()
	return &app, nil
}

type submissionRow struct {
	ID          string
	JobID       string
	StudentID   string
	Status      string
	CoverLetter string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	JobTitle    string
	JobCompany  string
	JobLocation string
	JobSalary   string
	JobType     string
	JobStatus   string
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Submission, error) {
	var rows []submissionRow
	err := r.store.db.WithContext(ctx).
		Table("applications").
		Select(`applications.id, applications.job_id, applications.student_id, applications.status,
			applications.cover_letter, applications.created_at, applications.updated_at,
			jobs.title AS job_title, jobs.company AS job_company, jobs.location AS job_location,
			jobs.salary AS job_salary, jobs.job_type AS job_type, jobs.status AS job_status`).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("applications.student_id = ?", studentID.String()).
		Order("applications.created_at DESC").
		Order("applications.id").
		Scan(&rows).Error
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list student applications", err)
	}
	items := make([]application.Submission, 0, len(rows))
	for _, row := range rows {
		items = append(items, application.Submission{
			Application: application.Application{
				ID:          common.UUID(row.ID),
				JobID:       common.UUID(row.JobID),
				StudentID:   common.UUID(row.StudentID),
				Status:      application.Status(row.Status),
				CoverLetter: row.CoverLetter,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			},
			Job: job.Summary{
				ID:       common.UUID(row.JobID),
				Title:    row.JobTitle,
				Company:  row.JobCompany,
				Location: row.JobLocation,
				Salary:   row.JobSalary,
				Type:     job.Type(row.JobType),
				Status:   job.Status(row.JobStatus),
			},
		})
	}
	return items, nil
}

type applicantRow struct {
	ID             string
	JobID          string
	StudentID      string
	Status         string
	CoverLetter    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	JobTitle       string
	StudentName    string
	StudentEmail   string
	StudentCollege *string
	StudentYear    *int
	StudentSkills  datatypes.JSONSlice[string]
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID, filter application.Filter) ([]application.Applicant, error) {
	var rows []applicantRow
	err := r.store.db.WithContext(ctx).
		Table("applications").
		Select(`applications.id, applications.job_id, applications.student_id, applications.status,
			applications.cover_letter, applications.created_at, applications.updated_at,
			jobs.title AS job_title, users.name AS student_name, users.email AS student_email,
			users.college AS student_college, users.year AS student_year, users.skills AS student_skills`).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Joins("JOIN users ON users.id = applications.student_id").
		Scopes(applicantFilter(jobID, filter)).
		Order("applications.created_at DESC").
		Order("applications.id").
		Scan(&rows).Error
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	items := make([]application.Applicant, 0, len(rows))
	for _, row := range rows {
		student := user.StudentSummary{
			ID:     common.UUID(row.StudentID),
			Name:   row.StudentName,
			Email:  row.StudentEmail,
			Skills: nonNil(row.StudentSkills),
		}
		if row.StudentCollege != nil {
			student.College = *row.StudentCollege
		}
		if row.StudentYear != nil {
			student.Year = *row.StudentYear
		}
		items = append(items, application.Applicant{
			Application: application.Application{
				ID:          common.UUID(row.ID),
				JobID:       common.UUID(row.JobID),
				StudentID:   common.UUID(row.StudentID),
				Status:      application.Status(row.Status),
				CoverLetter: row.CoverLetter,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			},
			JobTitle: row.JobTitle,
			Student:  student,
		})
	}
	return items, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	res := r.store.db.WithContext(ctx).
		Model(&applicationRecord{}).
		Where("id = ?", id.String()).
		Updates(map[string]any{"status": string(status), "updated_at": r.store.timestamp()})
	if res.Error != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return r.GetByID(ctx, id)
}

func (r applicationRecord) toDomain() application.Application {
	return application.Application{
		ID:          common.UUID(r.ID),
		JobID:       common.UUID(r.JobID),
		StudentID:   common.UUID(r.StudentID),
		Status:      application.Status(r.Status),
		CoverLetter: r.CoverLetter,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
