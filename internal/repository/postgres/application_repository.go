package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

const applicationColumns = `a.id, a.job_id, a.student_id, a.status, a.cover_letter, a.created_at, a.updated_at`

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = application.StatusApplied
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (id, job_id, student_id, status, cover_letter, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ID, app.JobID, app.StudentID, string(app.Status), app.CoverLetter, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "already applied to this job", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`, id)
	return scanApplicationRow(row)
}

func (r *ApplicationRepository) FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications a WHERE a.job_id = $1 AND a.student_id = $2`, jobID, studentID)
	return scanApplicationRow(row)
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Submission, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+`, j.id, j.title, j.company, j.location, j.salary, j.job_type, j.status
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.student_id = $1
		ORDER BY a.created_at DESC, a.id`, studentID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list student applications", err)
	}
	defer rows.Close()
	items := []application.Submission{}
	for rows.Next() {
		var (
			item      application.Submission
			status    string
			jobType   string
			jobStatus string
		)
		if err := rows.Scan(&item.ID, &item.JobID, &item.StudentID, &status, &item.CoverLetter, &item.CreatedAt, &item.UpdatedAt,
			&item.Job.ID, &item.Job.Title, &item.Job.Company, &item.Job.Location, &item.Job.Salary, &jobType, &jobStatus); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		item.Status = application.Status(status)
		item.Job.Type = job.Type(jobType)
		item.Job.Status = job.Status(jobStatus)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read student applications", err)
	}
	return items, nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID, filter application.Filter) ([]application.Applicant, error) {
	p := compileApplicantFilter(jobID, filter)
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+`, j.title, u.id, u.name, u.email, u.college, u.year, u.skills
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = a.student_id`+p.clause()+`
		ORDER BY a.created_at DESC, a.id`, p.args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	items := []application.Applicant{}
	for rows.Next() {
		var (
			item    application.Applicant
			status  string
			college sql.NullString
			year    sql.NullInt64
			skills  []string
		)
		if err := rows.Scan(&item.ID, &item.JobID, &item.StudentID, &status, &item.CoverLetter, &item.CreatedAt, &item.UpdatedAt,
			&item.JobTitle, &item.Student.ID, &item.Student.Name, &item.Student.Email, &college, &year, pq.Array(&skills)); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan applicant", err)
		}
		if skills == nil {
			skills = []string{}
		}
		item.Status = application.Status(status)
		item.Student = user.StudentSummary{
			ID:      item.Student.ID,
			Name:    item.Student.Name,
			Email:   item.Student.Email,
			College: college.String,
			Year:    int(year.Int64),
			Skills:  skills,
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read applications", err)
	}
	return items, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `UPDATE applications a SET status = $1, updated_at = $2 WHERE a.id = $3 RETURNING `+applicationColumns,
		string(status), time.Now().UTC(), id)
	return scanApplicationRow(row)
}

func scanApplicationRow(row *sql.Row) (*application.Application, error) {
	var (
		app    application.Application
		status string
	)
	if err := row.Scan(&app.ID, &app.JobID, &app.StudentID, &status, &app.CoverLetter, &app.CreatedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	app.Status = application.Status(status)
	return &app, nil
}
