package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

const jobColumns = `j.id, j.title, j.description, j.skills_required, j.company, j.location, j.salary, j.experience_level, j.job_type, j.owner_id, j.status, j.created_at, j.updated_at`

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	if j.Status == "" {
		j.Status = job.StatusActive
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (id, title, description, skills_required, company, location, salary, experience_level, job_type, owner_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		j.ID, j.Title, j.Description, pq.Array(j.SkillsRequired), j.Company, j.Location, j.Salary,
		string(j.ExperienceLevel), string(j.Type), j.OwnerID, string(j.Status), j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return j, nil
}

func (r *JobRepository) ListByOwner(ctx context.Context, ownerID common.UUID) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.owner_id = $1 ORDER BY j.created_at DESC, j.id`, ownerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	return collectJobs(rows)
}

func (r *JobRepository) Search(ctx context.Context, filter job.Filter, limit, offset int) ([]job.Job, error) {
	p := compileJobFilter(filter)
	query := `SELECT ` + jobColumns + ` FROM jobs j` + p.clause() +
		` ORDER BY j.created_at DESC, j.id LIMIT ` + p.bind(limit) + ` OFFSET ` + p.bind(offset)
	rows, err := r.db.QueryContext(ctx, query, p.args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to search jobs", err)
	}
	return collectJobs(rows)
}

func (r *JobRepository) Count(ctx context.Context, filter job.Filter) (int64, error) {
	p := compileJobFilter(filter)
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs j`+p.clause(), p.args...).Scan(&total); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count jobs", err)
	}
	return total, nil
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id common.UUID, status job.Status) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `UPDATE jobs j SET status = $1, updated_at = $2 WHERE j.id = $3 RETURNING `+jobColumns,
		string(status), time.Now().UTC(), id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to update job status", err)
	}
	return j, nil
}

func collectJobs(rows *sql.Rows) ([]job.Job, error) {
	defer rows.Close()
	items := []job.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read jobs", err)
	}
	return items, nil
}

func scanJob(row rowScanner) (*job.Job, error) {
	var (
		j      job.Job
		level  string
		kind   string
		status string
	)
	if err := row.Scan(&j.ID, &j.Title, &j.Description, pq.Array(&j.SkillsRequired), &j.Company, &j.Location, &j.Salary,
		&level, &kind, &j.OwnerID, &status, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	j.ExperienceLevel = job.ExperienceLevel(level)
	j.Type = job.Type(kind)
	j.Status = job.Status(status)
	return &j, nil
}

