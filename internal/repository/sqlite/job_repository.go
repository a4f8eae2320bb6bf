package sqlite

import (
	"context"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

type JobRepository struct {
	store *Store
}

func NewJobRepository(store *Store) *JobRepository {
	return &JobRepository{store: store}
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := r.store.timestamp()
	j.CreatedAt = now
	j.UpdatedAt = now
	if j.Status == "" {
		j.Status = job.StatusActive
	}
	record := jobRecordFrom(j)
	if err := r.store.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	var record jobRecord
	if err := r.store.db.WithContext(ctx).First(&record, "id = ?", id.String()).Error; err != nil {
		return nil, notFoundOr(err, "job")
	}
	j := record.toDomain()
	return &j, nil
}

func (r *JobRepository) ListByOwner(ctx context.Context, ownerID common.UUID) ([]job.Job, error) {
	var records []jobRecord
	err := r.store.db.WithContext(ctx).
		Where("owner_id = ?", ownerID.String()).
		Order("created_at DESC").
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	return jobsFrom(records), nil
}

func (r *JobRepository) Search(ctx context.Context, filter job.Filter, limit, offset int) ([]job.Job, error) {
	var records []jobRecord
	err := r.store.db.WithContext(ctx).
		Scopes(jobFilter(filter)).
		Order("jobs.created_at DESC").
		Order("jobs.id").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to search jobs", err)
	}
	return jobsFrom(records), nil
}

func (r *JobRepository) Count(ctx context.Context, filter job.Filter) (int64, error) {
	var total int64
	if err := r.store.db.WithContext(ctx).Model(&jobRecord{}).Scopes(jobFilter(filter)).Count(&total).Error; err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count jobs", err)
	}
	return total, nil
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id common.UUID, status job.Status) (*job.Job, error) {
	res := r.store.db.WithContext(ctx).
		Model(&jobRecord{}).
		Where("id = ?", id.String()).
		Updates(map[string]any{"status": string(status), "updated_at": r.store.timestamp()})
	if res.Error != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job status", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return r.GetByID(ctx, id)
}

func jobRecordFrom(j job.Job) jobRecord {
	return jobRecord{
		ID:              j.ID.String(),
		Title:           j.Title,
		Description:     j.Description,
		SkillsRequired:  nonNil(j.SkillsRequired),
		Company:         j.Company,
		Location:        j.Location,
		Salary:          j.Salary,
		ExperienceLevel: string(j.ExperienceLevel),
		JobType:         string(j.Type),
		OwnerID:         j.OwnerID.String(),
		Status:          string(j.Status),
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func (r jobRecord) toDomain() job.Job {
	return job.Job{
		ID:              common.UUID(r.ID),
		Title:           r.Title,
		Description:     r.Description,
		SkillsRequired:  nonNil(r.SkillsRequired),
		Company:         r.Company,
		Location:        r.Location,
		Salary:          r.Salary,
		ExperienceLevel: job.ExperienceLevel(r.ExperienceLevel),
		Type:            job.Type(r.JobType),
		OwnerID:         common.UUID(r.OwnerID),
		Status:          job.Status(r.Status),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func jobsFrom(records []jobRecord) []job.Job {
	items := make([]job.Job, 0, len(records))
	for _, record := range records {
		items = append(items, record.toDomain())
	}
	return items
}
