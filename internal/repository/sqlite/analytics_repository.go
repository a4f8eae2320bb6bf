package sqlite

import (
	"context"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/application"
)

type AnalyticsRepository struct {
	store *Store
}

func NewAnalyticsRepository(store *Store) *AnalyticsRepository {
	return &AnalyticsRepository{store: store}
}

func (r *AnalyticsRepository) CountJobs(ctx context.Context, ownerID common.UUID) (int64, error) {
	var total int64
	if err := r.store.db.WithContext(ctx).Model(&jobRecord{}).Where("owner_id = ?", ownerID.String()).Count(&total).Error; err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count jobs", err)
	}
	return total, nil
}

func (r *AnalyticsRepository) CountByStatus(ctx context.Context, ownerID common.UUID) (map[application.Status]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.store.db.WithContext(ctx).
		Model(&applicationRecord{}).
		Select("applications.status AS status, COUNT(*) AS total").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.owner_id = ?", ownerID.String()).
		Group("applications.status").
		Scan(&rows).Error
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications by status", err)
	}
	stats := make(map[application.Status]int64, len(rows))
	for _, row := range rows {
		stats[application.Status(row.Status)] = row.Total
	}
	return stats, nil
}

// TopSkills counts each skill once per application whose student lists it.
func (r *AnalyticsRepository) TopSkills(ctx context.Context, ownerID common.UUID, limit int) ([]analytics.SkillCount, error) {
	items := []analytics.SkillCount{}
	err := r.store.db.WithContext(ctx).Raw(`SELECT s.value AS skill, COUNT(DISTINCT a.id) AS count
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = a.student_id
		JOIN json_each(u.skills) s
		WHERE j.owner_id = ? AND s.type = 'text'
		GROUP BY s.value
		ORDER BY count DESC, skill
		LIMIT ?`, ownerID.String(), limit).Scan(&items).Error
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to aggregate skills", err)
	}
	return items, nil
}
