package postgres

import (
	"context"
	"database/sql"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/application"
)

// AnalyticsRepository aggregates over one recruiter's jobs and the
// applications they received.
type AnalyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) CountJobs(ctx context.Context, ownerID common.UUID) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count jobs", err)
	}
	return total, nil
}

func (r *AnalyticsRepository) CountByStatus(ctx context.Context, ownerID common.UUID) (map[application.Status]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.status, COUNT(*)
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE j.owner_id = $1
		GROUP BY a.status`, ownerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications by status", err)
	}
	defer rows.Close()
	stats := make(map[application.Status]int64)
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan status count", err)
		}
		stats[application.Status(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read status counts", err)
	}
	return stats, nil
}

// TopSkills counts each skill once per application whose student lists it.
func (r *AnalyticsRepository) TopSkills(ctx context.Context, ownerID common.UUID, limit int) ([]analytics.SkillCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT s.skill, COUNT(*) AS total
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = a.student_id
		CROSS JOIN LATERAL (SELECT DISTINCT unnest(u.skills) AS skill) s
		WHERE j.owner_id = $1
		GROUP BY s.skill
		ORDER BY total DESC, s.skill
		LIMIT $2`, ownerID, limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to aggregate skills", err)
	}
	defer rows.Close()
	items := []analytics.SkillCount{}
	for rows.Next() {
		var item analytics.SkillCount
		if err := rows.Scan(&item.Skill, &item.Count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan skill count", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read skill counts", err)
	}
	return items, nil
}
