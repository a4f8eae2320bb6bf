package analytics

import (
	"context"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
)

const TopSkillsLimit = 10

type SkillCount struct {
	Skill string `json:"skill"`
	Count int64  `json:"count"`
}

// Summary describes the applications received across one recruiter's jobs.
type Summary struct {
	TotalJobs         int64                        `json:"totalJobs"`
	TotalApplications int64                        `json:"totalApplications"`
	StatusStats       map[application.Status]int64 `json:"statusStats"`
	SkillsStats       []SkillCount                 `json:"skillsStats"`
}

// Repository aggregates over applications whose job is owned by ownerID.
// The application total is derived from CountByStatus, so no separate count
// exists that could disagree with it.
type Repository interface {
	CountJobs(ctx context.Context, ownerID common.UUID) (int64, error)
	CountByStatus(ctx context.Context, ownerID common.UUID) (map[application.Status]int64, error)
	TopSkills(ctx context.Context, ownerID common.UUID, limit int) ([]SkillCount, error)
}
