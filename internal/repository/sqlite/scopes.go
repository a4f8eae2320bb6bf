package sqlite

import (
	"strings"

	"gorm.io/gorm"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

func jobFilter(f job.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != "" {
			db = db.Where("jobs.status = ?", string(f.Status))
		}
		if f.Text != "" {
			pattern := containsPattern(f.Text)
			db = db.Where(`(LOWER(jobs.title) LIKE ? ESCAPE '\' OR LOWER(jobs.description) LIKE ? ESCAPE '\')`, pattern, pattern)
		}
		if len(f.Skills) > 0 {
			db = db.Where("EXISTS (SELECT 1 FROM json_each(jobs.skills_required) WHERE json_each.value IN ?)", f.Skills)
		}
		if f.ExperienceLevel != "" {
			db = db.Where("jobs.experience_level = ?", string(f.ExperienceLevel))
		}
		if f.Type != "" {
			db = db.Where("jobs.job_type = ?", string(f.Type))
		}
		if f.Location != "" {
			db = db.Where(`LOWER(jobs.location) LIKE ? ESCAPE '\'`, containsPattern(f.Location))
		}
		return db
	}
}

func applicantFilter(jobID common.UUID, f application.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("applications.job_id = ?", jobID.String())
		if f.Status != "" {
			db = db.Where("applications.status = ?", string(f.Status))
		}
		return studentCriteria(db, f.Skills, f.Year, f.College)
	}
}

func studentFilter(f user.StudentFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("users.role = ?", string(user.RoleStudent))
		return studentCriteria(db, f.Skills, f.Year, f.College)
	}
}

func studentCriteria(db *gorm.DB, skills []string, year int, college string) *gorm.DB {
	if len(skills) > 0 {
		db = db.Where("EXISTS (SELECT 1 FROM json_each(users.skills) WHERE json_each.value IN ?)", skills)
	}
	if year != 0 {
		db = db.Where("users.year = ?", year)
	}
	if college != "" {
		db = db.Where(`LOWER(users.college) LIKE ? ESCAPE '\'`, containsPattern(college))
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern lower-cases value and wraps it for a literal substring LIKE.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
}
