package app

import (
	"strconv"
	"strings"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

// JobSearchCriteria is the raw, string-typed job search as received from a
// client. Empty fields impose no constraint.
type JobSearchCriteria struct {
	Search          string
	Skills          string
	ExperienceLevel string
	JobType         string
	Location        string
	Page            string
	Limit           string
}

// ApplicantCriteria narrows a job's applicant list.
type ApplicantCriteria struct {
	Status  string
	Skills  string
	Year    string
	College string
}

type StudentCriteria struct {
	Skills  string
	Year    string
	College string
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type JobPage struct {
	Jobs       []job.Job  `json:"jobs"`
	Pagination Pagination `json:"pagination"`
}

func newPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// compile turns the criteria into a store filter plus page/limit. Search
// only ever matches active jobs.
func (c JobSearchCriteria) compile() (job.Filter, int, int, error) {
	fields := map[string]string{}
	filter := job.Filter{
		Status:   job.StatusActive,
		Text:     strings.TrimSpace(c.Search),
		Skills:   splitSkills(c.Skills),
		Location: strings.TrimSpace(c.Location),
	}
	if raw := strings.TrimSpace(c.ExperienceLevel); raw != "" {
		level := job.ExperienceLevel(raw)
		if !job.IsKnownExperienceLevel(level) {
			fields["experience_level"] = "must be one of: " + joinValues(job.ExperienceEntry, job.ExperienceMid, job.ExperienceSenior)
		}
		filter.ExperienceLevel = level
	}
	if raw := strings.TrimSpace(c.JobType); raw != "" {
		kind := job.Type(raw)
		if !job.IsKnownType(kind) {
			fields["job_type"] = "must be one of: " + joinValues(job.TypeFullTime, job.TypePartTime, job.TypeInternship, job.TypeContract)
		}
		filter.Type = kind
	}
	page := parseBoundedInt(c.Page, DefaultPage, 1, 0, "page", fields)
	limit := parseBoundedInt(c.Limit, DefaultLimit, 1, MaxLimit, "limit", fields)
	if len(fields) > 0 {
		return job.Filter{}, 0, 0, common.NewValidationError("invalid search criteria", fields)
	}
	return filter, page, limit, nil
}

func (c ApplicantCriteria) compile() (application.Filter, error) {
	fields := map[string]string{}
	filter := application.Filter{
		Skills:  splitSkills(c.Skills),
		College: strings.TrimSpace(c.College),
		Year:    parseBoundedInt(c.Year, 0, 1, 4, "year", fields),
	}
	if raw := strings.TrimSpace(c.Status); raw != "" {
		status, err := parseApplicationStatus(raw)
		if err != nil {
			fields["status"] = "must be one of: " + joinValues(application.Statuses...)
		}
		filter.Status = status
	}
	if len(fields) > 0 {
		return application.Filter{}, common.NewValidationError("invalid applicant filter", fields)
	}
	return filter, nil
}

func (c StudentCriteria) compile() (user.StudentFilter, error) {
	fields := map[string]string{}
	filter := user.StudentFilter{
		Skills:  splitSkills(c.Skills),
		College: strings.TrimSpace(c.College),
		Year:    parseBoundedInt(c.Year, 0, 1, 4, "year", fields),
	}
	if len(fields) > 0 {
		return user.StudentFilter{}, common.NewValidationError("invalid student filter", fields)
	}
	return filter, nil
}

// splitSkills parses a comma-separated skill list.
func splitSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	skills := cleanList(strings.Split(raw, ","))
	if len(skills) == 0 {
		return nil
	}
	return skills
}

// parseBoundedInt returns fallback for an empty value and records a field
// error when the value is not an integer in [lo, hi]. hi <= 0 means no
// upper bound.
func parseBoundedInt(raw string, fallback, lo, hi int, field string, fields map[string]string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < lo || (hi > 0 && value > hi) {
		if hi > 0 {
			fields[field] = "must be an integer between " + strconv.Itoa(lo) + " and " + strconv.Itoa(hi)
		} else {
			fields[field] = "must be an integer of at least " + strconv.Itoa(lo)
		}
		return fallback
	}
	return value
}
