package job

import (
	"time"

	"jobboard/internal/common"
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "Entry Level"
	ExperienceMid    ExperienceLevel = "Mid Level"
	ExperienceSenior ExperienceLevel = "Senior Level"
)

type Type string

const (
	TypeFullTime   Type = "Full-time"
	TypePartTime   Type = "Part-time"
	TypeInternship Type = "Internship"
	TypeContract   Type = "Contract"
)

// Job is a recruiter-owned posting. OwnerID and Company are fixed at creation.
type Job struct {
	ID              common.UUID     `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	SkillsRequired  []string        `json:"skills_required"`
	Company         string          `json:"company"`
	Location        string          `json:"location"`
	Salary          string          `json:"salary"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Type            Type            `json:"job_type"`
	OwnerID         common.UUID     `json:"recruiter_id"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Summary is the job view joined into a student's application listing.
type Summary struct {
	ID       common.UUID `json:"id"`
	Title    string      `json:"title"`
	Company  string      `json:"company"`
	Location string      `json:"location"`
	Salary   string      `json:"salary"`
	Type     Type        `json:"job_type"`
	Status   Status      `json:"status"`
}

func (j Job) Summary() Summary {
	return Summary{ID: j.ID, Title: j.Title, Company: j.Company, Location: j.Location, Salary: j.Salary, Type: j.Type, Status: j.Status}
}

func IsKnownExperienceLevel(level ExperienceLevel) bool {
	switch level {
	case ExperienceEntry, ExperienceMid, ExperienceSenior:
		return true
	default:
		return false
	}
}

func IsKnownType(t Type) bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeInternship, TypeContract:
		return true
	default:
		return false
	}
}

func IsKnownStatus(status Status) bool {
	return status == StatusActive || status == StatusClosed
}
