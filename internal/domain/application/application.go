package application

import (
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

type Status string

const (
	StatusApplied     Status = "applied"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusHired       Status = "hired"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusApplied, StatusShortlisted, StatusRejected, StatusHired}

// Application is a student's bid on a job. JobID and StudentID never change
// after creation and the pair is unique.
type Application struct {
	ID          common.UUID `json:"id"`
	JobID       common.UUID `json:"job_id"`
	StudentID   common.UUID `json:"student_id"`
	Status      Status      `json:"status"`
	CoverLetter string      `json:"cover_letter,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Applicant is an application joined with its student, as seen by the job owner.
type Applicant struct {
	Application
	JobTitle string              `json:"job_title"`
	Student  user.StudentSummary `json:"student"`
}

// Submission is an application joined with its job, as seen by the student.
type Submission struct {
	Application
	Job job.Summary `json:"job"`
}

func IsKnownStatus(status Status) bool {
	switch status {
	case StatusApplied, StatusShortlisted, StatusRejected, StatusHired:
		return true
	default:
		return false
	}
}

func IsFinal(status Status) bool {
	return status == StatusRejected || status == StatusHired
}

// CanTransition reports whether a recruiter may move an application from one
// status to another. Staying on the same status is always allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusApplied:
		return to == StatusShortlisted || to == StatusRejected
	case StatusShortlisted:
		return to == StatusHired || to == StatusRejected
	default:
		return false
	}
}
