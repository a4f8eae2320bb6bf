// Package authz decides whether a principal may perform an action on a
// resource. Decisions are pure: no store access, no side effects.
package authz

import (
	"jobboard/internal/common"
	"jobboard/internal/domain/user"
)

type Action string

const (
	ActionReadJobs                Action = "jobs.read"
	ActionCreateJob               Action = "jobs.create"
	ActionUpdateJobStatus         Action = "jobs.update_status"
	ActionListOwnJobs             Action = "jobs.list_own"
	ActionApplyToJob              Action = "applications.create"
	ActionListJobApplications     Action = "applications.list_for_job"
	ActionUpdateApplicationStatus Action = "applications.update_status"
	ActionListOwnApplications     Action = "applications.list_own"
	ActionViewAnalytics           Action = "analytics.view"
	ActionSearchStudents          Action = "students.search"
)

// Resource identifies what an action targets. OwnerID is the recruiter that
// owns the job the resource belongs to; it is empty for actions that do not
// target an existing job.
type Resource struct {
	OwnerID common.UUID
}

// Authorize returns nil when the action is allowed, otherwise a *common.Error
// with CodeUnauthorized (no principal) or CodeForbidden.
func Authorize(p user.Principal, action Action, res Resource) error {
	if action == ActionReadJobs {
		return nil
	}
	if p.ID.IsZero() {
		return common.NewError(common.CodeUnauthorized, "authentication required", nil)
	}
	switch action {
	case ActionCreateJob, ActionListOwnJobs, ActionViewAnalytics, ActionSearchStudents:
		return requireRole(p, user.RoleRecruiter)
	case ActionApplyToJob, ActionListOwnApplications:
		return requireRole(p, user.RoleStudent)
	case ActionUpdateJobStatus, ActionListJobApplications, ActionUpdateApplicationStatus:
		if err := requireRole(p, user.RoleRecruiter); err != nil {
			return err
		}
		if res.OwnerID.IsZero() || res.OwnerID != p.ID {
			return common.NewError(common.CodeForbidden, "job belongs to another recruiter", nil)
		}
		return nil
	default:
		return common.NewError(common.CodeForbidden, "unknown action", nil)
	}
}

func requireRole(p user.Principal, role user.Role) error {
	if p.Role() != role {
		return common.NewError(common.CodeForbidden, "only "+string(role)+"s may perform this action", nil)
	}
	return nil
}
