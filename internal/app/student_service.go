package app

import (
	"context"

	"jobboard/internal/authz"
	"jobboard/internal/domain/user"
)

// StudentService lets recruiters browse registered students.
type StudentService struct {
	users user.Repository
}

func NewStudentService(users user.Repository) *StudentService {
	return &StudentService{users: users}
}

func (s *StudentService) Search(ctx context.Context, p user.Principal, criteria StudentCriteria) ([]user.StudentSummary, error) {
	if err := authz.Authorize(p, authz.ActionSearchStudents, authz.Resource{}); err != nil {
		return nil, err
	}
	filter, err := criteria.compile()
	if err != nil {
		return nil, err
	}
	students, err := s.users.ListStudents(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]user.StudentSummary, 0, len(students))
	for _, student := range students {
		profile, _ := student.Principal().Student()
		skills := profile.Skills
		if skills == nil {
			skills = []string{}
		}
		items = append(items, user.StudentSummary{
			ID:      student.ID,
			Name:    student.Name,
			Email:   student.Email,
			College: profile.College,
			Year:    profile.Year,
			Skills:  skills,
		})
	}
	return items, nil
}
