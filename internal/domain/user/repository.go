package user

import (
	"context"

	"jobboard/internal/common"
)

// StudentFilter narrows student searches. Zero values impose no constraint.
type StudentFilter struct {
	Skills  []string
	Year    int
	College string
}

type Repository interface {
	// Create fails with CodeConflict when the email is already registered.
	Create(ctx context.Context, u User) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListStudents(ctx context.Context, filter StudentFilter) ([]User, error)
}
