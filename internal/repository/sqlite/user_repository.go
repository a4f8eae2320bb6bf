package sqlite

import (
	"context"

	"jobboard/internal/common"
	"jobboard/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (*user.User, error) {
	u.ID = common.NewUUID()
	u.Email = user.NormalizeEmail(u.Email)
	u.CreatedAt = r.store.timestamp()
	record := userRecord{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role()),
		Skills:       []string{},
		CreatedAt:    u.CreatedAt,
	}
	switch profile := u.Profile.(type) {
	case user.StudentProfile:
		college, year := profile.College, profile.Year
		record.College = &college
		record.Year = &year
		record.Skills = nonNil(profile.Skills)
	case user.RecruiterProfile:
		company := profile.Company
		record.Company = &company
	default:
		return nil, common.NewError(common.CodeValidation, "user profile is required", nil)
	}
	if err := r.store.db.WithContext(ctx).Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "email already registered", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	var record userRecord
	if err := r.store.db.WithContext(ctx).First(&record, "id = ?", id.String()).Error; err != nil {
		return nil, notFoundOr(err, "user")
	}
	u := record.toDomain()
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var record userRecord
	if err := r.store.db.WithContext(ctx).First(&record, "email = ?", user.NormalizeEmail(email)).Error; err != nil {
		return nil, notFoundOr(err, "user")
	}
	u := record.toDomain()
	return &u, nil
}

func (r *UserRepository) ListStudents(ctx context.Context, filter user.StudentFilter) ([]user.User, error) {
	var records []userRecord
	err := r.store.db.WithContext(ctx).
		Scopes(studentFilter(filter)).
		Order("users.created_at DESC").
		Order("users.id").
		Find(&records).Error
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list students", err)
	}
	items := make([]user.User, 0, len(records))
	for _, record := range records {
		items = append(items, record.toDomain())
	}
	return items, nil
}

func (r userRecord) toDomain() user.User {
	u := user.User{
		ID:           common.UUID(r.ID),
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
	switch user.Role(r.Role) {
	case user.RoleStudent:
		profile := user.StudentProfile{Skills: nonNil(r.Skills)}
		if r.College != nil {
			profile.College = *r.College
		}
		if r.Year != nil {
			profile.Year = *r.Year
		}
		u.Profile = profile
	case user.RoleRecruiter:
		profile := user.RecruiterProfile{}
		if r.Company != nil {
			profile.Company = *r.Company
		}
		u.Profile = profile
	}
	return u
}
