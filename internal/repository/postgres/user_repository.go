package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"jobboard/internal/common"
	"jobboard/internal/domain/user"
)

const userColumns = `u.id, u.name, u.email, u.password_hash, u.role, u.college, u.year, u.skills, u.company, u.created_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (*user.User, error) {
	u.ID = common.NewUUID()
	u.Email = user.NormalizeEmail(u.Email)
	u.CreatedAt = time.Now().UTC()
	var (
		college sql.NullString
		year    sql.NullInt64
		company sql.NullString
		skills  = []string{}
	)
	switch profile := u.Profile.(type) {
	case user.StudentProfile:
		college = sql.NullString{String: profile.College, Valid: true}
		year = sql.NullInt64{Int64: int64(profile.Year), Valid: true}
		if profile.Skills != nil {
			skills = profile.Skills
		}
	case user.RecruiterProfile:
		company = sql.NullString{String: profile.Company, Valid: true}
	default:
		return nil, common.NewError(common.CodeValidation, "user profile is required", nil)
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (id, name, email, password_hash, role, college, year, skills, company, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role()), college, year, pq.Array(skills), company, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "email already registered", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id)
	return scanUserRow(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE LOWER(u.email) = $1`, user.NormalizeEmail(email))
	return scanUserRow(row)
}

func (r *UserRepository) ListStudents(ctx context.Context, filter user.StudentFilter) ([]user.User, error) {
	p := compileStudentFilter(filter)
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users u`+p.clause()+` ORDER BY u.created_at DESC`, p.args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list students", err)
	}
	defer rows.Close()
	items := []user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan student", err)
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list students", err)
	}
	return items, nil
}

func scanUserRow(row *sql.Row) (*user.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return u, nil
}

func scanUser(row rowScanner) (*user.User, error) {
	var (
		u       user.User
		role    string
		college sql.NullString
		year    sql.NullInt64
		skills  []string
		company sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &college, &year, pq.Array(&skills), &company, &u.CreatedAt); err != nil {
		return nil, err
	}
	switch user.Role(role) {
	case user.RoleStudent:
		if skills == nil {
			skills = []string{}
		}
		u.Profile = user.StudentProfile{College: college.String, Year: int(year.Int64), Skills: skills}
	case user.RoleRecruiter:
		u.Profile = user.RecruiterProfile{Company: company.String}
	}
	return &u, nil
}
