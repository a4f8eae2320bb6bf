package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/user"
	"jobboard/internal/security"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// AuthService registers accounts, issues bearer tokens and resolves them
// back into principals.
type AuthService struct {
	users    user.Repository
	hasher   PasswordHasher
	tokens   *security.JWTProvider
	tokenTTL time.Duration
	logger   *slog.Logger
}

func NewAuthService(users user.Repository, hasher PasswordHasher, tokens *security.JWTProvider, tokenTTL time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, tokenTTL: tokenTTL, logger: logger}
}

type RegisterInput struct {
	Name     string    `json:"name" validate:"required,max=100"`
	Email    string    `json:"email" validate:"required,email,max=254"`
	Password string    `json:"password" validate:"required,min=6,max=72"`
	Role     user.Role `json:"role" validate:"required,oneof=student recruiter"`
	College  string    `json:"college" validate:"required_if=Role student,max=200"`
	Year     int       `json:"year" validate:"required_if=Role student,gte=0,lte=4"`
	Skills   []string  `json:"skills" validate:"max=50,dive,max=50"`
	Company  string    `json:"company" validate:"required_if=Role recruiter,max=200"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      user.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = user.NormalizeEmail(input.Email)
	input.Role = user.Role(strings.ToLower(strings.TrimSpace(string(input.Role))))
	input.College = strings.TrimSpace(input.College)
	input.Company = strings.TrimSpace(input.Company)
	input.Skills = cleanList(input.Skills)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var profile user.Profile
	switch input.Role {
	case user.RoleStudent:
		profile = user.StudentProfile{College: input.College, Year: input.Year, Skills: input.Skills}
	case user.RoleRecruiter:
		profile = user.RecruiterProfile{Company: input.Company}
	}
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := s.users.Create(ctx, user.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Profile:      profile,
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "user.registered", slog.String("user_id", created.ID.String()), slog.String("role", string(created.Role())))
	return s.issue(*created)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Email = user.NormalizeEmail(input.Email)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	account, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, errInvalidCredentials()
		}
		return nil, err
	}
	ok, err := s.hasher.Compare(account.PasswordHash, input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to verify password", err)
	}
	if !ok {
		return nil, errInvalidCredentials()
	}
	return s.issue(*account)
}

// Authenticate resolves a bearer token into the principal it was issued to.
// The account is reloaded so a deleted user cannot keep using old tokens.
func (s *AuthService) Authenticate(ctx context.Context, token string) (user.Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			return user.Principal{}, common.NewError(common.CodeUnauthorized, "token expired", err)
		}
		return user.Principal{}, common.NewError(common.CodeUnauthorized, "invalid token", err)
	}
	id, err := common.ParseUUID(claims.UserID)
	if err != nil {
		return user.Principal{}, common.NewError(common.CodeUnauthorized, "invalid token subject", err)
	}
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return user.Principal{}, common.NewError(common.CodeUnauthorized, "account no longer exists", err)
		}
		return user.Principal{}, err
	}
	return account.Principal(), nil
}

func (s *AuthService) issue(account user.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Generate(account.ID, string(account.Role()), s.tokenTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: account}, nil
}

func errInvalidCredentials() error {
	return common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
}
