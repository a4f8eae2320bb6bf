package user

import (
	"encoding/json"
	"strings"
	"time"

	"jobboard/internal/common"
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
)

// Profile is the role-specific part of an account. Only StudentProfile and
// RecruiterProfile implement it, so the role of a user is always implied by
// which variant it carries.
type Profile interface {
	Role() Role
	isProfile()
}

type StudentProfile struct {
	College string   `json:"college"`
	Year    int      `json:"year"`
	Skills  []string `json:"skills"`
}

func (StudentProfile) Role() Role { return RoleStudent }
func (StudentProfile) isProfile() {}

type RecruiterProfile struct {
	Company string `json:"company"`
}

func (RecruiterProfile) Role() Role { return RoleRecruiter }
func (RecruiterProfile) isProfile() {}

type User struct {
	ID           common.UUID
	Name         string
	Email        string
	PasswordHash string
	Profile      Profile
	CreatedAt    time.Time
}

// Principal is the authenticated actor behind a request.
type Principal struct {
	ID      common.UUID
	Name    string
	Email   string
	Profile Profile
}

func (u User) Role() Role {
	if u.Profile == nil {
		return ""
	}
	return u.Profile.Role()
}

func (u User) Principal() Principal {
	return Principal{ID: u.ID, Name: u.Name, Email: u.Email, Profile: u.Profile}
}

func (p Principal) Role() Role {
	if p.Profile == nil {
		return ""
	}
	return p.Profile.Role()
}

func (p Principal) Student() (StudentProfile, bool) {
	profile, ok := p.Profile.(StudentProfile)
	return profile, ok
}

func (p Principal) Recruiter() (RecruiterProfile, bool) {
	profile, ok := p.Profile.(RecruiterProfile)
	return profile, ok
}

// NormalizeEmail makes emails comparable; uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// StudentSummary is the applicant view joined into application listings.
type StudentSummary struct {
	ID      common.UUID `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	College string      `json:"college"`
	Year    int         `json:"year"`
	Skills  []string    `json:"skills"`
}

type publicUser struct {
	ID        common.UUID `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      Role        `json:"role"`
	College   string      `json:"college,omitempty"`
	Year      int         `json:"year,omitempty"`
	Skills    []string    `json:"skills,omitempty"`
	Company   string      `json:"company,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

func (u User) MarshalJSON() ([]byte, error) {
	out := publicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role(), CreatedAt: u.CreatedAt}
	switch profile := u.Profile.(type) {
	case StudentProfile:
		out.College = profile.College
		out.Year = profile.Year
		out.Skills = profile.Skills
		if out.Skills == nil {
			out.Skills = []string{}
		}
	case RecruiterProfile:
		out.Company = profile.Company
	}
	return json.Marshal(out)
}

func (p Principal) MarshalJSON() ([]byte, error) {
	return User{ID: p.ID, Name: p.Name, Email: p.Email, Profile: p.Profile}.MarshalJSON()
}
