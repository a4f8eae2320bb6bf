package postgres

import (
	"strconv"
	"strings"

	"github.com/lib/pq"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

// predicate accumulates AND-ed conditions with positional arguments.
type predicate struct {
	conds []string
	args  []any
}

func (p *predicate) bind(value any) string {
	p.args = append(p.args, value)
	return "$" + strconv.Itoa(len(p.args))
}

func (p *predicate) where(cond string) {
	p.conds = append(p.conds, cond)
}

func (p *predicate) clause() string {
	if len(p.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.conds, " AND ")
}

func compileJobFilter(f job.Filter) *predicate {
	p := &predicate{}
	if f.Status != "" {
		p.where("j.status = " + p.bind(string(f.Status)))
	}
	if f.Text != "" {
		p.where("to_tsvector('english', j.title || ' ' || j.description) @@ plainto_tsquery('english', " + p.bind(f.Text) + ")")
	}
	if len(f.Skills) > 0 {
		p.where("j.skills_required && " + p.bind(pq.Array(f.Skills)))
	}
	if f.ExperienceLevel != "" {
		p.where("j.experience_level = " + p.bind(string(f.ExperienceLevel)))
	}
	if f.Type != "" {
		p.where("j.job_type = " + p.bind(string(f.Type)))
	}
	if f.Location != "" {
		p.where("j.location ILIKE " + p.bind(containsPattern(f.Location)))
	}
	return p
}

func compileApplicantFilter(jobID common.UUID, f application.Filter) *predicate {
	p := &predicate{}
	p.where("a.job_id = " + p.bind(jobID))
	if f.Status != "" {
		p.where("a.status = " + p.bind(string(f.Status)))
	}
	compileStudentCriteria(p, "u", f.Skills, f.Year, f.College)
	return p
}

func compileStudentFilter(f user.StudentFilter) *predicate {
	p := &predicate{}
	p.where("u.role = " + p.bind(string(user.RoleStudent)))
	compileStudentCriteria(p, "u", f.Skills, f.Year, f.College)
	return p
}

func compileStudentCriteria(p *predicate, alias string, skills []string, year int, college string) {
	if len(skills) > 0 {
		p.where(alias + ".skills && " + p.bind(pq.Array(skills)))
	}
	if year != 0 {
		p.where(alias + ".year = " + p.bind(year))
	}
	if college != "" {
		p.where(alias + ".college ILIKE " + p.bind(containsPattern(college)))
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching value as a literal substring.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
