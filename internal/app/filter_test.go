package app

import (
	"reflect"
	"testing"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
)

func TestSplitSkills(t *testing.T) {
	cases := map[string][]string{
		"":               nil,
		" , ,":           nil,
		"go":             {"go"},
		" go , sql,go, ": {"go", "sql"},
	}
	for raw, want := range cases {
		if got := splitSkills(raw); !reflect.DeepEqual(got, want) {
			t.Fatalf("splitSkills(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestJobSearchCriteriaCompile(t *testing.T) {
	filter, page, limit, err := JobSearchCriteria{
		Search:          " golang ",
		Skills:          "go,sql",
		ExperienceLevel: "Mid Level",
		JobType:         "Contract",
		Location:        " Pune ",
		Page:            "3",
		Limit:           "50",
	}.compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	want := job.Filter{
		Status:          job.StatusActive,
		Text:            "golang",
		Skills:          []string{"go", "sql"},
		ExperienceLevel: job.ExperienceMid,
		Type:            job.TypeContract,
		Location:        "Pune",
	}
	if !reflect.DeepEqual(filter, want) || page != 3 || limit != 50 {
		t.Fatalf("unexpected compile result: %+v page=%d limit=%d", filter, page, limit)
	}

	filter, page, limit, err = JobSearchCriteria{}.compile()
	if err != nil {
		t.Fatalf("compile empty: %v", err)
	}
	if !reflect.DeepEqual(filter, job.Filter{Status: job.StatusActive}) || page != DefaultPage || limit != DefaultLimit {
		t.Fatalf("unexpected defaults: %+v page=%d limit=%d", filter, page, limit)
	}
}

func TestJobSearchCriteriaCollectsAllFieldErrors(t *testing.T) {
	_, _, _, err := JobSearchCriteria{ExperienceLevel: "senior", JobType: "gig", Page: "-1", Limit: "100"}.compile()
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := err.(*common.Error).Fields
	for _, key := range []string{"experience_level", "job_type", "page", "limit"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("expected %s in %v", key, fields)
		}
	}
}

func TestApplicantCriteriaCompile(t *testing.T) {
	filter, err := ApplicantCriteria{Status: "Shortlisted", Skills: "go", Year: "2", College: " IIT "}.compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	want := application.Filter{Status: application.StatusShortlisted, Skills: []string{"go"}, Year: 2, College: "IIT"}
	if !reflect.DeepEqual(filter, want) {
		t.Fatalf("got %+v, want %+v", filter, want)
	}
	if _, err := (ApplicantCriteria{Status: "pending"}).compile(); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for status, got %v", err)
	}
}

func TestPagination(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		pages int
	}{{0, 10, 0}, {1, 10, 1}, {10, 10, 1}, {11, 10, 2}, {101, 50, 3}}
	for _, tc := range cases {
		if got := newPagination(1, tc.limit, tc.total).Pages; got != tc.pages {
			t.Fatalf("pages(total=%d, limit=%d) = %d, want %d", tc.total, tc.limit, got, tc.pages)
		}
	}
}
