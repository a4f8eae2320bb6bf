package app

import (
	"context"
	"testing"

	"jobboard/internal/common"
)

func TestStudentSearch(t *testing.T) {
	f := newFixture()
	rita := f.recruiter("Rita", "Acme")
	f.student("Sam", "MIT", 3, "go", "sql")
	f.student("Lee", "Stanford", 2, "react")
	kim := f.student("Kim", "MIT", 3, "python")

	got, err := f.studentSvc.Search(context.Background(), rita, StudentCriteria{College: "mit", Year: "3"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two MIT third-years, got %+v", got)
	}

	got, err = f.studentSvc.Search(context.Background(), rita, StudentCriteria{Skills: "go, react"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected any-of skill match, got %+v", got)
	}

	if _, err := f.studentSvc.Search(context.Background(), kim, StudentCriteria{}); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for student caller, got %v", err)
	}
	if _, err := f.studentSvc.Search(context.Background(), rita, StudentCriteria{Year: "9"}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for year out of range, got %v", err)
	}
}
