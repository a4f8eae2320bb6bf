package application

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusApplied, StatusShortlisted, true},
		{StatusApplied, StatusRejected, true},
		{StatusShortlisted, StatusHired, true},
		{StatusShortlisted, StatusRejected, true},
		{StatusApplied, StatusApplied, true},
		{StatusApplied, StatusHired, false},
		{StatusShortlisted, StatusApplied, false},
		{StatusRejected, StatusShortlisted, false},
		{StatusHired, StatusApplied, false},
		{StatusHired, StatusRejected, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsKnownStatus(t *testing.T) {
	for _, status := range Statuses {
		if !IsKnownStatus(status) {
			t.Fatalf("expected %s to be known", status)
		}
	}
	for _, status := range []Status{"", "Applied", "pending", "in_review"} {
		if IsKnownStatus(status) {
			t.Fatalf("expected %q to be unknown", status)
		}
	}
}

func TestFinalStatuses(t *testing.T) {
	if !IsFinal(StatusRejected) || !IsFinal(StatusHired) {
		t.Fatalf("rejected and hired must be final")
	}
	if IsFinal(StatusApplied) || IsFinal(StatusShortlisted) {
		t.Fatalf("applied and shortlisted must not be final")
	}
}
