package csvparse

import (
	"testing"

	"alumbrado/internal/models"
)

func TestClassify_SpecialConditionWinsOverStatusCode(t *testing.T) {
	got := Classify("Broken", "Vandalizado Total")
	if got.Status != models.StatusFailure {
		t.Fatalf("status: got %s, want FAILURE", got.Status)
	}
	if got.Category != CategoryVandalism {
		t.Fatalf("category: got %q, want %q", got.Category, CategoryVandalism)
	}
	if !got.Special {
		t.Fatalf("expected Special=true")
	}
}

func TestClassify_SpecialConditions(t *testing.T) {
	cases := []struct {
		condition string
		want      string
	}{
		{"Columna Caida", CategoryFallenPole},
		{"HURTO", CategoryTheft},
		{"vandalizado parcial", CategoryVandalism},
	}
	for _, tc := range cases {
		got := Classify("", tc.condition)
		if got.Status != models.StatusFailure || got.Category != tc.want {
			t.Fatalf("Classify(%q): got %+v, want FAILURE/%s", tc.condition, got, tc.want)
		}
	}
}

func TestClassify_StatusCodeTable(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"Unreachable", CategoryUnreachable},
		{"Broken", CategoryBroken},
		{"Unspecific warning", CategoryVoltageFault},
		{"Configuration error", CategoryConfiguration},
		{"Hardware failure", CategoryHardware},
		{"Information", CategoryInformation},
	}
	for _, tc := range cases {
		got := Classify(tc.code, "")
		if got.Status != models.StatusFailure || got.Category != tc.want {
			t.Fatalf("Classify(%q): got %+v, want FAILURE/%s", tc.code, got, tc.want)
		}
		if got.Special {
			t.Fatalf("Classify(%q): Special should be false", tc.code)
		}
	}
}

// The translation table is not exhaustive: an unmapped non-empty code still
// means FAILURE, just without a category.
func TestClassify_UnmappedCodeIsFailureWithoutCategory(t *testing.T) {
	got := Classify("Some new platform code", "")
	if got.Status != models.StatusFailure {
		t.Fatalf("status: got %s, want FAILURE", got.Status)
	}
	if got.Category != "" {
		t.Fatalf("category: got %q, want empty", got.Category)
	}
}

func TestClassify_OperationalOnlyWhenEmptyAndNoSpecial(t *testing.T) {
	got := Classify("", "")
	if got.Status != models.StatusOperational || got.Category != "" || got.Special {
		t.Fatalf("got %+v, want OPERATIONAL with no category", got)
	}
	got = Classify("   ", "estado normal")
	if got.Status != models.StatusOperational {
		t.Fatalf("blank code with unrelated condition: got %s, want OPERATIONAL", got.Status)
	}
}
