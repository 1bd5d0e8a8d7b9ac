package validation_test

import (
	"testing"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/testsupport"
	"github.com/goliatone/go-regform/pkg/validation"
)

func TestIsNonEmpty(t *testing.T) {
	cases := map[string]bool{
		"":          false,
		"   ":       false,
		"\t\n":      false,
		"a":         true,
		"  Kratos ": true,
	}
	for input, want := range cases {
		if got := validation.IsNonEmpty(input); got != want {
			t.Errorf("IsNonEmpty(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"kratos@olympus.gr", true},
		{"  KRATOS@OLYMPUS.GR  ", true},
		{"a.b+c@sub.domain.io", true},
		{"a@b.c.de", true},
		{"a@b.c", false},
		{"a@b.cd.e", false},
		{"a@b.", false},
		{"a@.cd", false},
		{"@b.cd", false},
		{"a b@c.de", false},
		{"a@b@c.de", false},
		{"plainaddress", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := validation.ValidateEmail(tc.input); got != tc.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		input string
		want  string
		kind  model.ErrorKind
	}{
		{"Abcdefg1", "", ""},
		{"abc", validation.MessagePasswordTooShort, model.KindPasswordTooShort},
		{"Abcdef1", validation.MessagePasswordTooShort, model.KindPasswordTooShort},
		{"abcdefgh", validation.MessagePasswordMissingUpper, model.KindPasswordMissingUpper},
		{"abcdefg1", validation.MessagePasswordMissingUpper, model.KindPasswordMissingUpper},
		{"Abcdefgh", validation.MessagePasswordMissingDigit, model.KindPasswordMissingDigit},
		{"ÁÉÍÓÚabc", validation.MessagePasswordMissingUpper, model.KindPasswordMissingUpper},
	}
	for _, tc := range cases {
		if got := validation.ValidatePassword(tc.input); got != tc.want {
			t.Errorf("ValidatePassword(%q) = %q, want %q", tc.input, got, tc.want)
		}
		if kind, _ := validation.CheckPassword(tc.input); kind != tc.kind {
			t.Errorf("CheckPassword(%q) kind = %q, want %q", tc.input, kind, tc.kind)
		}
	}
}

func TestComputeAge_Boundaries(t *testing.T) {
	today := testsupport.Today

	cases := []struct {
		name string
		dob  string
		want int
	}{
		{"exactly thirteen", testsupport.YearsBefore(13, 0), 13},
		{"day before thirteenth birthday", testsupport.YearsBefore(13, 1), 12},
		{"birthday earlier in month", "1990-06-01", 35},
		{"birthday later in year", "1990-12-31", 34},
		{"born today", today.Format("2006-01-02"), 0},
		{"rfc3339 timestamp", "1990-03-21T08:00:00Z", 35},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			age, ok := validation.ComputeAge(tc.dob, today)
			if !ok {
				t.Fatalf("expected %q to parse", tc.dob)
			}
			if age != tc.want {
				t.Fatalf("ComputeAge(%q) = %d, want %d", tc.dob, age, tc.want)
			}
		})
	}
}

func TestComputeAge_Idempotent(t *testing.T) {
	dob := testsupport.YearsBefore(13, 0)
	first, _ := validation.ComputeAge(dob, testsupport.Today)
	second, _ := validation.ComputeAge(dob, testsupport.Today)
	if first != second {
		t.Fatalf("expected stable age, got %d then %d", first, second)
	}
}

func TestComputeAge_Unparseable(t *testing.T) {
	for _, input := range []string{"", "   ", "yesterday", "2023-02-30", "15/06/2000"} {
		if _, ok := validation.ComputeAge(input, testsupport.Today); ok {
			t.Errorf("expected %q to be unparseable", input)
		}
	}
}

func TestValidateDOB_Boundaries(t *testing.T) {
	cases := []struct {
		name string
		dob  string
		want string
		kind model.ErrorKind
	}{
		{"age 13 inclusive", testsupport.YearsBefore(13, 0), "", ""},
		{"age 12", testsupport.YearsBefore(13, 1), validation.MessageDOBTooYoung, model.KindDOBTooYoung},
		{"age 100 inclusive", testsupport.YearsBefore(100, 0), "", ""},
		{"age 101", testsupport.YearsBefore(101, 0), validation.MessageDOBTooOld, model.KindDOBTooOld},
		{"future date", testsupport.YearsBefore(-1, 0), validation.MessageDOBTooYoung, model.KindDOBTooYoung},
		{"garbage", "not-a-date", validation.MessageDOBUnparseable, model.KindDOBUnparseable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validation.ValidateDOB(tc.dob, testsupport.Today); got != tc.want {
				t.Fatalf("ValidateDOB(%q) = %q, want %q", tc.dob, got, tc.want)
			}
			if kind, _ := validation.CheckDOB(tc.dob, testsupport.Today); kind != tc.kind {
				t.Fatalf("CheckDOB(%q) kind = %q, want %q", tc.dob, kind, tc.kind)
			}
		})
	}
}
