package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/session"
	"github.com/goliatone/go-regform/pkg/testsupport"
	"github.com/goliatone/go-regform/pkg/validation"
)

type stubDriver struct {
	texts        []string
	choices      []string
	confirm      []bool
	secrets      []string
	infoMessages []string
	textPos      int
	choicePos    int
	confirmPos   int
	secretPos    int
	prompts      []string
	choiceCfgs   []ChoicePrompt
}

func (s *stubDriver) Text(_ context.Context, p TextPrompt) (string, error) {
	s.prompts = append(s.prompts, p.Message)
	if s.textPos >= len(s.texts) {
		return "", errors.New("no text scripted")
	}
	val := s.texts[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Secret(_ context.Context, p SecretPrompt) (string, error) {
	s.prompts = append(s.prompts, p.Message)
	if s.secretPos >= len(s.secrets) {
		return "", errors.New("no secret scripted")
	}
	val := s.secrets[s.secretPos]
	s.secretPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, p ConfirmPrompt) (bool, error) {
	s.prompts = append(s.prompts, p.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Choose(_ context.Context, p ChoicePrompt) (string, error) {
	s.prompts = append(s.prompts, p.Message)
	s.choiceCfgs = append(s.choiceCfgs, p)
	if s.choicePos >= len(s.choices) {
		return "", errors.New("no choice scripted")
	}
	val := s.choices[s.choicePos]
	s.choicePos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

const godslayerLabel = "Godslayer Combat Conditioning (Pro)"

func newTestSession() *session.Session {
	return session.New(testsupport.Catalog(),
		session.WithEngine(validation.NewEngine(validation.WithClock(testsupport.Clock()))),
	)
}

func TestRun_SuccessOnFirstAttempt(t *testing.T) {
	driver := &stubDriver{
		// firstName, lastName, dob, email
		texts:   []string{"Kratos", "Of Sparta", "1990-03-21", "kratos@olympus.gr"},
		secrets: []string{"Godmode9", "Godmode9"},
		choices: []string{godslayerLabel, "Demigod"},
		confirm: []bool{true},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	s := newTestSession()
	out, err := r.Run(context.Background(), s)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !out.Success || out.Status != model.StatusValid {
		t.Fatalf("expected success, got %#v", out)
	}
	if got := out.Summary[4].Value; got != "Godslayer Combat Conditioning (Pro)" {
		t.Fatalf("unexpected program row %q", got)
	}
	wantPrompts := []string{
		"First Name", "Last Name", "Date of Birth", "Program",
		"Password", "Confirm Password", "Email", "Gender", physicsText,
	}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 1 || !strings.Contains(driver.infoMessages[0], render.BannerSuccess) {
		t.Fatalf("expected success report, got %#v", driver.infoMessages)
	}
}

func TestRun_RepromptsRejectedFields(t *testing.T) {
	driver := &stubDriver{
		texts: []string{
			"Kratos", "Of Sparta", "1990-03-21", "kratos@olympus",
			// retry: email only
			"kratos@olympus.gr",
		},
		secrets: []string{
			"Godmode9", "Godmode8",
			// retry: both password prompts after a mismatch
			"Godmode9", "Godmode9",
		},
		choices: []string{godslayerLabel, "Demigod"},
		confirm: []bool{true},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Run(context.Background(), newTestSession())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected success after retry, got %#v", out.Errors)
	}

	wantRetry := []string{"Password", "Confirm Password", "Email"}
	if diff := cmp.Diff(wantRetry, driver.prompts[9:]); diff != "" {
		t.Fatalf("retry prompts mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("expected two reports, got %d", len(driver.infoMessages))
	}
	failure := driver.infoMessages[0]
	for _, want := range []string{render.BannerFailure, "Email: " + validation.MessageInvalidEmail, "Confirm Password: " + validation.MessagePasswordMismatch} {
		if !strings.Contains(failure, want) {
			t.Fatalf("failure report missing %q:\n%s", want, failure)
		}
	}
}

func TestRun_ProgramChoiceMapsLabelToValue(t *testing.T) {
	driver := &stubDriver{
		texts:   []string{"Kratos", "Of Sparta", "1990-03-21", "kratos@olympus.gr"},
		secrets: []string{"Godmode9", "Godmode9"},
		// an answer outside the options leaves program empty, then the retry
		// offers the catalog labels again
		choices: []string{"Olympian Pilates", "Demigod", godslayerLabel},
		confirm: []bool{true},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	s := newTestSession()
	out, err := r.Run(context.Background(), s)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := s.State().Value(model.FieldProgram); got != "godslayer" {
		t.Fatalf("expected program value, got %q", got)
	}
	if !out.Success {
		t.Fatalf("expected success after retry, got %#v", out.Errors)
	}

	first := driver.choiceCfgs[0]
	if diff := cmp.Diff([]string{
		"King Kong Dad Protocol (Beginner)",
		"Spartan Strength (Intermediate)",
		godslayerLabel,
		"Legend Protocol (Special)",
		"Forced Motivation Plan (Special)",
	}, first.Options); diff != "" {
		t.Fatalf("program options mismatch (-want +got):\n%s", diff)
	}
	if first.Default != "" {
		t.Fatalf("expected no default on a pristine form, got %q", first.Default)
	}
	if gender := driver.choiceCfgs[1]; gender.Default != "" || len(gender.Options) != 3 {
		t.Fatalf("unexpected gender prompt %#v", gender)
	}
}

func TestRun_AttemptsExhausted(t *testing.T) {
	driver := &stubDriver{
		texts:   []string{"Kratos", "Of Sparta", "1990-03-21", "kratos@olympus.gr"},
		secrets: []string{"Godmode9", "Godmode9"},
		choices: []string{godslayerLabel, "Demigod"},
		confirm: []bool{false},
	}
	r, err := New(WithPromptDriver(driver), WithMaxAttempts(1))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Run(context.Background(), newTestSession())
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("expected exhausted error, got %v", err)
	}
	if out.Status != model.StatusInvalid || len(out.Errors) != 1 || out.Errors[0].Field != model.FieldPhysics {
		t.Fatalf("unexpected outcome %#v", out)
	}
}

func TestRun_DriverErrorStops(t *testing.T) {
	driver := &stubDriver{}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Run(context.Background(), newTestSession()); err == nil {
		t.Fatalf("expected driver error")
	}
}

func TestRender_JSON(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat(OutputFormatJSON))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if r.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}

	state := testsupport.ValidState(t, nil)
	state.RecordPass(nil)
	view := render.NewView(state, testsupport.Catalog(), model.Banner{Message: render.BannerSuccess, Tone: model.ToneSuccess}, testsupport.Today)

	out, err := r.Render(context.Background(), view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var decoded render.View
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(view.Summary, decoded.Summary); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(string(out), "Godmode9") {
		t.Fatalf("password leaked into output")
	}
}

func TestRender_PrettyTheme(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}), WithTheme(Theme{ErrorPrefix: "! ", SuccessPrefix: "* "}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	view := render.View{
		Banner: model.Banner{Message: render.BannerFailure, Tone: model.ToneError},
		Errors: map[string][]string{
			"email":     {validation.MessageInvalidEmail},
			"firstName": {validation.MessageRequired},
		},
	}
	out, err := r.Render(context.Background(), view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "! " + render.BannerFailure + "\n" +
		"! First Name: " + validation.MessageRequired + "\n" +
		"! Email: " + validation.MessageInvalidEmail + "\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}
