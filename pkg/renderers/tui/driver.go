package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// TextPrompt asks for a free-form value. Default prefills the answer.
type TextPrompt struct {
	Message string
	Default string
	Help    string
}

// SecretPrompt asks for a masked value. Secrets are never prefilled.
type SecretPrompt struct {
	Message string
	Help    string
}

// ConfirmPrompt asks a yes/no question.
type ConfirmPrompt struct {
	Message string
	Default bool
}

// ChoicePrompt asks for one of Options. Default is ignored unless it is one
// of the options.
type ChoicePrompt struct {
	Message  string
	Options  []string
	Default  string
	PageSize int
}

// PromptDriver is the terminal seam the registration loop talks to.
type PromptDriver interface {
	Text(ctx context.Context, p TextPrompt) (string, error)
	Secret(ctx context.Context, p SecretPrompt) (string, error)
	Confirm(ctx context.Context, p ConfirmPrompt) (bool, error)
	Choose(ctx context.Context, p ChoicePrompt) (string, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

func newSurveyDriver() PromptDriver {
	return &surveyDriver{out: os.Stdout}
}

func (d *surveyDriver) Text(ctx context.Context, p TextPrompt) (string, error) {
	var answer string
	err := ask(ctx, &survey.Input{Message: p.Message, Default: p.Default, Help: p.Help}, &answer)
	return answer, err
}

func (d *surveyDriver) Secret(ctx context.Context, p SecretPrompt) (string, error) {
	var answer string
	err := ask(ctx, &survey.Password{Message: p.Message, Help: p.Help}, &answer)
	return answer, err
}

func (d *surveyDriver) Confirm(ctx context.Context, p ConfirmPrompt) (bool, error) {
	var answer bool
	err := ask(ctx, &survey.Confirm{Message: p.Message, Default: p.Default}, &answer)
	return answer, err
}

func (d *surveyDriver) Choose(ctx context.Context, p ChoicePrompt) (string, error) {
	prompt := &survey.Select{Message: p.Message, Options: p.Options}
	if p.PageSize > 0 {
		prompt.PageSize = p.PageSize
	}
	if contains(p.Options, p.Default) {
		prompt.Default = p.Default
	}
	var answer string
	err := ask(ctx, prompt, &answer)
	return answer, err
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// ask runs one survey prompt, mapping Ctrl-C onto ErrAborted.
func ask(ctx context.Context, prompt survey.Prompt, answer any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := survey.AskOne(prompt, answer); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return ErrAborted
		}
		return err
	}
	return nil
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
