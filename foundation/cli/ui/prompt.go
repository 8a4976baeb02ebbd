// File: prompt.go
// Title: Interactive Prompter
// Description: Text input and confirmation prompts built on bubbletea and the
//              bubbles text input. Prompts fail fast when the environment is
//              not interactive.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation

package ui

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	kiterror "github.com/msto63/cmdkit/foundation/core/error"
	kitstringx "github.com/msto63/cmdkit/foundation/utils/stringx"
)

// Prompter asks the user for input
type Prompter struct {
	env Environment
	in  io.Reader
	out io.Writer
}

// NewPrompter creates a prompter. Nil in or out use the terminal.
func NewPrompter(env Environment, in io.Reader, out io.Writer) *Prompter {
	return &Prompter{env: env, in: in, out: out}
}

// Input asks for a line of text. An empty answer returns def.
func (p *Prompter) Input(ctx context.Context, label, def string) (string, error) {
	if !p.env.Interactive() {
		return "", kiterror.NonInteractive("prompt " + label)
	}

	m, err := p.run(ctx, newPromptModel(label, def))
	if err != nil {
		return "", err
	}
	return kitstringx.FirstNonBlank(m.value(), def), nil
}

// Confirm asks a yes/no question. An empty answer returns def.
func (p *Prompter) Confirm(ctx context.Context, label string, def bool) (bool, error) {
	if !p.env.Interactive() {
		return false, kiterror.NonInteractive("confirm " + label)
	}

	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	m, err := p.run(ctx, newPromptModel(label+" ("+hint+")", ""))
	if err != nil {
		return false, err
	}
	return parseConfirm(m.value(), def), nil
}

func (p *Prompter) run(ctx context.Context, model promptModel) (promptModel, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.in != nil {
		opts = append(opts, tea.WithInput(p.in))
	}
	if p.out != nil {
		opts = append(opts, tea.WithOutput(p.out))
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return model, kiterror.Wrap(ctx.Err(), "prompt interrupted").
				WithCode(kiterror.CodeCanceled).
				WithOperation("ui.Prompt")
		}
		return model, kiterror.Wrap(err, "prompt failed").
			WithCode(kiterror.CodeInternal).
			WithOperation("ui.Prompt")
	}

	m := final.(promptModel)
	if m.canceled {
		return m, kiterror.New("prompt canceled").
			WithCode(kiterror.CodeCanceled).
			WithOperation("ui.Prompt")
	}
	return m, nil
}

func parseConfirm(answer string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return def
	case "y", "yes", "j", "ja", "true", "1":
		return true
	default:
		return false
	}
}

// promptModel is a single-line question
type promptModel struct {
	label    string
	input    textinput.Model
	done     bool
	canceled bool
}

func newPromptModel(label, placeholder string) promptModel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = placeholder
	ti.Focus()
	return promptModel{label: label, input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.canceled {
		return PromptStyle.Render(m.label) + " " + m.value() + "\n"
	}
	return PromptStyle.Render(m.label) + "\n" + m.input.View() + "\n"
}

func (m promptModel) value() string {
	return strings.TrimSpace(m.input.Value())
}
