// File: progress.go
// Title: Progress Indicator
// Description: Spinner driven by a background bubbletea program, with plain
//              status lines when the output is not an interactive terminal.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation

package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// ProgressFactory creates a progress indicator
type ProgressFactory func() *Progress

// Progress reports the state of a running task
type Progress struct {
	mu       sync.Mutex
	out      io.Writer
	animated bool
	program  *tea.Program
	done     chan struct{}
	running  bool
}

// NewProgress creates a progress indicator writing to out. It animates only
// when env is interactive and out is a terminal.
func NewProgress(env Environment, out io.Writer) *Progress {
	if out == nil {
		out = os.Stderr
	}
	return &Progress{
		out:      out,
		animated: env.Interactive() && isTerminal(out),
	}
}

// NewProgressFactory returns a factory bound to env and out
func NewProgressFactory(env Environment, out io.Writer) ProgressFactory {
	return func() *Progress { return NewProgress(env, out) }
}

// Animated reports whether the indicator draws a spinner
func (p *Progress) Animated() bool {
	return p.animated
}

// Start shows title as the current task
func (p *Progress) Start(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		p.update(title)
		return
	}
	p.running = true

	if !p.animated {
		fmt.Fprintf(p.out, "• %s ...\n", title)
		return
	}

	p.done = make(chan struct{})
	p.program = tea.NewProgram(newSpinnerModel(title), tea.WithOutput(p.out), tea.WithInput(nil))
	go func() {
		defer close(p.done)
		_, _ = p.program.Run()
	}()
}

// Update replaces the title of the running task
func (p *Progress) Update(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		p.update(title)
	}
}

func (p *Progress) update(title string) {
	if p.animated {
		p.program.Send(titleMsg(title))
		return
	}
	fmt.Fprintf(p.out, "• %s\n", title)
}

// Succeed stops the indicator with a success line
func (p *Progress) Succeed(msg string) {
	p.stop(Success(msg))
}

// Fail stops the indicator with a failure line
func (p *Progress) Fail(msg string) {
	p.stop(Failure(msg))
}

func (p *Progress) stop(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running && p.animated {
		p.program.Send(stopMsg{})
		<-p.done
		p.program = nil
	}
	p.running = false
	fmt.Fprintln(p.out, line)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type titleMsg string

type stopMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	title   string
	stopped bool
}

func newSpinnerModel(title string) spinnerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = TitleStyle
	return spinnerModel{spinner: sp, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case titleMsg:
		m.title = string(msg)
		return m, nil
	case stopMsg:
		m.stopped = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.stopped {
		return ""
	}
	return m.spinner.View() + " " + m.title
}
