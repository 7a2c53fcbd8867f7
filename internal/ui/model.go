package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nconklindev/xlcombine/internal/converter"
	"github.com/nconklindev/xlcombine/internal/types"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned by Model.Err when the user quit before the run
// finished.
var ErrInterrupted = errors.New("interrupted before all files were combined")

type state int

const (
	stateProcessing state = iota
	stateComplete
	stateError
)

type Model struct {
	state        state
	opts         converter.Options
	spinner      spinner.Model
	progress     progress.Model
	current      types.Progress
	result       *types.CombineResult
	err          error
	progressChan chan types.Progress
	resultChan   chan combineResultMsg
}

type combineResultMsg struct {
	result *types.CombineResult
	err    error
}

type combineCompleteMsg struct {
	result *types.CombineResult
	err    error
}

type progressMsg types.Progress

type waitForProgressMsg struct{}

// NewModel prepares a progress view for a combine run with opts. The run
// starts when the program calls Init.
func NewModel(opts converter.Options) Model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(SpinnerStyle))
	prog := progress.New(progress.WithGradient("#FF8C42", "#FF9F5A"))

	progressChan := make(chan types.Progress, 100)
	opts.Progress = progressChan

	return Model{
		state:        stateProcessing,
		opts:         opts,
		spinner:      s,
		progress:     prog,
		progressChan: progressChan,
		resultChan:   make(chan combineResultMsg, 1),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startCombine())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = max(msg.Width-12, 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == stateProcessing {
				m.err = ErrInterrupted
				m.state = stateError
			}
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.state != stateProcessing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		if m.state == stateProcessing {
			m.current = types.Progress(msg)
			cmd := m.progress.SetPercent(m.current.Fraction())
			return m, tea.Batch(cmd, waitForProgress(m.progressChan, m.resultChan))
		}
		return m, nil

	case waitForProgressMsg:
		return m, waitForProgress(m.progressChan, m.resultChan)

	case combineCompleteMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, tea.Quit
		}
		m.result = msg.result
		m.state = stateComplete
		return m, tea.Quit
	}

	return m, nil
}

// startCombine runs the combine in its own goroutine so the view keeps
// rendering. Progress updates arrive on progressChan and the final result on
// resultChan, after which both channels are closed.
func (m Model) startCombine() tea.Cmd {
	opts := m.opts
	progressChan := m.progressChan
	resultChan := m.resultChan

	return func() tea.Msg {
		go func() {
			result, err := converter.Combine(opts)

			resultChan <- combineResultMsg{result: result, err: err}

			close(progressChan)
			close(resultChan)
		}()

		return waitForProgressMsg{}
	}
}

func waitForProgress(progressChan chan types.Progress, resultChan chan combineResultMsg) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
			// Progress channel closed, check result
			res, ok := <-resultChan
			if ok {
				return combineCompleteMsg(res)
			}
			return nil
		}

		return progressMsg(p)
	}
}

// Result returns the finished run, or nil if it failed or was interrupted.
func (m Model) Result() *types.CombineResult {
	return m.result
}

func (m Model) Err() error {
	return m.err
}

// View renders only while the run is in flight; the final report is printed
// by the caller once the program exits.
func (m Model) View() string {
	if m.state != stateProcessing {
		return ""
	}

	var s strings.Builder

	s.WriteString(TitleStyle.Render("Combining spreadsheets"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("Directory: %s", m.opts.Dir)))
	s.WriteString("\n\n")

	status := "Discovering files..."
	if m.current.Total > 0 {
		status = fmt.Sprintf("Converted %s (%d/%d)", m.current.File, m.current.Done, m.current.Total)
	}
	s.WriteString(m.spinner.View() + " " + status)
	s.WriteString("\n\n")
	s.WriteString(m.progress.View())
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return BoxStyle.Render(s.String())
}
