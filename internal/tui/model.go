package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dirmeta/internal/domain"
	"dirmeta/internal/presentation"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseScanning Phase = iota
	PhaseDone
	PhaseError
)

type (
	ScanProgressMsg struct {
		Current int
		Total   int
		File    string
	}
	DoneMsg struct {
		Path    string
		Summary domain.Summary
	}
	ErrorMsg struct {
		Err error
	}
)

type Config struct {
	Dir string
}

// Model renders scan progress. The scan itself runs outside the program and
// reports through messages.
type Model struct {
	config      Config
	Phase       Phase
	spinner     spinner.Model
	progress    progress.Model
	scanCurrent int
	scanTotal   int
	currentFile string
	Path        string
	Summary     domain.Summary
	Err         error
	Quitting    bool
}

func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseScanning,
		spinner:  s,
		progress: p,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		case "enter":
			if m.Phase != PhaseScanning {
				return m, tea.Quit
			}
		}

	case ScanProgressMsg:
		m.scanCurrent = msg.Current
		m.scanTotal = msg.Total
		m.currentFile = msg.File
		return m, nil

	case DoneMsg:
		m.Phase = PhaseDone
		m.Path = msg.Path
		m.Summary = msg.Summary
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseScanning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// Aborted reports whether the user quit before the scan finished.
func (m Model) Aborted() bool {
	return m.Quitting && m.Phase == PhaseScanning
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseScanning:
		b.WriteString(m.renderScanning())
	case PhaseDone:
		b.WriteString(m.renderDone())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("dirmeta"),
		subtitleStyle.Render("File metadata and EXIF inventory"),
		"",
		dimStyle.Render(fmt.Sprintf("%s Directory: %s", iconFolder, shortenPath(m.config.Dir))),
	)
}

func (m Model) renderScanning() string {
	if m.scanTotal == 0 {
		return fmt.Sprintf("%s Reading directory...", m.spinner.View())
	}

	percent := float64(m.scanCurrent) / float64(m.scanTotal)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s Scanning files...\n\n", m.spinner.View()))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		countStyle.Render(fmt.Sprintf("%d/%d", m.scanCurrent, m.scanTotal)),
		dimStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))
	if m.currentFile != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, fileNameStyle.Render(m.currentFile)))
	}
	return b.String()
}

func (m Model) renderDone() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Scan Complete"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s %s\n\n",
		successStyle.Render(iconSuccess),
		successStyle.Render("File data has been written to "+filepath.Base(m.Path)),
	))

	s := m.Summary
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Files:"), statValueStyle.Render(fmt.Sprintf("%d (%s)", s.Files, presentation.FormatBytes(s.TotalBytes)))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Images:"), statValueStyle.Render(fmt.Sprintf("%d", s.Images))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Images with EXIF:"), statValueStyle.Render(fmt.Sprintf("%d", s.ImagesWithExif))))

	return b.String()
}

func (m Model) renderError() string {
	msg := "unknown error"
	if m.Err != nil {
		msg = m.Err.Error()
	}
	return errorBoxStyle.Render(fmt.Sprintf("%s %s",
		errorStyle.Render(iconError),
		errorStyle.Render("Error: "+msg),
	))
}

func (m Model) renderHelp() string {
	help := "Press Enter to exit"
	if m.Phase == PhaseScanning {
		help = "Press q to quit"
	}
	return helpStyle.Render(help)
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
