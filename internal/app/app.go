package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdrill/internal/router"
	"github.com/abhisek/examdrill/internal/screen"
	"github.com/abhisek/examdrill/internal/screens/exam"
	"github.com/abhisek/examdrill/internal/screens/home"
	"github.com/abhisek/examdrill/internal/store"
	"github.com/abhisek/examdrill/internal/ui/layout"
)

// Options configures Run.
type Options struct {
	Deps *screen.Deps

	// Category starts a quiz right away, on top of the home screen.
	// SubTopic narrows it.
	Category string
	SubTopic string

	// LogPath receives log output while the TUI owns the terminal. Empty
	// means $EXAMDRILL_LOG, then examdrill.log in the data directory.
	LogPath string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	init   tea.Cmd
	width  int
	height int
}

// newAppModel creates the model with the home screen at the root.
func newAppModel(opts Options) AppModel {
	root := home.New(opts.Deps)
	m := AppModel{router: router.New(root)}

	cmds := []tea.Cmd{root.Init()}
	if opts.Category != "" {
		cmds = append(cmds, m.router.Push(exam.New(opts.Deps, opts.Category, opts.SubTopic)))
	}
	m.init = tea.Batch(cmds...)
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.init
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptsBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Back
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// logPath resolves where log output goes while the TUI runs.
func logPath(opts Options) (string, error) {
	if opts.LogPath != "" {
		return opts.LogPath, nil
	}
	if p := os.Getenv("EXAMDRILL_LOG"); p != "" {
		return p, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "examdrill.log"), nil
}

// redirectLog sends log output to the log file so it does not corrupt the
// terminal. Logging is discarded when no file can be opened.
func redirectLog(opts Options) func() {
	path, err := logPath(opts)
	if err == nil {
		err = store.EnsureDir(path)
	}
	if err == nil {
		if f, err := tea.LogToFile(path, "examdrill"); err == nil {
			return func() { f.Close() }
		}
	}
	log.SetOutput(io.Discard)
	return func() {}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	closeLog := redirectLog(opts)
	defer closeLog()

	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
