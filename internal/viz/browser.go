package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/labcalc/internal/physnum"
)

// RunSummary is one line of the browser's run list.
type RunSummary struct {
	ID      string
	Sheet   string
	Saved   time.Time
	Results int
}

// Loader fetches the rows of a saved run.
type Loader func(id string) ([]Row, error)

const (
	stateList = iota
	stateDetail
)

// Browser is a Bubble Tea model for paging through saved runs.
type Browser struct {
	runs   []RunSummary
	load   Loader
	mode   physnum.FormatMode
	theme  Theme
	state  int
	cursor int
	rows   []Row
	err    error
	width  int
}

func NewBrowser(runs []RunSummary, load Loader, mode physnum.FormatMode) Browser {
	return Browser{runs: runs, load: load, mode: mode, theme: CurrentTheme, width: 80}
}

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
	}
	return b, nil
}

func (b Browser) handleKey(msg tea.KeyMsg) (Browser, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return b, tea.Quit
	case "t":
		b.theme = nextTheme(b.theme)
		return b, nil
	}

	if b.state == stateDetail {
		if msg.String() == "esc" || msg.String() == "backspace" {
			b.state, b.rows, b.err = stateList, nil, nil
		}
		return b, nil
	}

	switch msg.String() {
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.runs)-1 {
			b.cursor++
		}
	case "enter", " ":
		if len(b.runs) == 0 {
			return b, nil
		}
		b.rows, b.err = b.load(b.runs[b.cursor].ID)
		b.state = stateDetail
	}
	return b, nil
}

func (b Browser) View() string {
	var s strings.Builder
	s.WriteString(titleStyle(b.theme).Render("labcalc runs"))
	s.WriteString("\n\n")

	if b.state == stateDetail {
		run := b.runs[b.cursor]
		if b.err != nil {
			s.WriteString(warningStyle(b.theme).Render(fmt.Sprintf("cannot load %s: %v", run.ID, b.err)))
		} else {
			s.WriteString(renderTable(b.theme, run.Sheet, b.rows, b.mode))
		}
		s.WriteString("\n\n")
		s.WriteString(mutedStyle(b.theme).Render("esc back · t theme · q quit"))
		return s.String()
	}

	if len(b.runs) == 0 {
		s.WriteString(mutedStyle(b.theme).Render("no saved runs"))
		s.WriteString("\n")
	}
	for i, r := range b.runs {
		line := fmt.Sprintf("%-20s %s  %3d results  %s", r.Sheet, r.Saved.Format("2006-01-02 15:04"), r.Results, r.ID)
		if i == b.cursor {
			s.WriteString(selectedStyle(b.theme).Render("▸ " + line))
		} else {
			s.WriteString(cellStyle(b.theme).Render("  " + line))
		}
		s.WriteString("\n")
	}
	s.WriteString("\n")
	s.WriteString(mutedStyle(b.theme).Render("j/k move · enter open · t theme · q quit"))
	return s.String()
}
