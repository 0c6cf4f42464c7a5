package ui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/radial/internal/app"
	"github.com/dori/radial/internal/model"
	"github.com/dori/radial/internal/ui/theme"
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeEdit
	modeImport
	modeExport
	modeConfirmDelete
)

// form input indices for add/edit mode
const (
	inputDescription = 0
	inputProject     = 1
	inputDue         = 2
)

// RootModel is the main application model
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	theme  theme.Theme
	styles theme.Styles

	width  int
	height int

	cursor int
	mode   mode

	inputs   []textinput.Model
	focusIdx int
	editID   string

	// Mouse-captured task during a drag, empty when none
	dragID string

	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App, themeName string) RootModel {
	h := help.New()
	h.ShowAll = false

	th := theme.ByName(themeName)

	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 120
	}
	inputs[inputDescription].Placeholder = "task description"
	inputs[inputProject].Placeholder = "project (optional)"
	inputs[inputDue].Placeholder = "due: 2024-01-15, 3d, 2w, 6m, 1y"

	return RootModel{
		app:    application,
		keys:   DefaultKeyMap(),
		help:   h,
		theme:  th,
		styles: theme.NewStyles(th),
		inputs: inputs,
	}
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		if m.mode == modeNormal {
			return m.updateMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		if m.mode == modeNormal {
			return m.updateNormal(msg)
		}
		return m.updateInput(msg)
	}
	return m, nil
}

func (m RootModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.app.Planner.Tasks()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.ThemeCycle):
		if m.theme.Name == "nord" {
			m.theme = theme.Default()
		} else {
			m.theme = theme.Nord()
		}
		m.styles = theme.NewStyles(m.theme)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.TodayBack):
		m.app.Planner.SetToday(m.app.Planner.Today().AddDate(0, 0, -1))

	case key.Matches(msg, m.keys.TodayFwd):
		m.app.Planner.SetToday(m.app.Planner.Today().AddDate(0, 0, 1))

	case key.Matches(msg, m.keys.Add):
		m.enterForm(modeAdd, "", "", "", "")
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.taskAtCursor(tasks); ok {
			m.enterForm(modeEdit, t.ID, t.Description, t.Project, t.Deadline.Format("2006-01-02"))
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.taskAtCursor(tasks); ok {
			m.mode = modeConfirmDelete
		}

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.taskAtCursor(tasks); ok {
			if _, err := m.app.Planner.ToggleDone(t.ID); err != nil {
				m.errorMsg = err.Error()
			}
		}

	case key.Matches(msg, m.keys.Import):
		m.mode = modeImport
		m.resetInput(inputDescription, "", "path or URL of a CSV export")
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Export):
		m.mode = modeExport
		m.resetInput(inputDescription, "", "export base name (default: tasks)")
		return m, textinput.Blink
	}

	return m, nil
}

func (m RootModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, even while typing
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.mode == modeConfirmDelete {
		switch msg.String() {
		case "y", "enter":
			tasks := m.app.Planner.Tasks()
			if t, ok := m.taskAtCursor(tasks); ok {
				if err := m.app.Planner.Delete(t.ID); err != nil {
					m.errorMsg = err.Error()
				} else {
					m.statusMsg = "deleted"
					if m.cursor > 0 {
						m.cursor--
					}
				}
			}
		}
		m.mode = modeNormal
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeNormal
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.submitForm()

	case msg.String() == "tab" && (m.mode == modeAdd || m.mode == modeEdit):
		m.inputs[m.focusIdx].Blur()
		m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
		m.inputs[m.focusIdx].Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	return m, cmd
}

func (m RootModel) submitForm() (tea.Model, tea.Cmd) {
	planner := m.app.Planner

	switch m.mode {
	case modeAdd, modeEdit:
		description := strings.TrimSpace(m.inputs[inputDescription].Value())
		project := strings.TrimSpace(m.inputs[inputProject].Value())
		due, err := parseDueInput(m.inputs[inputDue].Value(), planner.Today())
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}

		if m.mode == modeAdd {
			_, err = planner.Add(description, project, "", "", due)
		} else {
			_, err = planner.Edit(m.editID, description, project, "", "", due)
		}
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.statusMsg = "saved"

	case modeImport:
		source := strings.TrimSpace(m.inputs[inputDescription].Value())
		var n int
		var err error
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			n, err = planner.ImportURL(context.Background(), source)
		} else {
			n, err = planner.ImportFile(source)
		}
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("imported %d tasks", n)
		m.cursor = 0

	case modeExport:
		if base := strings.TrimSpace(m.inputs[inputDescription].Value()); base != "" {
			planner.SetExportBase(base)
		}
		data, name, err := planner.ExportCSV()
		if err == nil {
			err = os.WriteFile(name, data, 0644)
		}
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.statusMsg = "exported to " + name
	}

	m.mode = modeNormal
	m.errorMsg = ""
	return m, nil
}

func (m RootModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	disc, offX, offY := m.radarDisc()
	px, py := cellToPoint(msg.X-offX, msg.Y-offY)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if id, ok := m.dotAt(disc, px, py); ok {
			m.dragID = id
			m.errorMsg = ""
		}

	case tea.MouseActionMotion:
		if m.dragID != "" {
			if err := m.app.Planner.Drag(m.dragID, disc, px, py); err != nil {
				m.errorMsg = err.Error()
			} else {
				m.errorMsg = ""
			}
		}

	case tea.MouseActionRelease:
		m.dragID = ""
	}

	return m, nil
}

func (m *RootModel) enterForm(target mode, id, description, project, due string) {
	m.mode = target
	m.editID = id
	m.inputs[inputDescription].SetValue(description)
	m.inputs[inputProject].SetValue(project)
	m.inputs[inputDue].SetValue(due)
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focusIdx = inputDescription
	m.inputs[inputDescription].Focus()
	m.errorMsg = ""
}

func (m *RootModel) resetInput(idx int, value, placeholder string) {
	m.inputs[idx].SetValue(value)
	m.inputs[idx].Placeholder = placeholder
	m.focusIdx = idx
	m.inputs[idx].Focus()
	m.errorMsg = ""
}

func (m RootModel) taskAtCursor(tasks []model.Task) (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.cursor], true
}

// parseDueInput accepts an absolute date or a relative amount like
// "3d", "2w", "6m", "1y" or a bare day count
func parseDueInput(s string, today time.Time) (time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return time.Time{}, fmt.Errorf("a deadline is required (1 day to 10 years out)")
	}

	for _, layout := range []string{"2006-01-02", "2006/01/02", "1/2/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	unitDays := 1
	num := s
	switch {
	case strings.HasSuffix(s, "d"):
		num = strings.TrimSuffix(s, "d")
	case strings.HasSuffix(s, "w"):
		num, unitDays = strings.TrimSuffix(s, "w"), 7
	case strings.HasSuffix(s, "m"):
		num, unitDays = strings.TrimSuffix(s, "m"), 30
	case strings.HasSuffix(s, "y"):
		num, unitDays = strings.TrimSuffix(s, "y"), 365
	}
	if n, err := strconv.Atoi(num); err == nil {
		return today.AddDate(0, 0, n*unitDays), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized deadline %q", s)
}

// View renders the application
func (m RootModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	header := m.viewHeader()
	content := lipgloss.JoinHorizontal(lipgloss.Top, m.viewRadar(), m.viewSidebar())
	footer := m.viewFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m RootModel) viewHeader() string {
	today := m.app.Planner.Today().Format("Mon, Jan 2 2006")
	title := m.styles.Header.Render("radial")
	date := m.styles.Subtle.Render("today: " + today + "  (+/- to shift)")
	return lipgloss.JoinHorizontal(lipgloss.Center, title, date)
}

func (m RootModel) viewFooter() string {
	line := m.help.View(m.keys)
	switch {
	case m.errorMsg != "":
		line = m.styles.Error.Render(m.errorMsg)
	case m.statusMsg != "":
		line = m.styles.Status.Render(m.statusMsg)
	}
	return m.styles.Footer.Render(line)
}
