package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dori/radial/internal/model"
	"github.com/dori/radial/internal/radar"
)

// The disc is drawn on a character grid. Terminal cells are roughly
// twice as tall as wide, so one row counts as two points on the y axis
// to keep the disc visually round.
const cellAspect = 2

type dot struct {
	task model.Task
	x, y float64
}

// radarDisc returns the disc in point space plus the cell offset of the
// drawing area within the terminal, for mouse hit testing
func (m RootModel) radarDisc() (radar.Disc, int, int) {
	w, h := m.radarSize()
	disc := radar.Disc{
		CX:   float64(w) / 2,
		CY:   float64(h * cellAspect / 2),
		MaxR: math.Max(10, math.Min(float64(w)/2, float64(h*cellAspect/2))-2),
	}
	// Panel border and padding sit between the terminal origin and the
	// grid: 1 border + 1 padding horizontally, 1 header + 1 border
	// vertically
	return disc, 2, 2
}

// radarSize returns the drawing grid dimensions in cells
func (m RootModel) radarSize() (w, h int) {
	w = m.width*3/5 - 4
	h = m.height - 5
	if w < 20 {
		w = 20
	}
	if h < 10 {
		h = 10
	}
	return w, h
}

func cellToPoint(col, row int) (float64, float64) {
	return float64(col), float64(row * cellAspect)
}

// dots computes the rendered position of every task using the grouping
// lane policy
func (m RootModel) dots(disc radar.Disc) []dot {
	planner := m.app.Planner
	tasks := planner.Tasks()
	lanes := radar.GroupedLanes(tasks, planner.LaneCount)

	out := make([]dot, 0, len(tasks))
	for _, t := range tasks {
		p := radar.ClassifyClamped(t.RemainingDays)
		x, y := disc.Place(p, lanes[t.ID], planner.LaneCount(t.Region))
		out = append(out, dot{task: t, x: x, y: y})
	}
	return out
}

// dotAt finds the task dot nearest the pointer, within a small radius
func (m RootModel) dotAt(disc radar.Disc, px, py float64) (string, bool) {
	const grabRadius = 3.0
	best := ""
	bestDist := grabRadius
	for _, d := range m.dots(disc) {
		dist := math.Hypot(d.x-px, d.y-py)
		if dist <= bestDist {
			best = d.task.ID
			bestDist = dist
		}
	}
	return best, best != ""
}

func (m RootModel) viewRadar() string {
	w, h := m.radarSize()
	disc, _, _ := m.radarDisc()

	grid := make([][]string, h)
	for row := range grid {
		grid[row] = make([]string, w)
		for col := range grid[row] {
			grid[row][col] = " "
		}
	}

	m.drawGuides(grid, disc, w, h)
	m.drawRegionLabels(grid, w, h)

	tasks := m.app.Planner.Tasks()
	cursorID := ""
	if t, ok := m.taskAtCursor(tasks); ok {
		cursorID = t.ID
	}

	for _, d := range m.dots(disc) {
		col := int(math.Round(d.x))
		row := int(math.Round(d.y / cellAspect))
		if row < 0 || row >= h || col < 0 || col >= w {
			continue
		}
		glyph := "●"
		if d.task.IsFinished() {
			glyph = "◌"
		}
		if d.task.ID == cursorID || d.task.ID == m.dragID {
			glyph = "◉"
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(d.task.EffectiveColor()))
		grid[row][col] = style.Render(glyph)

		// Remaining-time label next to the highlighted dot
		if d.task.ID == cursorID {
			label := radar.CompactLabel(d.task.RemainingDays, d.task.Bucket)
			for i, r := range label {
				if col+2+i < w {
					grid[row][col+2+i] = m.styles.Subtle.Render(string(r))
				}
			}
		}
	}

	rows := make([]string, h)
	for i := range grid {
		rows[i] = strings.Join(grid[i], "")
	}
	return m.styles.Panel.Render(strings.Join(rows, "\n"))
}

// drawGuides renders the inner/outer rings and the quadrant axes
func (m RootModel) drawGuides(grid [][]string, disc radar.Disc, w, h int) {
	innerR := disc.MaxR * radar.MinRadiusFrac
	outerR := disc.MaxR * radar.MaxRadiusFrac

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			px, py := cellToPoint(col, row)
			dist := math.Hypot(px-disc.CX, py-disc.CY)
			if math.Abs(dist-innerR) < 1 || math.Abs(dist-outerR) < 1 {
				grid[row][col] = m.styles.RingGlyph.Render("·")
			}
		}
	}

	centerCol := int(math.Round(disc.CX))
	centerRow := int(math.Round(disc.CY / cellAspect))
	for row := 0; row < h; row++ {
		if centerCol >= 0 && centerCol < w {
			grid[row][centerCol] = m.styles.AxisGlyph.Render("│")
		}
	}
	if centerRow >= 0 && centerRow < h {
		for col := 0; col < w; col++ {
			grid[centerRow][col] = m.styles.AxisGlyph.Render("─")
		}
		if centerCol >= 0 && centerCol < w {
			grid[centerRow][centerCol] = m.styles.AxisGlyph.Render("┼")
		}
	}
}

// drawRegionLabels writes each region's star rating into its wedge corner.
// Screen y is flipped, so the days wedge (90-180 degrees) is top-left.
func (m RootModel) drawRegionLabels(grid [][]string, w, h int) {
	put := func(row, col int, s string, color lipgloss.Color) {
		style := lipgloss.NewStyle().Foreground(color).Bold(true)
		for i, r := range s {
			if row >= 0 && row < h && col+i >= 0 && col+i < w {
				grid[row][col+i] = style.Render(string(r))
			}
		}
	}
	put(0, 0, model.RegionDays.Stars(), m.theme.RegionDays)
	put(0, w-len([]rune(model.RegionWeeks.Stars())), model.RegionWeeks.Stars(), m.theme.RegionWeeks)
	put(h-1, 0, model.RegionMonths.Stars(), m.theme.RegionMonths)
	put(h-1, w-len([]rune(model.RegionYears.Stars())), model.RegionYears.Stars(), m.theme.RegionYears)
}

func (m RootModel) viewSidebar() string {
	w := m.width - (m.width*3/5 - 4) - 8
	if w < 24 {
		w = 24
	}
	_, h := m.radarSize()

	var b strings.Builder
	b.WriteString(m.styles.PanelTitle.Render("tasks"))
	b.WriteString("\n")

	tasks := m.app.Planner.Tasks()
	if len(tasks) == 0 {
		b.WriteString(m.styles.Subtle.Render("no tasks yet · press a to add"))
		b.WriteString("\n")
	}

	for i, t := range tasks {
		line := m.taskLine(t, w)
		switch {
		case i == m.cursor:
			line = m.styles.TaskCursor.Render("▌") + line
		default:
			line = " " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if form := m.viewForm(); form != "" {
		b.WriteString("\n")
		b.WriteString(form)
	}

	return m.styles.Panel.Width(w).Height(h).Render(b.String())
}

func (m RootModel) taskLine(t model.Task, width int) string {
	colorDot := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.EffectiveColor())).
		Render("●")

	label := fmt.Sprintf("%s %s", t.Region.Stars(), radar.CompactLabel(t.RemainingDays, t.Bucket))
	text := t.Description
	if t.Project != "" {
		text += " @" + t.Project
	}
	maxText := width - len([]rune(label)) - 8
	if maxText > 3 && len([]rune(text)) > maxText {
		text = string([]rune(text)[:maxText-1]) + "…"
	}

	style := m.styles.TaskNormal
	if t.IsFinished() {
		style = m.styles.TaskDone
	}
	return fmt.Sprintf("%s %s %s", colorDot, style.Render(text), m.styles.Subtle.Render(label))
}

func (m RootModel) viewForm() string {
	switch m.mode {
	case modeAdd, modeEdit:
		title := "add task"
		if m.mode == modeEdit {
			title = "edit task"
		}
		return strings.Join([]string{
			m.styles.PanelTitle.Render(title),
			m.styles.InputLabel.Render("what ") + m.inputs[inputDescription].View(),
			m.styles.InputLabel.Render("proj ") + m.inputs[inputProject].View(),
			m.styles.InputLabel.Render("due  ") + m.inputs[inputDue].View(),
			m.styles.Subtle.Render("tab next field · enter save · esc cancel"),
		}, "\n")

	case modeImport:
		return strings.Join([]string{
			m.styles.PanelTitle.Render("import CSV"),
			m.inputs[inputDescription].View(),
			m.styles.Subtle.Render("enter import · esc cancel"),
		}, "\n")

	case modeExport:
		return strings.Join([]string{
			m.styles.PanelTitle.Render("export CSV"),
			m.inputs[inputDescription].View(),
			m.styles.Subtle.Render("enter export · esc cancel"),
		}, "\n")

	case modeConfirmDelete:
		return m.styles.Error.Render("delete selected task? y/n")
	}
	return ""
}
