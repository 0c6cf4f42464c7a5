package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/radial/internal/app"
	"github.com/dori/radial/internal/model"
	"github.com/dori/radial/internal/radar"
	"github.com/dori/radial/internal/ui"
)

var (
	version = "0.1.0"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			handleAdd(os.Args[2:])
			return
		case "import":
			handleImport(os.Args[2:])
			return
		case "export":
			handleExport(os.Args[2:])
			return
		case "capacity":
			handleCapacity(os.Args[2:])
			return
		case "version":
			fmt.Printf("radial v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	themeFlag := flag.String("theme", "", "Theme name (default, nord)")
	dataDirFlag := flag.String("data-dir", "", "Data directory (default: ~/.local/share/radial)")
	flag.Parse()

	if err := runTUI(*themeFlag, *dataDirFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `radial - a circular urgency/importance task planner

Tasks render as colored dots on a disc: the quadrant encodes how
important+urgent a deadline is (★ years .. ★★★★ days), the distance
from center how much of that quadrant's time budget is left. Drag a
dot with the mouse to move its deadline.

Usage:
  radial                       Start the TUI
  radial add <task>            Quick add a task
  radial import <file|url>     Replace all tasks from a CSV export
  radial export [basename]     Write a CSV export to the current directory
  radial capacity [region max] Show or set per-region task limits
  radial version               Show version
  radial help                  Show this help

Quick Add Syntax:
  radial add "Fix the gutter @home due:friday"
  radial add "File taxes @finance due:2024-04-15 color:#e06c75"

  Project:   @name
  Tag:       tag:short
  Color:     color:#rrggbb   (default: derived from the project name)
  Deadline:  due:tomorrow due:friday due:2024-01-15 due:3w
             valid range: 1 day to 10 years out

TUI Keybindings:
  a add · enter edit · tab done · d delete · i import · e export
  +/- shift the reference date · mouse drag moves a dot's deadline
  ctrl+t theme · ? help · q quit`

	fmt.Println(help)
}

// openApp builds the application with a CLI-appropriate logger
func openApp() *app.App {
	cfg := app.DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return application
}

func handleAdd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: radial add <task>")
		fmt.Fprintln(os.Stderr, "Example: radial add \"Fix the gutter @home due:friday\"")
		os.Exit(1)
	}

	parsed := parseQuickAdd(strings.Join(args, " "))

	application := openApp()
	defer application.Close()

	deadline := parsed.deadline
	if deadline.IsZero() {
		// No due: given; default to a week out
		deadline = application.Planner.Today().AddDate(0, 0, 7)
	}

	task, err := application.Planner.Add(parsed.description, parsed.project, parsed.tag, parsed.color, deadline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating task: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created: %s\n", task.Description)
	fmt.Printf("Due: %s (%s, %s)\n",
		task.Deadline.Format("Mon, Jan 2 2006"),
		task.Region.Stars(),
		radar.CompactLabel(task.RemainingDays, task.Bucket))
	if task.Project != "" {
		fmt.Printf("Project: %s\n", task.Project)
	}
}

func handleImport(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: radial import <file|url>")
		os.Exit(1)
	}

	application := openApp()
	defer application.Close()

	source := args[0]
	var n int
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		n, err = application.Planner.ImportURL(context.Background(), source)
	} else {
		n, err = application.Planner.ImportFile(source)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d tasks from %s\n", n, source)
}

func handleExport(args []string) {
	application := openApp()
	defer application.Close()

	if len(args) > 0 {
		application.Planner.SetExportBase(args[0])
	}

	data, name, err := application.Planner.ExportCSV()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", name, err)
		os.Exit(1)
	}
	abs, _ := filepath.Abs(name)
	fmt.Printf("Exported to %s\n", abs)
}

func handleCapacity(args []string) {
	application := openApp()
	defer application.Close()

	if len(args) == 0 {
		caps := application.Planner.Capacities()
		for r := model.RegionDays; r >= model.RegionYears; r-- {
			fmt.Printf("  region %d %-4s (%s): max %d active tasks\n",
				int(r), r.Stars(), r.Bucket(), caps[r])
		}
		return
	}

	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: radial capacity [region max]")
		os.Exit(1)
	}
	region, err1 := strconv.Atoi(args[0])
	max, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Fprintln(os.Stderr, "Usage: radial capacity [region max]")
		os.Exit(1)
	}
	if err := application.Planner.SetCapacity(model.Region(region), max); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Region %d capacity set to %d\n", region, max)
}

type quickAddTask struct {
	description string
	project     string
	tag         string
	color       string
	deadline    time.Time
}

func parseQuickAdd(text string) quickAddTask {
	var task quickAddTask

	words := strings.Fields(text)
	var titleParts []string

	for _, word := range words {
		lower := strings.ToLower(word)
		switch {
		case strings.HasPrefix(word, "@"):
			task.project = strings.TrimPrefix(word, "@")

		case strings.HasPrefix(lower, "tag:"):
			task.tag = word[len("tag:"):]

		case strings.HasPrefix(lower, "color:"):
			task.color = word[len("color:"):]

		case strings.HasPrefix(lower, "due:"):
			if parsed, ok := parseNaturalDate(lower[len("due:"):]); ok {
				task.deadline = parsed
			} else {
				titleParts = append(titleParts, word)
			}

		default:
			titleParts = append(titleParts, word)
		}
	}

	task.description = strings.Join(titleParts, " ")
	return task
}

// parseNaturalDate resolves "tomorrow", weekday names, relative amounts
// like "3w", and plain dates
func parseNaturalDate(s string) (time.Time, bool) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch s {
	case "today":
		return today, true
	case "tomorrow", "tom":
		return today.AddDate(0, 0, 1), true
	case "nextweek":
		return today.AddDate(0, 0, 7), true
	case "monday", "mon":
		return nextWeekday(today, time.Monday), true
	case "tuesday", "tue":
		return nextWeekday(today, time.Tuesday), true
	case "wednesday", "wed":
		return nextWeekday(today, time.Wednesday), true
	case "thursday", "thu":
		return nextWeekday(today, time.Thursday), true
	case "friday", "fri":
		return nextWeekday(today, time.Friday), true
	case "saturday", "sat":
		return nextWeekday(today, time.Saturday), true
	case "sunday", "sun":
		return nextWeekday(today, time.Sunday), true
	}

	// Relative amounts: 3d, 2w, 6m, 1y
	if n := len(s); n > 1 {
		if amount, err := strconv.Atoi(s[:n-1]); err == nil {
			switch s[n-1] {
			case 'd':
				return today.AddDate(0, 0, amount), true
			case 'w':
				return today.AddDate(0, 0, amount*7), true
			case 'm':
				return today.AddDate(0, 0, amount*30), true
			case 'y':
				return today.AddDate(0, 0, amount*365), true
			}
		}
	}

	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"1/2/2006",
		"01/02/2006",
		"Jan 2",
		"Jan 2, 2006",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			if t.Year() == 0 {
				t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			}
			return t, true
		}
	}

	return time.Time{}, false
}

func nextWeekday(today time.Time, day time.Weekday) time.Time {
	daysUntil := int(day - today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}

func runTUI(themeName, dataDir string) error {
	cfg := app.DefaultConfig()
	if dataDir != "" {
		cfg.DataDir = dataDir
		cfg.DBPath = filepath.Join(dataDir, "radial.db")
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	p := tea.NewProgram(
		ui.NewRootModel(application, themeName),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
