// Package csvio serializes task lists to CSV and parses them back,
// tolerating the varied column layouts of historical exports.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dori/radial/internal/model"
	"github.com/dori/radial/internal/radar"
)

// ErrEmptyImport is returned when a CSV yields no tasks at all; callers
// must leave their existing task list untouched in that case.
var ErrEmptyImport = errors.New("no tasks found in CSV")

const dateLayout = "2006-01-02"

// header is the fixed column order for exports
var header = []string{
	"id", "date", "deadline", "project", "projectTag", "projectColor",
	"task", "region", "bucket", "remainingDays", "createdAt", "finishedAt",
}

// aliases maps each canonical field to the header names accepted on
// import. Lookup is case-insensitive with spaces, dashes and underscores
// stripped, so "Due Date" and "due_date" both match "duedate".
var aliases = map[string][]string{
	"id":            {"id", "taskid", "uid", "key"},
	"date":          {"date", "created", "createddate", "start", "startdate"},
	"deadline":      {"deadline", "due", "duedate", "end", "enddate", "target", "targetdate"},
	"project":       {"project", "list", "category", "area"},
	"projectTag":    {"projecttag", "tag", "shortname"},
	"projectColor":  {"projectcolor", "color", "colour"},
	"task":          {"task", "title", "description", "text", "todo", "name"},
	"region":        {"region", "quadrant", "priority"},
	"bucket":        {"bucket", "scale", "unit", "timescale"},
	"remainingDays": {"remainingdays", "remaining", "daysleft", "days"},
	"createdAt":     {"createdat", "createdtimestamp"},
	"finishedAt":    {"finishedat", "finished", "completedat", "completed", "donedate"},
}

// dateLayouts lists the formats accepted for date cells, most common first
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"1-2-2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Encode writes the task list in the fixed column order. Colors are
// always emitted resolved, never blank.
func Encode(tasks []model.Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, t := range tasks {
		finished := ""
		if t.FinishedAt != nil {
			finished = t.FinishedAt.Format(time.RFC3339)
		}
		rec := []string{
			t.ID,
			t.CreatedDate.Format(dateLayout),
			t.Deadline.Format(dateLayout),
			t.Project,
			t.ProjectTag,
			t.EffectiveColor(),
			t.Description,
			strconv.Itoa(int(t.Region)),
			string(t.Bucket),
			strconv.Itoa(t.RemainingDays),
			t.CreatedAt.Format(time.RFC3339),
			finished,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename returns the conventional export filename for a base name and
// export date, e.g. "tasks_2024-01-01.csv".
func Filename(base string, when time.Time) string {
	if base == "" {
		base = "tasks"
	}
	return fmt.Sprintf("%s_%s.csv", base, when.Format(dateLayout))
}

// Decode parses CSV text into tasks. Columns are located by name through
// the alias table, never by position. Region, bucket and remaining days
// in the file are recomputed from the deadline against the given
// reference date; the stored values are only used when the deadline cell
// is unparseable. A parse that yields zero tasks returns ErrEmptyImport.
func Decode(data []byte, today time.Time) ([]model.Task, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	head, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyImport
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := resolveColumns(head)

	var tasks []model.Task
	rowNum := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			// Malformed row: skip it, keep going
			continue
		}
		if len(rec) < len(head) || isBlank(rec) {
			continue
		}
		tasks = append(tasks, decodeRow(rec, cols, rowNum, today))
	}

	if len(tasks) == 0 {
		return nil, ErrEmptyImport
	}
	return tasks, nil
}

// resolveColumns maps canonical field names to column indices
func resolveColumns(head []string) map[string]int {
	byName := make(map[string]int, len(head))
	for i, h := range head {
		byName[normalizeHeader(h)] = i
	}
	cols := make(map[string]int)
	for field, names := range aliases {
		for _, name := range names {
			if i, ok := byName[name]; ok {
				cols[field] = i
				break
			}
		}
	}
	return cols
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, h)
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func decodeRow(rec []string, cols map[string]int, rowNum int, today time.Time) model.Task {
	get := func(field string) string {
		i, ok := cols[field]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	t := model.Task{
		ID:           get("id"),
		Project:      get("project"),
		ProjectTag:   get("projectTag"),
		ProjectColor: get("projectColor"),
		Description:  get("task"),
	}
	if t.ID == "" {
		t.ID = fmt.Sprintf("import-%d", rowNum)
	}

	date, dateOK := parseDate(get("date"))
	if !dateOK {
		date = civil(today)
	}
	t.CreatedDate = date

	deadlineRaw := get("deadline")
	deadline, deadlineOK := parseDate(deadlineRaw)
	if deadlineRaw == "" {
		// Missing deadline defaults to the row's date
		deadline, deadlineOK = date, true
	}

	if deadlineOK {
		t.Deadline = deadline
		p := radar.ClassifyClamped(radar.DaysUntil(today, deadline))
		t.Region = p.Region
		t.Bucket = p.Region.Bucket()
		t.RemainingDays = p.Days
	} else {
		// Unparseable deadline: fall back to the file's own derived
		// fields, then to the most urgent edge
		t.Deadline = civil(today)
		t.Region, t.Bucket, t.RemainingDays = storedPlacement(get("region"), get("bucket"), get("remainingDays"))
	}

	if created, ok := parseTimestamp(get("createdAt")); ok {
		t.CreatedAt = created
	} else {
		t.CreatedAt = date
	}
	t.UpdatedAt = t.CreatedAt
	if finished, ok := parseTimestamp(get("finishedAt")); ok {
		t.FinishedAt = &finished
	}
	return t
}

// storedPlacement validates the file's own region/bucket/remainingDays,
// defaulting to region 4 / 1 day when they are unusable
func storedPlacement(regionStr, bucketStr, remainingStr string) (model.Region, model.Bucket, int) {
	region := model.RegionDays
	if n, err := strconv.Atoi(regionStr); err == nil && model.Region(n).IsValid() {
		region = model.Region(n)
	} else if r := model.Bucket(strings.ToLower(bucketStr)).Region(); r.IsValid() {
		region = r
	}

	min, max := region.DayRange()
	remaining := min
	if n, err := strconv.Atoi(remainingStr); err == nil {
		remaining = n
		if remaining < min {
			remaining = min
		}
		if remaining > max {
			remaining = max
		}
	}
	return region, region.Bucket(), remaining
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civil(t), true
		}
	}
	return time.Time{}, false
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return parseDate(s)
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
