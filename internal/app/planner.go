package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dori/radial/internal/csvio"
	"github.com/dori/radial/internal/db"
	"github.com/dori/radial/internal/model"
	"github.com/dori/radial/internal/radar"
	"github.com/google/uuid"
)

// Planner owns the task list and the reference "today", and applies all
// mutations. The in-memory snapshot is the source of truth for the
// session; persistence is best-effort and failures are logged, never
// surfaced as operation errors.
type Planner struct {
	mu     sync.Mutex
	store  *db.DB
	logger *slog.Logger

	tasks      []model.Task
	today      time.Time
	caps       map[model.Region]int
	exportBase string
}

// NewPlanner loads persisted state and renormalizes it against the
// current date
func NewPlanner(store *db.DB, logger *slog.Logger) (*Planner, error) {
	p := &Planner{
		store:  store,
		logger: logger,
		today:  civilDate(time.Now()),
	}
	if store != nil {
		tasks, err := store.GetTasks()
		if err != nil {
			return nil, fmt.Errorf("failed to load tasks: %w", err)
		}
		caps, err := store.GetCapacities()
		if err != nil {
			return nil, fmt.Errorf("failed to load capacities: %w", err)
		}
		base, err := store.GetExportBase()
		if err != nil {
			return nil, fmt.Errorf("failed to load export name: %w", err)
		}
		p.tasks = radar.Renormalize(tasks, p.today)
		p.caps = caps
		p.exportBase = base
	}
	if p.caps == nil {
		p.caps = map[model.Region]int{
			model.RegionYears:  db.DefaultCapacity,
			model.RegionMonths: db.DefaultCapacity,
			model.RegionWeeks:  db.DefaultCapacity,
			model.RegionDays:   db.DefaultCapacity,
		}
	}
	return p, nil
}

// Tasks returns a copy of the current task list
func (p *Planner) Tasks() []model.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Task, len(p.tasks))
	copy(out, p.tasks)
	return out
}

// Today returns the current reference date
func (p *Planner) Today() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.today
}

// SetToday moves the reference date and renormalizes all unfinished
// tasks against it
func (p *Planner) SetToday(today time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.today = civilDate(today)
	p.tasks = radar.Renormalize(p.tasks, p.today)
	p.persistAll()
}

// Capacity returns the active-task maximum for a region
func (p *Planner) Capacity(r model.Region) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.caps[r]
}

// Capacities returns a copy of the per-region capacity map
func (p *Planner) Capacities() map[model.Region]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[model.Region]int, len(p.caps))
	for r, max := range p.caps {
		out[r] = max
	}
	return out
}

// SetCapacity updates one region's active-task maximum. Lowering it
// below the current active count only blocks future admissions; existing
// tasks stay where they are.
func (p *Planner) SetCapacity(r model.Region, max int) error {
	if !r.IsValid() {
		return fmt.Errorf("invalid region %d", int(r))
	}
	if max < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, max)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.caps[r] = max
	if p.store != nil {
		if err := p.store.SetCapacities(p.caps); err != nil {
			p.logger.Warn("failed to persist capacities", "error", err)
		}
	}
	return nil
}

// LaneCount returns the number of angular lanes in a region's wedge,
// which equals its capacity so every admitted task can own a lane
func (p *Planner) LaneCount(r model.Region) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.caps[r]
}

// Add validates and appends a new task. The deadline must classify into
// one of the four regions and the destination region must have room.
func (p *Planner) Add(description, project, tag, color string, deadline time.Time) (model.Task, error) {
	if description == "" {
		return model.Task{}, ErrEmptyDescription
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	placement, err := radar.Classify(radar.DaysUntil(p.today, deadline))
	if err != nil {
		return model.Task{}, err
	}
	if err := p.checkCapacity(placement.Region, ""); err != nil {
		return model.Task{}, err
	}

	now := time.Now()
	t := model.Task{
		ID:            uuid.New().String(),
		CreatedDate:   p.today,
		Deadline:      civilDate(deadline),
		Project:       project,
		ProjectTag:    tag,
		ProjectColor:  color,
		Description:   description,
		Region:        placement.Region,
		Bucket:        placement.Region.Bucket(),
		RemainingDays: placement.Days,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tasks := make([]model.Task, len(p.tasks), len(p.tasks)+1)
	copy(tasks, p.tasks)
	p.tasks = append(tasks, t)
	p.persistTask(t)
	return t, nil
}

// Edit updates a task's fields, revalidating the deadline and the
// destination region's capacity before anything is applied
func (p *Planner) Edit(id, description, project, tag, color string, deadline time.Time) (model.Task, error) {
	if description == "" {
		return model.Task{}, ErrEmptyDescription
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	placement, err := radar.Classify(radar.DaysUntil(p.today, deadline))
	if err != nil {
		return model.Task{}, err
	}
	if placement.Region != p.tasks[i].Region {
		if err := p.checkCapacity(placement.Region, id); err != nil {
			return model.Task{}, err
		}
	}

	tasks := make([]model.Task, len(p.tasks))
	copy(tasks, p.tasks)
	t := &tasks[i]
	t.Description = description
	t.Project = project
	t.ProjectTag = tag
	t.ProjectColor = color
	t.Deadline = civilDate(deadline)
	t.Region = placement.Region
	t.Bucket = placement.Region.Bucket()
	t.RemainingDays = placement.Days
	t.UpdatedAt = time.Now()

	p.tasks = tasks
	p.persistTask(*t)
	return *t, nil
}

// Delete removes a task
func (p *Planner) Delete(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	tasks := make([]model.Task, 0, len(p.tasks)-1)
	tasks = append(tasks, p.tasks[:i]...)
	tasks = append(tasks, p.tasks[i+1:]...)
	p.tasks = tasks

	if p.store != nil {
		if err := p.store.DeleteTask(id); err != nil {
			p.logger.Warn("failed to persist delete", "task", id, "error", err)
		}
	}
	return nil
}

// ToggleDone marks a task finished, freezing its placement, or reopens
// it and reclassifies it against the current reference date
func (p *Planner) ToggleDone(id string) (model.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	tasks := make([]model.Task, len(p.tasks))
	copy(tasks, p.tasks)
	t := &tasks[i]
	if t.FinishedAt == nil {
		now := time.Now()
		t.FinishedAt = &now
	} else {
		t.FinishedAt = nil
		placement := radar.ClassifyClamped(radar.DaysUntil(p.today, t.Deadline))
		t.Region = placement.Region
		t.Bucket = placement.Region.Bucket()
		t.RemainingDays = placement.Days
	}
	t.UpdatedAt = time.Now()

	p.tasks = tasks
	p.persistTask(*t)
	return *t, nil
}

// Drag reinterprets a pointer position as a new deadline for the task.
// Moves into a full region are rejected and the task stays put; drops in
// the center dead zone are a no-op.
func (p *Planner) Drag(id string, disc radar.Disc, x, y float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if p.tasks[i].IsFinished() {
		// Finished tasks are frozen in place
		return nil
	}

	placement, ok := disc.Locate(x, y)
	if !ok {
		return nil
	}
	if placement.Region != p.tasks[i].Region {
		if err := p.checkCapacity(placement.Region, id); err != nil {
			return err
		}
	}

	tasks := make([]model.Task, len(p.tasks))
	copy(tasks, p.tasks)
	t := &tasks[i]
	t.Deadline = p.today.AddDate(0, 0, placement.Days)
	t.Region = placement.Region
	t.Bucket = placement.Region.Bucket()
	t.RemainingDays = placement.Days
	t.UpdatedAt = time.Now()

	p.tasks = tasks
	p.persistTask(*t)
	return nil
}

// ImportCSV replaces the whole task list with the decoded contents of a
// CSV export. A failed or empty parse leaves the existing list untouched.
func (p *Planner) ImportCSV(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tasks, err := csvio.Decode(data, p.today)
	if err != nil {
		return 0, err
	}

	p.tasks = tasks
	p.persistAll()
	return len(tasks), nil
}

// ImportFile imports a CSV file from disk
func (p *Planner) ImportFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return p.ImportCSV(data)
}

// ImportURL fetches a CSV over HTTP and imports it. One-shot, no retry;
// any failure leaves the task list untouched.
func (p *Planner) ImportURL(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to fetch %s: %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}
	return p.ImportCSV(data)
}

// ExportCSV encodes the current task list and returns it with the
// conventional filename for today's export
func (p *Planner) ExportCSV() ([]byte, string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := csvio.Encode(p.tasks)
	if err != nil {
		return nil, "", err
	}
	return data, csvio.Filename(p.exportBase, time.Now()), nil
}

// SetExportBase stores the base filename used for exports
func (p *Planner) SetExportBase(base string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exportBase = base
	if p.store != nil {
		if err := p.store.SetExportBase(base); err != nil {
			p.logger.Warn("failed to persist export name", "error", err)
		}
	}
}

// checkCapacity rejects admission into a region already holding its
// maximum of active tasks. Callers hold p.mu.
func (p *Planner) checkCapacity(r model.Region, excludeID string) error {
	max := p.caps[r]
	active := 0
	for _, t := range p.tasks {
		if t.ID == excludeID || t.IsFinished() || t.Region != r {
			continue
		}
		active++
	}
	if active >= max {
		return fmt.Errorf("%w: region %d (%s) holds %d of %d active tasks",
			ErrRegionFull, int(r), r.Bucket(), active, max)
	}
	return nil
}

func (p *Planner) indexOf(id string) int {
	for i := range p.tasks {
		if p.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// persistTask writes one task through to storage, best-effort
func (p *Planner) persistTask(t model.Task) {
	if p.store == nil {
		return
	}
	if err := p.store.SaveTask(t); err != nil {
		p.logger.Warn("failed to persist task", "task", t.ID, "error", err)
	}
}

// persistAll replaces the stored task list with the snapshot, best-effort
func (p *Planner) persistAll() {
	if p.store == nil {
		return
	}
	if err := p.store.ReplaceTasks(p.tasks); err != nil {
		p.logger.Warn("failed to persist task list", "error", err)
	}
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
