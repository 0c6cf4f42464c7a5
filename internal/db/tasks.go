package db

import (
	"database/sql"
	"time"

	"github.com/dori/radial/internal/model"
)

const taskColumns = `id, created_date, deadline, project, project_tag, project_color,
	       description, region, bucket, remaining_days, finished_at,
	       created_at, updated_at`

// GetTasks returns all tasks, oldest first
func (db *DB) GetTasks() ([]model.Task, error) {
	rows, err := db.Query(`
		SELECT ` + taskColumns + `
		FROM tasks
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask returns a single task by ID, or nil if it does not exist
func (db *DB) GetTask(id string) (*model.Task, error) {
	rows, err := db.Query(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	t, err := scanTask(rows)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveTask inserts or updates a task
func (db *DB) SaveTask(t model.Task) error {
	_, err := db.Exec(`
		INSERT INTO tasks (id, created_date, deadline, project, project_tag, project_color,
		                   description, region, bucket, remaining_days, finished_at,
		                   created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_date = excluded.created_date,
			deadline = excluded.deadline,
			project = excluded.project,
			project_tag = excluded.project_tag,
			project_color = excluded.project_color,
			description = excluded.description,
			region = excluded.region,
			bucket = excluded.bucket,
			remaining_days = excluded.remaining_days,
			finished_at = excluded.finished_at,
			updated_at = excluded.updated_at
	`, t.ID, t.CreatedDate, t.Deadline, t.Project, t.ProjectTag, t.ProjectColor,
		t.Description, int(t.Region), string(t.Bucket), t.RemainingDays, nullTime(t.FinishedAt),
		t.CreatedAt, t.UpdatedAt)
	return err
}

// DeleteTask removes a task by ID
func (db *DB) DeleteTask(id string) error {
	_, err := db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	return err
}

// ReplaceTasks atomically swaps the whole task list, used by CSV import
func (db *DB) ReplaceTasks(tasks []model.Task) error {
	return db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
			return err
		}
		for _, t := range tasks {
			_, err := tx.Exec(`
				INSERT INTO tasks (id, created_date, deadline, project, project_tag, project_color,
				                   description, region, bucket, remaining_days, finished_at,
				                   created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, t.ID, t.CreatedDate, t.Deadline, t.Project, t.ProjectTag, t.ProjectColor,
				t.Description, int(t.Region), string(t.Bucket), t.RemainingDays, nullTime(t.FinishedAt),
				t.CreatedAt, t.UpdatedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var t model.Task
	var region int
	var bucket string
	var finished sql.NullTime
	err := row.Scan(
		&t.ID, &t.CreatedDate, &t.Deadline, &t.Project, &t.ProjectTag, &t.ProjectColor,
		&t.Description, &region, &bucket, &t.RemainingDays, &finished,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}
	t.Region = model.Region(region)
	t.Bucket = model.Bucket(bucket)
	if finished.Valid {
		ts := finished.Time
		t.FinishedAt = &ts
	}
	return t, nil
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
