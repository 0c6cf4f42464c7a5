package db

import (
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/dori/radial/internal/model"
)

// Setting keys for the named persisted slots
const (
	settingCapacities = "capacities"
	settingExportBase = "export_base"
)

// DefaultCapacity is the per-region active-task maximum used until the
// user configures one
const DefaultCapacity = 10

// GetSetting returns a setting value, or "" if unset
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetSetting stores a setting value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// GetCapacities returns the per-region active-task maxima, filling in
// defaults for regions without a stored value
func (db *DB) GetCapacities() (map[model.Region]int, error) {
	caps := map[model.Region]int{
		model.RegionYears:  DefaultCapacity,
		model.RegionMonths: DefaultCapacity,
		model.RegionWeeks:  DefaultCapacity,
		model.RegionDays:   DefaultCapacity,
	}

	raw, err := db.GetSetting(settingCapacities)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return caps, nil
	}

	var stored map[string]int
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		// Corrupt setting: keep defaults rather than failing startup
		return caps, nil
	}
	for key, max := range stored {
		n, err := strconv.Atoi(key)
		if err != nil || max < 1 {
			continue
		}
		if r := model.Region(n); r.IsValid() {
			caps[r] = max
		}
	}
	return caps, nil
}

// SetCapacities persists the per-region active-task maxima
func (db *DB) SetCapacities(caps map[model.Region]int) error {
	stored := make(map[string]int, len(caps))
	for r, max := range caps {
		stored[strconv.Itoa(int(r))] = max
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return db.SetSetting(settingCapacities, string(raw))
}

// GetExportBase returns the last-used export base filename
func (db *DB) GetExportBase() (string, error) {
	return db.GetSetting(settingExportBase)
}

// SetExportBase stores the last-used export base filename
func (db *DB) SetExportBase(base string) error {
	return db.SetSetting(settingExportBase, base)
}
