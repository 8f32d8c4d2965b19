package store

import (
	"database/sql"
)

// ThresholdRepository stores classifier threshold overrides by name.
// Absent names fall back to the built-in defaults.
type ThresholdRepository struct {
	db *sql.DB
}

// Thresholds returns the threshold repository for this store.
func (s *Store) Thresholds() *ThresholdRepository {
	return &ThresholdRepository{db: s.db}
}

// Set stores a threshold override, replacing any existing value.
func (r *ThresholdRepository) Set(name string, value float64) error {
	_, err := r.db.Exec(
		`INSERT INTO thresholds (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		name, value,
	)
	return err
}

// All retrieves every threshold override as a map.
func (r *ThresholdRepository) All() (map[string]float64, error) {
	rows, err := r.db.Query(`SELECT name, value FROM thresholds`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	thresholds := make(map[string]float64)
	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		thresholds[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return thresholds, nil
}

// Delete removes a threshold override, restoring the default.
func (r *ThresholdRepository) Delete(name string) error {
	result, err := r.db.Exec(`DELETE FROM thresholds WHERE name = ?`, name)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
