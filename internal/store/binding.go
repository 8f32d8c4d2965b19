package store

import (
	"database/sql"
	"errors"
	"time"
)

// Binding represents a gesture-to-action binding stored in the database.
// Kind is one of keyboard, mouse or serial; Command is the key combo,
// mouse command or transport payload.
type Binding struct {
	ID        string
	Gesture   string
	Kind      string
	Command   string
	Amount    int
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BindingRepository provides CRUD operations for bindings.
type BindingRepository struct {
	db *sql.DB
}

// Bindings returns the binding repository for this store.
func (s *Store) Bindings() *BindingRepository {
	return &BindingRepository{db: s.db}
}

// Create inserts a new binding into the database.
func (r *BindingRepository) Create(b *Binding) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO bindings (id, gesture, kind, command, amount, enabled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Gesture, b.Kind, b.Command, b.Amount, b.Enabled, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

// GetByID retrieves a binding by its ID.
func (r *BindingRepository) GetByID(id string) (*Binding, error) {
	return r.get(`SELECT id, gesture, kind, command, amount, enabled, created_at, updated_at
		 FROM bindings WHERE id = ?`, id)
}

// GetByGesture retrieves the binding for a gesture label.
func (r *BindingRepository) GetByGesture(gesture string) (*Binding, error) {
	return r.get(`SELECT id, gesture, kind, command, amount, enabled, created_at, updated_at
		 FROM bindings WHERE gesture = ?`, gesture)
}

func (r *BindingRepository) get(query string, arg any) (*Binding, error) {
	b := &Binding{}
	var enabled int

	err := r.db.QueryRow(query, arg).Scan(
		&b.ID, &b.Gesture, &b.Kind, &b.Command, &b.Amount, &enabled, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b.Enabled = enabled != 0
	return b, nil
}

// List retrieves all bindings ordered by gesture label.
func (r *BindingRepository) List() ([]*Binding, error) {
	rows, err := r.db.Query(
		`SELECT id, gesture, kind, command, amount, enabled, created_at, updated_at
		 FROM bindings ORDER BY gesture`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bindings []*Binding
	for rows.Next() {
		b := &Binding{}
		var enabled int

		err := rows.Scan(&b.ID, &b.Gesture, &b.Kind, &b.Command, &b.Amount, &enabled, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, err
		}

		b.Enabled = enabled != 0
		bindings = append(bindings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bindings, nil
}

// Update updates an existing binding in the database.
func (r *BindingRepository) Update(b *Binding) error {
	b.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE bindings SET gesture = ?, kind = ?, command = ?, amount = ?, enabled = ?, updated_at = ?
		 WHERE id = ?`,
		b.Gesture, b.Kind, b.Command, b.Amount, b.Enabled, b.UpdatedAt, b.ID,
	)
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

// Delete removes a binding from the database by its ID.
func (r *BindingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM bindings WHERE id = ?`, id)
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
