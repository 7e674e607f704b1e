package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"realestateapi/internal/model"
	"realestateapi/internal/repository"
)

// PropertyPostgres is a PostgreSQL implementation of repository.PropertyRepository.
// Each property is stored whole as a JSONB document keyed by its id.
type PropertyPostgres struct {
	db *sql.DB
}

// NewPropertyPostgres creates a new PropertyPostgres repository.
func NewPropertyPostgres(db *sql.DB) *PropertyPostgres {
	return &PropertyPostgres{db: db}
}

var _ repository.PropertyRepository = (*PropertyPostgres)(nil)

// GetAll returns every property ordered by id.
func (r *PropertyPostgres) GetAll(ctx context.Context) ([]model.Property, error) {
	return r.query(ctx, `SELECT doc FROM properties ORDER BY id`)
}

// GetByID fetches a single property by its id.
func (r *PropertyPostgres) GetByID(ctx context.Context, id string) (*model.Property, error) {
	const q = `SELECT doc FROM properties WHERE id = $1`
	var raw []byte
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	var p model.Property
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode property %s: %w", id, err)
	}
	return &p, nil
}

// GetFiltered runs the query rendered by BuildFilteredQuery.
func (r *PropertyPostgres) GetFiltered(ctx context.Context, f model.PropertyFilter) ([]model.Property, error) {
	q, args := BuildFilteredQuery(f)
	return r.query(ctx, q, args...)
}

// Create inserts a new property row.
func (r *PropertyPostgres) Create(ctx context.Context, p *model.Property) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode property: %w", err)
	}
	const q = `INSERT INTO properties (id, doc) VALUES ($1, $2)`
	_, err = r.db.ExecContext(ctx, q, p.ID, string(doc))
	return err
}

// CreateMany inserts all properties inside one transaction.
func (r *PropertyPostgres) CreateMany(ctx context.Context, ps []model.Property) error {
	if len(ps) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	const q = `INSERT INTO properties (id, doc) VALUES ($1, $2)`
	for _, p := range ps {
		doc, err := json.Marshal(p)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("encode property: %w", err)
		}
		if _, err := tx.ExecContext(ctx, q, p.ID, string(doc)); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Update replaces the stored document with the same id.
func (r *PropertyPostgres) Update(ctx context.Context, p *model.Property) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode property: %w", err)
	}
	const q = `UPDATE properties SET doc = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, p.ID, string(doc))
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// Delete removes a property by id.
func (r *PropertyPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM properties WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// Count returns the total number of property rows.
func (r *PropertyPostgres) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PropertyPostgres) query(ctx context.Context, q string, args ...any) ([]model.Property, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Property, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var p model.Property
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode property: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
