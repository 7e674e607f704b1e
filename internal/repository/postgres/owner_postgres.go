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

// OwnerPostgres is a PostgreSQL implementation of repository.OwnerRepository.
type OwnerPostgres struct {
	db *sql.DB
}

func NewOwnerPostgres(db *sql.DB) *OwnerPostgres {
	return &OwnerPostgres{db: db}
}

var _ repository.OwnerRepository = (*OwnerPostgres)(nil)

func (r *OwnerPostgres) GetAll(ctx context.Context) ([]model.Owner, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT doc FROM owners ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owners := make([]model.Owner, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var o model.Owner
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, fmt.Errorf("decode owner: %w", err)
		}
		owners = append(owners, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return owners, nil
}

func (r *OwnerPostgres) GetByID(ctx context.Context, id string) (*model.Owner, error) {
	var raw []byte
	if err := r.db.QueryRowContext(ctx, `SELECT doc FROM owners WHERE id = $1`, id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	var o model.Owner
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("decode owner %s: %w", id, err)
	}
	return &o, nil
}

func (r *OwnerPostgres) CreateMany(ctx context.Context, owners []model.Owner) error {
	if len(owners) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	const q = `INSERT INTO owners (id, doc) VALUES ($1, $2)`
	for _, o := range owners {
		doc, err := json.Marshal(o)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("encode owner: %w", err)
		}
		if _, err := tx.ExecContext(ctx, q, o.ID, string(doc)); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
