package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/carepoint/medibill/internal/charge"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCharge(s scanner) (*charge.Charge, error) {
	var c charge.Charge

	if err := s.Scan(&c.ID, &c.Name, &c.Description, &c.Price, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

const selectChargeColumns = `id, name, description, price, created_at, updated_at`

func (s *Store) CreateCharge(ctx context.Context, c *charge.Charge) error {
	query := `
		INSERT INTO charges (name, description, price, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.Description, c.Price).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating charge: %w", err)
	}

	return nil
}

func (s *Store) GetCharge(ctx context.Context, id uuid.UUID) (*charge.Charge, error) {
	query := `SELECT ` + selectChargeColumns + ` FROM charges WHERE id = $1`

	c, err := scanCharge(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, charge.ErrNotFound
		}

		return nil, fmt.Errorf("getting charge: %w", err)
	}

	return c, nil
}

func (s *Store) ListCharges(ctx context.Context) ([]*charge.Charge, error) {
	query := `SELECT ` + selectChargeColumns + ` FROM charges ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing charges: %w", err)
	}
	defer rows.Close()

	var cs []*charge.Charge

	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning charge: %w", err)
		}

		cs = append(cs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating charge rows: %w", err)
	}

	return cs, nil
}

func (s *Store) UpdateCharge(ctx context.Context, c *charge.Charge) error {
	query := `
		UPDATE charges
		SET name = $1, description = $2, price = $3, updated_at = NOW()
		WHERE id = $4
	`

	res, err := s.db.ExecContext(ctx, query, c.Name, c.Description, c.Price, c.ID)
	if err != nil {
		return fmt.Errorf("updating charge: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating charge: %w", err)
	}

	if n == 0 {
		return charge.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteCharge(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM charges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting charge: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting charge: %w", err)
	}

	if n == 0 {
		return charge.ErrNotFound
	}

	return nil
}
