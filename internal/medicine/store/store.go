package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/carepoint/medibill/internal/medicine"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectMedicineColumns = `
	id, name, description, price, purchase_price, quantity, expiry_date,
	manufacturer, batch_number, schedule, created_at, updated_at
`

func scanMedicine(s scanner) (*medicine.Medicine, error) {
	var m medicine.Medicine

	var schedule string

	if err := s.Scan(
		&m.ID, &m.Name, &m.Description, &m.Price, &m.PurchasePrice, &m.Quantity,
		&m.ExpiryDate, &m.Manufacturer, &m.BatchNumber, &schedule,
		&m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}

	m.Schedule = medicine.Schedule(schedule)

	return &m, nil
}

func (s *Store) CreateMedicine(ctx context.Context, m *medicine.Medicine) error {
	query := `
		INSERT INTO medicines (name, description, price, purchase_price, quantity, expiry_date, manufacturer, batch_number, schedule, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.Name,
		m.Description,
		m.Price,
		m.PurchasePrice,
		m.Quantity,
		m.ExpiryDate,
		m.Manufacturer,
		m.BatchNumber,
		string(m.Schedule),
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating medicine: %w", err)
	}

	return nil
}

func (s *Store) GetMedicine(ctx context.Context, id uuid.UUID) (*medicine.Medicine, error) {
	query := `SELECT ` + selectMedicineColumns + ` FROM medicines WHERE id = $1`

	m, err := scanMedicine(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, medicine.ErrNotFound
		}

		return nil, fmt.Errorf("getting medicine: %w", err)
	}

	return m, nil
}

func (s *Store) FindMedicineByBatch(ctx context.Context, name, batch string) (*medicine.Medicine, error) {
	query := `
		SELECT ` + selectMedicineColumns + `
		FROM medicines
		WHERE name ILIKE $1 AND batch_number = $2
		ORDER BY created_at ASC
		LIMIT 1
	`

	m, err := scanMedicine(s.db.QueryRowContext(ctx, query, name, batch))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, medicine.ErrNotFound
		}

		return nil, fmt.Errorf("finding medicine by batch: %w", err)
	}

	return m, nil
}

func (s *Store) ListMedicines(ctx context.Context, filter medicine.ListFilter) ([]*medicine.Medicine, error) {
	query := `SELECT ` + selectMedicineColumns + ` FROM medicines WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Name != nil {
		query += fmt.Sprintf(" AND name ILIKE '%%' || $%d || '%%'", argIdx)

		args = append(args, *filter.Name)
		argIdx++
	}

	if filter.ExpiringBefore != nil {
		query += fmt.Sprintf(" AND expiry_date < $%d", argIdx)

		args = append(args, *filter.ExpiringBefore)
		argIdx++
	}

	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing medicines: %w", err)
	}
	defer rows.Close()

	var ms []*medicine.Medicine

	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning medicine: %w", err)
		}

		ms = append(ms, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating medicine rows: %w", err)
	}

	return ms, nil
}

func (s *Store) UpdateMedicine(ctx context.Context, m *medicine.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $1, description = $2, price = $3, purchase_price = $4, quantity = $5,
		    expiry_date = $6, manufacturer = $7, batch_number = $8, schedule = $9, updated_at = NOW()
		WHERE id = $10
	`

	res, err := s.db.ExecContext(ctx, query,
		m.Name,
		m.Description,
		m.Price,
		m.PurchasePrice,
		m.Quantity,
		m.ExpiryDate,
		m.Manufacturer,
		m.BatchNumber,
		string(m.Schedule),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating medicine: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating medicine: %w", err)
	}

	if n == 0 {
		return medicine.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting medicine: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting medicine: %w", err)
	}

	if n == 0 {
		return medicine.ErrNotFound
	}

	return nil
}

// DecrementStock applies the conditional decrement in one statement. The
// quantity guard in the WHERE clause is what keeps concurrent reservations
// from overselling a batch.
func (s *Store) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	query := `
		UPDATE medicines
		SET quantity = quantity - $2, updated_at = NOW()
		WHERE id = $1 AND quantity >= $2
	`

	res, err := s.db.ExecContext(ctx, query, id, qty)
	if err != nil {
		return false, fmt.Errorf("decrementing stock: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("decrementing stock: %w", err)
	}

	return n > 0, nil
}

func (s *Store) IncrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	query := `
		UPDATE medicines
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query, id, qty)
	if err != nil {
		return false, fmt.Errorf("incrementing stock: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("incrementing stock: %w", err)
	}

	return n > 0, nil
}

func (s *Store) MedicineExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM medicines WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking medicine: %w", err)
	}

	return exists, nil
}
