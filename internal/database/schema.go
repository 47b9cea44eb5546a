package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent so the server can run it on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	schema := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
		`CREATE TABLE IF NOT EXISTS medicines (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price BIGINT NOT NULL CHECK (price >= 0),
			purchase_price BIGINT NOT NULL CHECK (purchase_price >= 0),
			quantity INTEGER NOT NULL CHECK (quantity >= 0),
			expiry_date DATE NOT NULL,
			manufacturer TEXT NOT NULL DEFAULT '',
			batch_number TEXT NOT NULL DEFAULT '',
			schedule TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS charges (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price BIGINT NOT NULL CHECK (price >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			customer_name TEXT NOT NULL,
			customer_contact TEXT NOT NULL,
			patient_age TEXT NOT NULL DEFAULT '',
			patient_sex TEXT NOT NULL DEFAULT '',
			patient_address TEXT NOT NULL DEFAULT '',
			consultant_name TEXT NOT NULL DEFAULT '',
			admit_date TEXT NOT NULL DEFAULT '',
			discharge_date TEXT NOT NULL DEFAULT '',
			ipd_no TEXT NOT NULL DEFAULT '',
			reg_no TEXT NOT NULL DEFAULT '',
			bill_type TEXT NOT NULL DEFAULT 'medical',
			total_amount BIGINT NOT NULL,
			discount BIGINT NOT NULL DEFAULT 0,
			tax BIGINT NOT NULL DEFAULT 0,
			grand_total BIGINT NOT NULL,
			amount_in_words TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS invoice_items (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			invoice_id UUID NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			medicine_id UUID REFERENCES medicines(id) ON DELETE SET NULL,
			name TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL CHECK (quantity >= 1),
			price BIGINT NOT NULL CHECK (price >= 0)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS item_aliases (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				raw_pattern TEXT NOT NULL,
				canonical_name TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		`CREATE INDEX IF NOT EXISTS invoice_items_invoice_idx ON invoice_items (invoice_id, position)`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("running migration: %w", err)
		}
	}

	return nil
}
