package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/carepoint/medibill/internal/invoice"
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

const selectInvoiceColumns = `
	id, customer_name, customer_contact, patient_age, patient_sex, patient_address,
	consultant_name, admit_date, discharge_date, ipd_no, reg_no, bill_type,
	total_amount, discount, tax, grand_total, amount_in_words, created_at, updated_at
`

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var billType string

	if err := s.Scan(
		&inv.ID, &inv.CustomerName, &inv.CustomerContact, &inv.PatientAge, &inv.PatientSex,
		&inv.PatientAddress, &inv.ConsultantName, &inv.AdmitDate, &inv.DischargeDate,
		&inv.IPDNo, &inv.RegNo, &billType,
		&inv.TotalAmount, &inv.Discount, &inv.Tax, &inv.GrandTotal, &inv.AmountInWords,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.BillType = invoice.BillType(billType)

	return &inv, nil
}

// scanItem reads one line item row with its LEFT JOINed medicine summary.
// Expected column order: medicine_id, name, quantity, price,
// med_name, med_batch, med_schedule, med_expiry.
func scanItem(s scanner) (invoice.LineItem, error) {
	var li invoice.LineItem

	var medID *uuid.UUID

	var medName, medBatch, medSchedule sql.NullString

	var medExpiry sql.NullTime

	if err := s.Scan(
		&medID, &li.Name, &li.Quantity, &li.Price,
		&medName, &medBatch, &medSchedule, &medExpiry,
	); err != nil {
		return invoice.LineItem{}, err
	}

	li.MedicineID = medID

	if medID != nil && medName.Valid {
		li.Medicine = &invoice.MedicineRef{
			ID:          *medID,
			Name:        medName.String,
			BatchNumber: medBatch.String,
			Schedule:    medSchedule.String,
			ExpiryDate:  medExpiry.Time,
		}
	}

	return li, nil
}

const selectItemColumns = `
	ii.medicine_id, ii.name, ii.quantity, ii.price,
	m.name, m.batch_number, m.schedule, m.expiry_date
`

func insertItems(ctx context.Context, tx *sql.Tx, invoiceID uuid.UUID, items []invoice.LineItem) error {
	query := `
		INSERT INTO invoice_items (invoice_id, position, medicine_id, name, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for i, li := range items {
		if _, err := tx.ExecContext(ctx, query, invoiceID, i, li.MedicineID, li.Name, li.Quantity, li.Price); err != nil {
			return fmt.Errorf("inserting invoice item %d: %w", i+1, err)
		}
	}

	return nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO invoices (customer_name, customer_contact, patient_age, patient_sex, patient_address,
			consultant_name, admit_date, discharge_date, ipd_no, reg_no, bill_type,
			total_amount, discount, tax, grand_total, amount_in_words, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowContext(ctx, query,
		inv.CustomerName, inv.CustomerContact, inv.PatientAge, inv.PatientSex, inv.PatientAddress,
		inv.ConsultantName, inv.AdmitDate, inv.DischargeDate, inv.IPDNo, inv.RegNo, string(inv.BillType),
		inv.TotalAmount, inv.Discount, inv.Tax, inv.GrandTotal, inv.AmountInWords,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	if err := insertItems(ctx, tx, inv.ID, inv.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing invoice: %w", err)
	}

	return nil
}

func (s *Store) loadItems(ctx context.Context, invoiceID uuid.UUID) ([]invoice.LineItem, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM invoice_items ii
		LEFT JOIN medicines m ON ii.medicine_id = m.id
		WHERE ii.invoice_id = $1
		ORDER BY ii.position ASC`

	rows, err := s.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("loading invoice items: %w", err)
	}
	defer rows.Close()

	var items []invoice.LineItem

	for rows.Next() {
		li, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice item: %w", err)
		}

		items = append(items, li)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice item rows: %w", err)
	}

	return items, nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	inv.Items, err = s.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.BillType != nil {
		query += fmt.Sprintf(" AND bill_type = $%d", argIdx)

		args = append(args, string(*filter.BillType))
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invs []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invs = append(invs, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	for _, inv := range invs {
		inv.Items, err = s.loadItems(ctx, inv.ID)
		if err != nil {
			return nil, err
		}
	}

	return invs, nil
}

// ReplaceInvoice rewrites the invoice row and its full item list in one
// database transaction.
func (s *Store) ReplaceInvoice(ctx context.Context, inv *invoice.Invoice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE invoices
		SET customer_name = $1, customer_contact = $2, patient_age = $3, patient_sex = $4,
		    patient_address = $5, consultant_name = $6, admit_date = $7, discharge_date = $8,
		    ipd_no = $9, reg_no = $10, bill_type = $11, total_amount = $12, discount = $13,
		    tax = $14, grand_total = $15, amount_in_words = $16, updated_at = NOW()
		WHERE id = $17
	`

	res, err := tx.ExecContext(ctx, query,
		inv.CustomerName, inv.CustomerContact, inv.PatientAge, inv.PatientSex, inv.PatientAddress,
		inv.ConsultantName, inv.AdmitDate, inv.DischargeDate, inv.IPDNo, inv.RegNo, string(inv.BillType),
		inv.TotalAmount, inv.Discount, inv.Tax, inv.GrandTotal, inv.AmountInWords,
		inv.ID,
	)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	if n == 0 {
		return invoice.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.ID); err != nil {
		return fmt.Errorf("clearing invoice items: %w", err)
	}

	if err := insertItems(ctx, tx, inv.ID, inv.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing invoice: %w", err)
	}

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	if n == 0 {
		return invoice.ErrNotFound
	}

	return nil
}
