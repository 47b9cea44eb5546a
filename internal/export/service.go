// Package export produces the sales register: a CSV of invoices over a
// period, one row per bill, the shape accountants ask for at filing time.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/carepoint/medibill/internal/invoice"
)

// InvoiceLister is the slice of the invoice service the exporter needs.
type InvoiceLister interface {
	List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error)
}

type Service struct {
	invoices InvoiceLister
}

func NewService(invoices InvoiceLister) *Service {
	return &Service{invoices: invoices}
}

var header = []string{
	"Date", "Bill No", "Bill Type", "Patient", "Items",
	"Subtotal", "Discount", "Tax", "Grand Total",
}

// Export writes the sales register for the filter to w as CSV. Amounts are
// rendered in rupees with two decimals.
func (s *Service) Export(ctx context.Context, filter invoice.ListFilter, w io.Writer) error {
	invs, err := s.invoices.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing invoices: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, inv := range invs {
		row := []string{
			inv.CreatedAt.Format("2006-01-02"),
			inv.ID.String(),
			string(inv.BillType),
			inv.CustomerName,
			fmt.Sprintf("%d", len(inv.Items)),
			rupees(inv.TotalAmount),
			rupees(inv.Discount),
			rupees(inv.Tax),
			rupees(inv.GrandTotal),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing invoice %s: %w", inv.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func rupees(paise int64) string {
	return decimal.NewFromInt(paise).Div(decimal.NewFromInt(100)).StringFixed(2)
}
