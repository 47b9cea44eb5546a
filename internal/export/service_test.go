package export

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carepoint/medibill/internal/invoice"
)

type stubLister struct {
	invs []*invoice.Invoice
	err  error
}

func (s *stubLister) List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	return s.invs, s.err
}

func TestService_Export(t *testing.T) {
	id := uuid.MustParse("3f1d7c2a-42b8-4c7e-9a94-5a0f6a0a9c11")
	lister := &stubLister{
		invs: []*invoice.Invoice{
			{
				ID:           id,
				CustomerName: "Asha Verma",
				BillType:     invoice.BillTypeMedical,
				Items: []invoice.LineItem{
					{Name: "Paracetamol 500mg", Quantity: 4, Price: 5000},
				},
				TotalAmount: 20000,
				Discount:    2000,
				Tax:         500,
				GrandTotal:  18500,
				CreatedAt:   time.Date(2026, time.August, 30, 11, 0, 0, 0, time.UTC),
			},
		},
	}

	var sb strings.Builder

	svc := NewService(lister)
	require.NoError(t, svc.Export(context.Background(), invoice.ListFilter{}, &sb))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "Date,Bill No,Bill Type,Patient,Items,Subtotal,Discount,Tax,Grand Total", lines[0])
	assert.Equal(t, "2026-08-30,"+id.String()+",medical,Asha Verma,1,200.00,20.00,5.00,185.00", lines[1])
}

func TestService_Export_Empty(t *testing.T) {
	var sb strings.Builder

	svc := NewService(&stubLister{})
	require.NoError(t, svc.Export(context.Background(), invoice.ListFilter{}, &sb))

	assert.Equal(t, "Date,Bill No,Bill Type,Patient,Items,Subtotal,Discount,Tax,Grand Total\n", sb.String())
}
