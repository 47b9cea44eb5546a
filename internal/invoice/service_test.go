package invoice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carepoint/medibill/internal/invoice"
	"github.com/carepoint/medibill/internal/medicine"
)

func newService(t *testing.T) (*invoice.Service, *invoice.MockRepository, *invoice.MockStockLedger) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := invoice.NewMockRepository(ctrl)
	ledger := invoice.NewMockStockLedger(ctrl)

	return invoice.NewService(repo, ledger), repo, ledger
}

func TestService_Create(t *testing.T) {
	m1 := uuid.New()

	svc, repo, ledger := newService(t)

	ledger.EXPECT().Reserve(gomock.Any(), m1, 4).Return(nil)

	repo.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
			assert.Equal(t, int64(20000), inv.TotalAmount)
			assert.Equal(t, int64(20000), inv.GrandTotal)
			assert.Equal(t, invoice.BillTypeMedical, inv.BillType)
			require.Len(t, inv.Items, 1)
			assert.Equal(t, 4, inv.Items[0].Quantity)

			inv.ID = uuid.New()
			return nil
		})

	repo.EXPECT().
		GetInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*invoice.Invoice, error) {
			return &invoice.Invoice{ID: id, TotalAmount: 20000, GrandTotal: 20000}, nil
		})

	got, err := svc.Create(context.Background(), invoice.CreateParams{
		CustomerName:    "Ramesh Kulkarni",
		CustomerContact: "9822000000",
		Items: []invoice.ItemParams{
			{MedicineID: &m1, Quantity: 4, Price: 5000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20000), got.GrandTotal)
}

func TestService_Create_MixedLines(t *testing.T) {
	m1 := uuid.New()

	svc, repo, ledger := newService(t)

	// Only the medicine line touches the ledger; the free-text charge is
	// billed at the supplied price with no stock interaction.
	ledger.EXPECT().Reserve(gomock.Any(), m1, 2).Return(nil)

	repo.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
			// 2*3000 + 1*80000 = 86000; grand = 86000 - 5000 + 1000
			assert.Equal(t, int64(86000), inv.TotalAmount)
			assert.Equal(t, int64(82000), inv.GrandTotal)

			inv.ID = uuid.New()
			return nil
		})
	repo.EXPECT().GetInvoice(gomock.Any(), gomock.Any()).Return(&invoice.Invoice{}, nil)

	_, err := svc.Create(context.Background(), invoice.CreateParams{
		CustomerName: "Sunita Deshmukh",
		BillType:     invoice.BillTypeHospital,
		Items: []invoice.ItemParams{
			{MedicineID: &m1, Quantity: 2, Price: 3000},
			{Name: "General Ward Bed (per day)", Quantity: 1, Price: 80000},
		},
		Discount: 5000,
		Tax:      1000,
	})
	require.NoError(t, err)
}

func TestService_Create_NegativeGrandTotal(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
			// Discount exceeding the subtotal is not clamped.
			assert.Equal(t, int64(1000), inv.TotalAmount)
			assert.Equal(t, int64(-4000), inv.GrandTotal)

			inv.ID = uuid.New()
			return nil
		})
	repo.EXPECT().GetInvoice(gomock.Any(), gomock.Any()).Return(&invoice.Invoice{}, nil)

	_, err := svc.Create(context.Background(), invoice.CreateParams{
		CustomerName: "Walk-in",
		Items:        []invoice.ItemParams{{Name: "Dressing", Quantity: 1, Price: 1000}},
		Discount:     5000,
	})
	require.NoError(t, err)
}

func TestService_Create_InsufficientStockRollsBack(t *testing.T) {
	m1 := uuid.New()
	m2 := uuid.New()

	svc, _, ledger := newService(t)

	gomock.InOrder(
		ledger.EXPECT().Reserve(gomock.Any(), m1, 2).Return(nil),
		ledger.EXPECT().Reserve(gomock.Any(), m2, 10).Return(medicine.ErrInsufficientStock),
		// The reservation staged before the failure is returned to stock.
		ledger.EXPECT().Release(gomock.Any(), m1, 2).Return(nil),
	)

	_, err := svc.Create(context.Background(), invoice.CreateParams{
		CustomerName: "Ramesh Kulkarni",
		Items: []invoice.ItemParams{
			{MedicineID: &m1, Quantity: 2, Price: 3000},
			{MedicineID: &m2, Quantity: 10, Price: 1200},
		},
	})
	assert.ErrorIs(t, err, medicine.ErrInsufficientStock)
}

func TestService_Create_PersistFailureRollsBack(t *testing.T) {
	m1 := uuid.New()

	svc, repo, ledger := newService(t)

	ledger.EXPECT().Reserve(gomock.Any(), m1, 1).Return(nil)
	repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
	ledger.EXPECT().Release(gomock.Any(), m1, 1).Return(nil)

	_, err := svc.Create(context.Background(), invoice.CreateParams{
		CustomerName: "Walk-in",
		Items:        []invoice.ItemParams{{MedicineID: &m1, Quantity: 1, Price: 500}},
	})
	assert.Error(t, err)
}

func TestService_Create_Validation(t *testing.T) {
	m1 := uuid.New()

	type testCase struct {
		name   string
		params invoice.CreateParams
	}

	tests := []testCase{
		{
			name:   "NoItems",
			params: invoice.CreateParams{CustomerName: "Walk-in"},
		},
		{
			name: "MissingCustomerName",
			params: invoice.CreateParams{
				Items: []invoice.ItemParams{{Name: "Dressing", Quantity: 1, Price: 100}},
			},
		},
		{
			name: "ZeroQuantity",
			params: invoice.CreateParams{
				CustomerName: "Walk-in",
				Items:        []invoice.ItemParams{{MedicineID: &m1, Quantity: 0, Price: 100}},
			},
		},
		{
			name: "NegativePrice",
			params: invoice.CreateParams{
				CustomerName: "Walk-in",
				Items:        []invoice.ItemParams{{MedicineID: &m1, Quantity: 1, Price: -1}},
			},
		},
		{
			name: "FreeTextWithoutName",
			params: invoice.CreateParams{
				CustomerName: "Walk-in",
				Items:        []invoice.ItemParams{{Quantity: 1, Price: 100}},
			},
		},
		{
			name: "UnknownBillType",
			params: invoice.CreateParams{
				CustomerName: "Walk-in",
				BillType:     invoice.BillType("clinic"),
				Items:        []invoice.ItemParams{{Name: "Dressing", Quantity: 1, Price: 100}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newService(t)

			_, err := svc.Create(context.Background(), tt.params)
			assert.ErrorIs(t, err, invoice.ErrValidation)
		})
	}
}

func TestService_Update_NetsStock(t *testing.T) {
	medA := uuid.New()
	medB := uuid.New()
	invID := uuid.New()

	svc, repo, ledger := newService(t)

	existing := &invoice.Invoice{
		ID:           invID,
		CustomerName: "Ramesh Kulkarni",
		BillType:     invoice.BillTypeMedical,
		Items: []invoice.LineItem{
			{MedicineID: &medA, Quantity: 3, Price: 2000},
		},
		TotalAmount: 6000,
		GrandTotal:  6000,
	}

	repo.EXPECT().GetInvoice(gomock.Any(), invID).Return(existing, nil)

	gomock.InOrder(
		// Previous lines go back on the shelf before the new set is taken.
		ledger.EXPECT().Release(gomock.Any(), medA, 3).Return(nil),
		ledger.EXPECT().Reserve(gomock.Any(), medB, 2).Return(nil),
	)

	repo.EXPECT().
		ReplaceInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
			assert.Equal(t, int64(9000), inv.TotalAmount)
			assert.Equal(t, int64(9000), inv.GrandTotal)
			require.Len(t, inv.Items, 1)
			assert.Equal(t, &medB, inv.Items[0].MedicineID)
			return nil
		})
	repo.EXPECT().GetInvoice(gomock.Any(), invID).Return(existing, nil)

	_, err := svc.Update(context.Background(), invID, invoice.UpdateParams{
		Items: []invoice.ItemParams{
			{MedicineID: &medB, Quantity: 2, Price: 4500},
		},
	})
	require.NoError(t, err)
}

func TestService_Update_DiscountOnly(t *testing.T) {
	invID := uuid.New()

	svc, repo, _ := newService(t)

	existing := &invoice.Invoice{
		ID:           invID,
		CustomerName: "Sunita Deshmukh",
		BillType:     invoice.BillTypeHospital,
		Items: []invoice.LineItem{
			{Name: "Consultation", Quantity: 1, Price: 50000},
		},
		TotalAmount: 50000,
		Discount:    0,
		Tax:         0,
		GrandTotal:  50000,
	}

	repo.EXPECT().GetInvoice(gomock.Any(), invID).Return(existing, nil)

	repo.EXPECT().
		ReplaceInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
			// Items untouched; grand total recomputed from the stored subtotal.
			assert.Equal(t, int64(50000), inv.TotalAmount)
			assert.Equal(t, int64(2500), inv.Discount)
			assert.Equal(t, int64(47500), inv.GrandTotal)
			require.Len(t, inv.Items, 1)
			return nil
		})
	repo.EXPECT().GetInvoice(gomock.Any(), invID).Return(existing, nil)

	discount := int64(2500)

	_, err := svc.Update(context.Background(), invID, invoice.UpdateParams{Discount: &discount})
	require.NoError(t, err)
}

func TestService_Update_ReserveFailureLeavesRecord(t *testing.T) {
	medA := uuid.New()
	medB := uuid.New()
	invID := uuid.New()

	svc, repo, ledger := newService(t)

	existing := &invoice.Invoice{
		ID:    invID,
		Items: []invoice.LineItem{{MedicineID: &medA, Quantity: 3, Price: 2000}},
	}

	repo.EXPECT().GetInvoice(gomock.Any(), invID).Return(existing, nil)

	gomock.InOrder(
		ledger.EXPECT().Release(gomock.Any(), medA, 3).Return(nil),
		ledger.EXPECT().Reserve(gomock.Any(), medB, 99).Return(medicine.ErrInsufficientStock),
	)

	// ReplaceInvoice must never run; the stored invoice stays as it was.
	_, err := svc.Update(context.Background(), invID, invoice.UpdateParams{
		Items: []invoice.ItemParams{{MedicineID: &medB, Quantity: 99, Price: 100}},
	})
	assert.ErrorIs(t, err, medicine.ErrInsufficientStock)
}

func TestService_Update_PersistFailureRollsBack(t *testing.T) {
	medA := uuid.New()
	medB := uuid.New()
	invID := uuid.New()

	svc, repo, ledger := newService(t)

	existing := &invoice.Invoice{
		ID:    invID,
		Items: []invoice.LineItem{{MedicineID: &medA, Quantity: 3, Price: 2000}},
	}

	repo.EXPECT().GetInvoice(gomock.Any(), invID).Return(existing, nil)

	gomock.InOrder(
		ledger.EXPECT().Release(gomock.Any(), medA, 3).Return(nil),
		ledger.EXPECT().Reserve(gomock.Any(), medB, 2).Return(nil),
		repo.EXPECT().ReplaceInvoice(gomock.Any(), gomock.Any()).Return(errors.New("db error")),
		// The reservation staged for the new line goes back to stock.
		ledger.EXPECT().Release(gomock.Any(), medB, 2).Return(nil),
	)

	_, err := svc.Update(context.Background(), invID, invoice.UpdateParams{
		Items: []invoice.ItemParams{{MedicineID: &medB, Quantity: 2, Price: 4500}},
	})
	assert.Error(t, err)
}

func TestService_Update_NotFound(t *testing.T) {
	invID := uuid.New()

	svc, repo, _ := newService(t)

	repo.EXPECT().GetInvoice(gomock.Any(), invID).Return(nil, invoice.ErrNotFound)

	_, err := svc.Update(context.Background(), invID, invoice.UpdateParams{})
	assert.ErrorIs(t, err, invoice.ErrNotFound)
}

func TestService_Delete_RestoresStock(t *testing.T) {
	m1 := uuid.New()
	m2 := uuid.New()
	invID := uuid.New()

	svc, repo, ledger := newService(t)

	repo.EXPECT().GetInvoice(gomock.Any(), invID).Return(&invoice.Invoice{
		ID: invID,
		Items: []invoice.LineItem{
			{MedicineID: &m1, Quantity: 4, Price: 5000},
			{Name: "Dressing", Quantity: 1, Price: 15000},
			{MedicineID: &m2, Quantity: 2, Price: 1200},
		},
	}, nil)

	ledger.EXPECT().Release(gomock.Any(), m1, 4).Return(nil)
	ledger.EXPECT().Release(gomock.Any(), m2, 2).Return(nil)
	repo.EXPECT().DeleteInvoice(gomock.Any(), invID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), invID))
}

func TestService_Delete_NotFound(t *testing.T) {
	invID := uuid.New()

	svc, repo, _ := newService(t)

	repo.EXPECT().GetInvoice(gomock.Any(), invID).Return(nil, invoice.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), invID), invoice.ErrNotFound)
}
