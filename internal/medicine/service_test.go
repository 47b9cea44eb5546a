package medicine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carepoint/medibill/internal/medicine"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    medicine.CreateParams
		setupMock func(m *medicine.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: medicine.CreateParams{
				Name:          "Paracetamol 500mg",
				Description:   "Analgesic and antipyretic",
				Price:         1550,
				PurchasePrice: 1100,
				Quantity:      200,
				ExpiryDate:    time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC),
				Manufacturer:  "Cipla",
				BatchNumber:   "PCM-2301",
				Schedule:      medicine.ScheduleH,
			},
			setupMock: func(m *medicine.MockRepository) {
				m.EXPECT().
					CreateMedicine(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, med *medicine.Medicine) error {
						med.ID = uuid.New()
						med.CreatedAt = time.Now()
						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "MissingName",
			params: medicine.CreateParams{
				Price:    1000,
				Quantity: 10,
			},
			wantErr: true,
		},
		{
			name: "NegativeQuantity",
			params: medicine.CreateParams{
				Name:     "Azithromycin 250mg",
				Quantity: -1,
			},
			wantErr: true,
		},
		{
			name: "UnknownSchedule",
			params: medicine.CreateParams{
				Name:     "Azithromycin 250mg",
				Quantity: 10,
				Schedule: medicine.Schedule("Q"),
			},
			wantErr: true,
		},
		{
			name: "RepoError",
			params: medicine.CreateParams{
				Name:     "Azithromycin 250mg",
				Quantity: 10,
			},
			setupMock: func(m *medicine.MockRepository) {
				m.EXPECT().
					CreateMedicine(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := medicine.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := medicine.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Receive(t *testing.T) {
	existingID := uuid.New()

	type testCase struct {
		name      string
		params    medicine.CreateParams
		setupMock func(m *medicine.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "ExistingBatchRestocked",
			params: medicine.CreateParams{
				Name:        "Paracetamol 500mg",
				BatchNumber: "PCM-2301",
				Quantity:    50,
			},
			setupMock: func(m *medicine.MockRepository) {
				m.EXPECT().
					FindMedicineByBatch(gomock.Any(), "Paracetamol 500mg", "PCM-2301").
					Return(&medicine.Medicine{ID: existingID, Name: "Paracetamol 500mg", Quantity: 120}, nil)
				m.EXPECT().IncrementStock(gomock.Any(), existingID, 50).Return(true, nil)
				m.EXPECT().
					GetMedicine(gomock.Any(), existingID).
					Return(&medicine.Medicine{ID: existingID, Name: "Paracetamol 500mg", Quantity: 170}, nil)
			},
		},
		{
			name: "UnknownBatchCreated",
			params: medicine.CreateParams{
				Name:        "Azithromycin 250mg",
				BatchNumber: "AZT-2405",
				Quantity:    30,
			},
			setupMock: func(m *medicine.MockRepository) {
				m.EXPECT().
					FindMedicineByBatch(gomock.Any(), "Azithromycin 250mg", "AZT-2405").
					Return(nil, medicine.ErrNotFound)
				m.EXPECT().
					CreateMedicine(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, med *medicine.Medicine) error {
						med.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "NoBatchAlwaysCreates",
			params: medicine.CreateParams{
				Name:     "Cetirizine 10mg",
				Quantity: 10,
			},
			setupMock: func(m *medicine.MockRepository) {
				m.EXPECT().
					CreateMedicine(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, med *medicine.Medicine) error {
						med.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "NegativeQuantity",
			params: medicine.CreateParams{
				Name:        "Cetirizine 10mg",
				BatchNumber: "CTZ-2402",
				Quantity:    -5,
			},
			wantErr: true,
		},
		{
			name: "LookupError",
			params: medicine.CreateParams{
				Name:        "Cetirizine 10mg",
				BatchNumber: "CTZ-2402",
				Quantity:    5,
			},
			setupMock: func(m *medicine.MockRepository) {
				m.EXPECT().
					FindMedicineByBatch(gomock.Any(), "Cetirizine 10mg", "CTZ-2402").
					Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := medicine.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := medicine.NewService(repo)
			got, err := svc.Receive(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
		})
	}
}

func TestService_Reserve(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		qty       int
		setupMock func(m *medicine.MockRepository)
		wantErr   error
		anyErr    bool
	}

	tests := []testCase{
		{
			name: "Success",
			qty:  4,
			setupMock: func(m *medicine.MockRepository) {
				m.EXPECT().DecrementStock(gomock.Any(), id, 4).Return(true, nil)
			},
		},
		{
			name: "InsufficientStock",
			qty:  50,
			setupMock: func(m *medicine.MockRepository) {
				m.EXPECT().DecrementStock(gomock.Any(), id, 50).Return(false, nil)
				m.EXPECT().MedicineExists(gomock.Any(), id).Return(true, nil)
			},
			wantErr: medicine.ErrInsufficientStock,
		},
		{
			name: "NotFound",
			qty:  1,
			setupMock: func(m *medicine.MockRepository) {
				m.EXPECT().DecrementStock(gomock.Any(), id, 1).Return(false, nil)
				m.EXPECT().MedicineExists(gomock.Any(), id).Return(false, nil)
			},
			wantErr: medicine.ErrNotFound,
		},
		{
			name:   "ZeroQuantity",
			qty:    0,
			anyErr: true,
		},
		{
			name: "RepoError",
			qty:  2,
			setupMock: func(m *medicine.MockRepository) {
				m.EXPECT().DecrementStock(gomock.Any(), id, 2).Return(false, errors.New("db error"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := medicine.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := medicine.NewService(repo)
			err := svc.Reserve(context.Background(), id, tt.qty)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_Release_ToleratesMissingMedicine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := medicine.NewMockRepository(ctrl)
	repo.EXPECT().IncrementStock(gomock.Any(), id, 3).Return(false, nil)

	svc := medicine.NewService(repo)

	// The medicine is gone; release must still succeed.
	require.NoError(t, svc.Release(context.Background(), id, 3))
}

func TestService_Release_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := medicine.NewMockRepository(ctrl)
	repo.EXPECT().IncrementStock(gomock.Any(), id, 3).Return(false, errors.New("db error"))

	svc := medicine.NewService(repo)
	assert.Error(t, svc.Release(context.Background(), id, 3))
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := medicine.NewMockRepository(ctrl)
	repo.EXPECT().
		ListMedicines(gomock.Any(), medicine.ListFilter{}).
		Return([]*medicine.Medicine{
			{ID: uuid.New(), Name: "Amoxicillin 500mg"},
			{ID: uuid.New(), Name: "Cetirizine 10mg"},
		}, nil)

	svc := medicine.NewService(repo)
	got, err := svc.List(context.Background(), medicine.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
