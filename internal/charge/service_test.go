package charge_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/carepoint/medibill/internal/charge"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    charge.CreateParams
		setupMock func(m *charge.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: charge.CreateParams{
				Name:        "General Ward Bed (per day)",
				Description: "Room rent, general ward",
				Price:       80000,
			},
			setupMock: func(m *charge.MockRepository) {
				m.EXPECT().
					CreateCharge(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *charge.Charge) error {
						c.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "MissingName",
			params:  charge.CreateParams{Price: 100},
			wantErr: true,
		},
		{
			name:    "NegativePrice",
			params:  charge.CreateParams{Name: "Dressing", Price: -1},
			wantErr: true,
		},
		{
			name:   "RepoError",
			params: charge.CreateParams{Name: "Dressing", Price: 15000},
			setupMock: func(m *charge.MockRepository) {
				m.EXPECT().
					CreateCharge(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := charge.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := charge.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, got.ID)
		})
	}
}
