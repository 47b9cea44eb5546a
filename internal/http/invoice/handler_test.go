package invoice

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carepoint/medibill/internal/invoice"
	"github.com/carepoint/medibill/internal/medicine"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Validation",
			err:        fmt.Errorf("%w: items are required", invoice.ErrValidation),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "InsufficientStock",
			err:        fmt.Errorf("item 1: %w", medicine.ErrInsufficientStock),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MedicineNotFound",
			err:        fmt.Errorf("item 2: %w", medicine.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   "item 2: medicine not found\n",
		},
		{
			name:       "InvoiceNotFound",
			err:        invoice.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "invoice not found\n",
		},
		{
			name:       "Unknown",
			err:        errors.New("db error"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
