package medicine

import (
	"time"

	"github.com/google/uuid"

	"github.com/carepoint/medibill/internal/medicine"
)

type medicineResponse struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Price         int64             `json:"price"`
	PurchasePrice int64             `json:"purchase_price"`
	Quantity      int               `json:"quantity"`
	ExpiryDate    *time.Time        `json:"expiry_date,omitempty"`
	Manufacturer  string            `json:"manufacturer,omitempty"`
	BatchNumber   string            `json:"batch_number,omitempty"`
	Schedule      medicine.Schedule `json:"schedule,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     *time.Time        `json:"updated_at,omitempty"`
}

func toResponse(m *medicine.Medicine) medicineResponse {
	resp := medicineResponse{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Price:         m.Price,
		PurchasePrice: m.PurchasePrice,
		Quantity:      m.Quantity,
		Manufacturer:  m.Manufacturer,
		BatchNumber:   m.BatchNumber,
		Schedule:      m.Schedule,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if !m.ExpiryDate.IsZero() {
		resp.ExpiryDate = new(m.ExpiryDate)
	}

	return resp
}

func toResponseList(meds []*medicine.Medicine) []medicineResponse {
	resp := make([]medicineResponse, len(meds))
	for i, m := range meds {
		resp[i] = toResponse(m)
	}

	return resp
}
