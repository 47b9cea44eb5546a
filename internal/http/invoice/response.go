package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/carepoint/medibill/internal/invoice"
)

type medicineRefResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	BatchNumber string     `json:"batch_number,omitempty"`
	Schedule    string     `json:"schedule,omitempty"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
}

type lineItemResponse struct {
	MedicineID *uuid.UUID           `json:"medicine_id,omitempty"`
	Name       string               `json:"name"`
	Quantity   int                  `json:"quantity"`
	Price      int64                `json:"price"`
	Amount     int64                `json:"amount"`
	Medicine   *medicineRefResponse `json:"medicine,omitempty"`
}

type invoiceResponse struct {
	ID              uuid.UUID          `json:"id"`
	CustomerName    string             `json:"customer_name"`
	CustomerContact string             `json:"customer_contact,omitempty"`
	PatientAge      string             `json:"patient_age,omitempty"`
	PatientSex      string             `json:"patient_sex,omitempty"`
	PatientAddress  string             `json:"patient_address,omitempty"`
	ConsultantName  string             `json:"consultant_name,omitempty"`
	AdmitDate       string             `json:"admit_date,omitempty"`
	DischargeDate   string             `json:"discharge_date,omitempty"`
	IPDNo           string             `json:"ipd_no,omitempty"`
	RegNo           string             `json:"reg_no,omitempty"`
	BillType        invoice.BillType   `json:"bill_type"`
	Items           []lineItemResponse `json:"items"`
	TotalAmount     int64              `json:"total_amount"`
	Discount        int64              `json:"discount"`
	Tax             int64              `json:"tax"`
	GrandTotal      int64              `json:"grand_total"`
	AmountInWords   string             `json:"amount_in_words,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       *time.Time         `json:"updated_at,omitempty"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	items := make([]lineItemResponse, len(inv.Items))
	for i, li := range inv.Items {
		items[i] = lineItemResponse{
			MedicineID: li.MedicineID,
			Name:       li.DisplayName(),
			Quantity:   li.Quantity,
			Price:      li.Price,
			Amount:     li.Amount(),
		}

		if m := li.Medicine; m != nil {
			ref := &medicineRefResponse{
				ID:          m.ID,
				Name:        m.Name,
				BatchNumber: m.BatchNumber,
				Schedule:    m.Schedule,
			}
			if !m.ExpiryDate.IsZero() {
				ref.ExpiryDate = new(m.ExpiryDate)
			}

			items[i].Medicine = ref
		}
	}

	return invoiceResponse{
		ID:              inv.ID,
		CustomerName:    inv.CustomerName,
		CustomerContact: inv.CustomerContact,
		PatientAge:      inv.PatientAge,
		PatientSex:      inv.PatientSex,
		PatientAddress:  inv.PatientAddress,
		ConsultantName:  inv.ConsultantName,
		AdmitDate:       inv.AdmitDate,
		DischargeDate:   inv.DischargeDate,
		IPDNo:           inv.IPDNo,
		RegNo:           inv.RegNo,
		BillType:        inv.BillType,
		Items:           items,
		TotalAmount:     inv.TotalAmount,
		Discount:        inv.Discount,
		Tax:             inv.Tax,
		GrandTotal:      inv.GrandTotal,
		AmountInWords:   inv.AmountInWords,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

func toResponseList(invs []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = toResponse(inv)
	}

	return resp
}
