package bill

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/carepoint/medibill/internal/invoice"
)

func TestRender_MedicalBill(t *testing.T) {
	medID := uuid.New()
	inv := &invoice.Invoice{
		ID:              uuid.MustParse("3f1d7c2a-42b8-4c7e-9a94-5a0f6a0a9c11"),
		CustomerName:    "Asha Verma",
		CustomerContact: "9876543210",
		BillType:        invoice.BillTypeMedical,
		Items: []invoice.LineItem{
			{
				MedicineID: &medID,
				Quantity:   4,
				Price:      5000,
				Medicine: &invoice.MedicineRef{
					ID:          medID,
					Name:        "Paracetamol 500mg",
					BatchNumber: "PB-2201",
					ExpiryDate:  time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC),
				},
			},
		},
		TotalAmount: 20000,
		Discount:    2000,
		GrandTotal:  18000,
		CreatedAt:   time.Date(2026, time.August, 30, 11, 45, 0, 0, time.UTC),
	}

	out := Render(Header{Name: "Carepoint Hospital", Address: "12 MG Road, Pune", Phone: "020-5551234"}, inv)

	assert.Contains(t, out, "Carepoint Hospital")
	assert.Contains(t, out, "PHARMACY BILL")
	assert.Contains(t, out, "Asha Verma")
	assert.Contains(t, out, "Paracetamol 500mg")
	assert.Contains(t, out, "Batch: PB-2201")
	assert.Contains(t, out, "Exp: 03/2027")
	assert.Contains(t, out, "Discount:")
	assert.Contains(t, out, "180.00")
	assert.Contains(t, out, "In words: one hundred eighty rupees only")

	// the patient block is hospital-only
	assert.NotContains(t, out, "Consultant")
	assert.NotContains(t, out, "IPD No")
}

func TestRender_HospitalBillPatientBlock(t *testing.T) {
	inv := &invoice.Invoice{
		ID:             uuid.New(),
		CustomerName:   "Ravi Kulkarni",
		PatientAge:     "54",
		PatientSex:     "M",
		PatientAddress: "8 Shivaji Nagar",
		ConsultantName: "Dr. Mehta",
		AdmitDate:      "2026-08-20",
		DischargeDate:  "2026-08-27",
		IPDNo:          "IPD-1042",
		RegNo:          "R-88671",
		BillType:       invoice.BillTypeHospital,
		Items: []invoice.LineItem{
			{Name: "Room charges", Quantity: 7, Price: 150000},
		},
		TotalAmount: 1050000,
		GrandTotal:  1050000,
		CreatedAt:   time.Date(2026, time.August, 27, 9, 0, 0, 0, time.UTC),
	}

	out := Render(Header{Name: "Carepoint Hospital"}, inv)

	assert.Contains(t, out, "HOSPITAL BILL")
	assert.Contains(t, out, "54 / M")
	assert.Contains(t, out, "Dr. Mehta")
	assert.Contains(t, out, "IPD-1042")
	assert.Contains(t, out, "Room charges")
	assert.Contains(t, out, "10,500.00")
}

func TestFormatPaise(t *testing.T) {
	tests := []struct {
		paise int64
		want  string
	}{
		{0, "0.00"},
		{5000, "50.00"},
		{123456, "1,234.56"},
		{12345678, "1,23,456.78"},
		{1234567890, "1,23,45,678.90"},
		{-4000, "-40.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatPaise(tt.paise))
	}
}

func TestTruncate_MultibyteName(t *testing.T) {
	name := "Générique Paracétamol 500mg Comprimés Boîte de 16"

	got := truncate(name, 38)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 38, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "…"))

	assert.Equal(t, "Crocin® 650", truncate("Crocin® 650", 38))
}
