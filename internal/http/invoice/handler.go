package invoice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carepoint/medibill/internal/bill"
	"github.com/carepoint/medibill/internal/invoice"
	"github.com/carepoint/medibill/internal/medicine"
)

type Handler struct {
	svc    *invoice.Service
	header bill.Header
}

func NewHandler(svc *invoice.Service, header bill.Header) *Handler {
	return &Handler{svc: svc, header: header}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/bill", h.printableBill)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type itemRequest struct {
	MedicineID *uuid.UUID `json:"medicine_id,omitempty"`
	Name       string     `json:"name,omitempty"`
	Quantity   int        `json:"quantity"`
	Price      int64      `json:"price"`
}

func toItemParams(items []itemRequest) []invoice.ItemParams {
	params := make([]invoice.ItemParams, len(items))
	for i, it := range items {
		params[i] = invoice.ItemParams{
			MedicineID: it.MedicineID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price,
		}
	}

	return params
}

// writeServiceError maps reconciler errors onto status codes. Validation
// failures and short stock are the caller's problem; a missing medicine
// reference is a 404 like a missing invoice, with its own message.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, invoice.ErrValidation),
		errors.Is(err, medicine.ErrInsufficientStock):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, medicine.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, invoice.ErrNotFound):
		http.Error(w, "invoice not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type createInvoiceRequest struct {
	CustomerName    string           `json:"customer_name"`
	CustomerContact string           `json:"customer_contact"`
	PatientAge      string           `json:"patient_age"`
	PatientSex      string           `json:"patient_sex"`
	PatientAddress  string           `json:"patient_address"`
	ConsultantName  string           `json:"consultant_name"`
	AdmitDate       string           `json:"admit_date"`
	DischargeDate   string           `json:"discharge_date"`
	IPDNo           string           `json:"ipd_no"`
	RegNo           string           `json:"reg_no"`
	BillType        invoice.BillType `json:"bill_type"`
	Items           []itemRequest    `json:"items"`
	Discount        int64            `json:"discount"`
	Tax             int64            `json:"tax"`
	AmountInWords   string           `json:"amount_in_words"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Create(r.Context(), invoice.CreateParams{
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		PatientAge:      req.PatientAge,
		PatientSex:      req.PatientSex,
		PatientAddress:  req.PatientAddress,
		ConsultantName:  req.ConsultantName,
		AdmitDate:       req.AdmitDate,
		DischargeDate:   req.DischargeDate,
		IPDNo:           req.IPDNo,
		RegNo:           req.RegNo,
		BillType:        req.BillType,
		Items:           toItemParams(req.Items),
		Discount:        req.Discount,
		Tax:             req.Tax,
		AmountInWords:   req.AmountInWords,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := invoice.ListFilter{}

	if s := r.URL.Query().Get("bill_type"); s != "" {
		filter.BillType = new(invoice.BillType(s))
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	invs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(invs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) printableBill(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := w.Write([]byte(bill.Render(h.header, inv))); err != nil {
		slog.Error("failed to write bill", "error", err)
	}
}

type updateInvoiceRequest struct {
	CustomerName    *string           `json:"customer_name,omitempty"`
	CustomerContact *string           `json:"customer_contact,omitempty"`
	PatientAge      *string           `json:"patient_age,omitempty"`
	PatientSex      *string           `json:"patient_sex,omitempty"`
	PatientAddress  *string           `json:"patient_address,omitempty"`
	ConsultantName  *string           `json:"consultant_name,omitempty"`
	AdmitDate       *string           `json:"admit_date,omitempty"`
	DischargeDate   *string           `json:"discharge_date,omitempty"`
	IPDNo           *string           `json:"ipd_no,omitempty"`
	RegNo           *string           `json:"reg_no,omitempty"`
	BillType        *invoice.BillType `json:"bill_type,omitempty"`
	Items           []itemRequest     `json:"items,omitempty"`
	Discount        *int64            `json:"discount,omitempty"`
	Tax             *int64            `json:"tax,omitempty"`
	AmountInWords   *string           `json:"amount_in_words,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := invoice.UpdateParams{
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		PatientAge:      req.PatientAge,
		PatientSex:      req.PatientSex,
		PatientAddress:  req.PatientAddress,
		ConsultantName:  req.ConsultantName,
		AdmitDate:       req.AdmitDate,
		DischargeDate:   req.DischargeDate,
		IPDNo:           req.IPDNo,
		RegNo:           req.RegNo,
		BillType:        req.BillType,
		Discount:        req.Discount,
		Tax:             req.Tax,
		AmountInWords:   req.AmountInWords,
	}
	if req.Items != nil {
		params.Items = toItemParams(req.Items)
	}

	inv, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
