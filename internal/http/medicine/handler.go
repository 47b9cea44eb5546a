package medicine

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carepoint/medibill/internal/medicine"
)

type Handler struct {
	svc *medicine.Service
}

func NewHandler(svc *medicine.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createMedicineRequest struct {
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         int64             `json:"price"`
	PurchasePrice int64             `json:"purchase_price"`
	Quantity      int               `json:"quantity"`
	ExpiryDate    time.Time         `json:"expiry_date"`
	Manufacturer  string            `json:"manufacturer"`
	BatchNumber   string            `json:"batch_number"`
	Schedule      medicine.Schedule `json:"schedule"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createMedicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.Create(r.Context(), medicine.CreateParams{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		PurchasePrice: req.PurchasePrice,
		Quantity:      req.Quantity,
		ExpiryDate:    req.ExpiryDate,
		Manufacturer:  req.Manufacturer,
		BatchNumber:   req.BatchNumber,
		Schedule:      req.Schedule,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := medicine.ListFilter{}

	if s := r.URL.Query().Get("name"); s != "" {
		filter.Name = new(s)
	}

	if s := r.URL.Query().Get("expiring_before"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.ExpiringBefore = new(t)
		}
	}

	meds, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(meds)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, medicine.ErrNotFound) {
			http.Error(w, "medicine not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateMedicineRequest struct {
	Name          *string            `json:"name,omitempty"`
	Description   *string            `json:"description,omitempty"`
	Price         *int64             `json:"price,omitempty"`
	PurchasePrice *int64             `json:"purchase_price,omitempty"`
	Quantity      *int               `json:"quantity,omitempty"`
	ExpiryDate    *time.Time         `json:"expiry_date,omitempty"`
	Manufacturer  *string            `json:"manufacturer,omitempty"`
	BatchNumber   *string            `json:"batch_number,omitempty"`
	Schedule      *medicine.Schedule `json:"schedule,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateMedicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, medicine.ErrNotFound) {
			http.Error(w, "medicine not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		m.Name = *req.Name
	}

	if req.Description != nil {
		m.Description = *req.Description
	}

	if req.Price != nil {
		m.Price = *req.Price
	}

	if req.PurchasePrice != nil {
		m.PurchasePrice = *req.PurchasePrice
	}

	if req.Quantity != nil {
		m.Quantity = *req.Quantity
	}

	if req.ExpiryDate != nil {
		m.ExpiryDate = *req.ExpiryDate
	}

	if req.Manufacturer != nil {
		m.Manufacturer = *req.Manufacturer
	}

	if req.BatchNumber != nil {
		m.BatchNumber = *req.BatchNumber
	}

	if req.Schedule != nil {
		m.Schedule = *req.Schedule
	}

	if err := h.svc.Update(r.Context(), m); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
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
		if errors.Is(err, medicine.ErrNotFound) {
			http.Error(w, "medicine not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
