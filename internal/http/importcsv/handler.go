package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carepoint/medibill/internal/alias"
	"github.com/carepoint/medibill/internal/importer"
	"github.com/carepoint/medibill/internal/medicine"
)

type Handler struct {
	importSvc   *importer.Service
	medicineSvc *medicine.Service
	aliasSvc    *alias.Service
}

func NewHandler(importSvc *importer.Service, medicineSvc *medicine.Service, aliasSvc *alias.Service) *Handler {
	return &Handler{
		importSvc:   importSvc,
		medicineSvc: medicineSvc,
		aliasSvc:    aliasSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type medicineDTO struct {
	Name          string            `json:"name"`
	RawName       string            `json:"raw_name,omitempty"`
	Description   string            `json:"description,omitempty"`
	Price         int64             `json:"price"`
	PurchasePrice int64             `json:"purchase_price"`
	Quantity      int               `json:"quantity"`
	ExpiryDate    time.Time         `json:"expiry_date,omitzero"`
	Manufacturer  string            `json:"manufacturer,omitempty"`
	BatchNumber   string            `json:"batch_number,omitempty"`
	Schedule      medicine.Schedule `json:"schedule,omitempty"`
}

type previewResponse struct {
	Parsed    int           `json:"parsed"`
	Medicines []medicineDTO `json:"medicines"`
}

type confirmRequest struct {
	Medicines []medicineDTO `json:"medicines"`
}

type confirmResponse struct {
	Imported int `json:"imported"`
}

// importCSV parses an uploaded stock export and returns the rows it found
// without persisting anything; the client reviews and posts to /confirm.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	supplier := importer.Supplier(r.FormValue("supplier"))
	if supplier == "" {
		http.Error(w, "supplier field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(supplier, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := previewResponse{
		Parsed:    len(params),
		Medicines: make([]medicineDTO, 0, len(params)),
	}
	for _, p := range params {
		dto := toDTO(p)
		dto.RawName = p.Name

		// Swap in the catalogue name when a known supplier alias matches.
		if canonical, err := h.aliasSvc.Suggest(r.Context(), p.Name); err == nil && canonical != "" {
			dto.Name = canonical
		}

		resp.Medicines = append(resp.Medicines, dto)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	for _, dto := range req.Medicines {
		// Receive restocks an existing name+batch row and creates the rest.
		if _, err := h.medicineSvc.Receive(r.Context(), toParams(dto)); err != nil {
			http.Error(w, "medicine "+dto.Name+": "+err.Error(), http.StatusBadRequest)
			return
		}

		// A corrected name is worth remembering for the next import.
		if dto.RawName != "" && dto.RawName != dto.Name {
			if err := h.aliasSvc.Learn(r.Context(), dto.RawName, dto.Name); err != nil {
				slog.Error("failed to record item alias", "raw", dto.RawName, "error", err)
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(confirmResponse{Imported: len(req.Medicines)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toDTO(p medicine.CreateParams) medicineDTO {
	return medicineDTO{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		PurchasePrice: p.PurchasePrice,
		Quantity:      p.Quantity,
		ExpiryDate:    p.ExpiryDate,
		Manufacturer:  p.Manufacturer,
		BatchNumber:   p.BatchNumber,
		Schedule:      p.Schedule,
	}
}

func toParams(dto medicineDTO) medicine.CreateParams {
	return medicine.CreateParams{
		Name:          dto.Name,
		Description:   dto.Description,
		Price:         dto.Price,
		PurchasePrice: dto.PurchasePrice,
		Quantity:      dto.Quantity,
		ExpiryDate:    dto.ExpiryDate,
		Manufacturer:  dto.Manufacturer,
		BatchNumber:   dto.BatchNumber,
		Schedule:      dto.Schedule,
	}
}
