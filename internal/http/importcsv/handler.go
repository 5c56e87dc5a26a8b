package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/casa/internal/expense"
	"github.com/MrJamesThe3rd/casa/internal/importer"
	"github.com/MrJamesThe3rd/casa/internal/metrics"
)

type Handler struct {
	importSvc  *importer.Service
	expenseSvc *expense.Service
	metrics    *metrics.Metrics
}

func NewHandler(importSvc *importer.Service, expenseSvc *expense.Service, m *metrics.Metrics) *Handler {
	return &Handler{
		importSvc:  importSvc,
		expenseSvc: expenseSvc,
		metrics:    m,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type expenseResponse struct {
	ID          int64            `json:"id"`
	Category    expense.Category `json:"category"`
	Amount      string           `json:"amount"`
	Description string           `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type importSuccessResponse struct {
	Imported int               `json:"imported"`
	Expenses []expenseResponse `json:"expenses"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(r.Context(), importer.Format(r.FormValue("format")), file)
	if err != nil {
		slog.Warn("import rejected", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	created, err := h.expenseSvc.CreateBatch(r.Context(), params)
	if err != nil {
		if expense.IsValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("storing imported expenses", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.metrics.RowsImported(len(created))

	resp := importSuccessResponse{
		Imported: len(created),
		Expenses: make([]expenseResponse, len(created)),
	}

	for i, e := range created {
		resp.Expenses[i] = expenseResponse{
			ID:          e.ID,
			Category:    e.Category,
			Amount:      e.Amount.StringFixed(2),
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
