package summary

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/casa/internal/billing"
	"github.com/MrJamesThe3rd/casa/internal/proration"
)

type Handler struct {
	svc *billing.Service
}

func NewHandler(svc *billing.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/occupancy", h.occupancy)
}

type shareResponse struct {
	Amount string  `json:"amount"`
	Weight float64 `json:"weight"`
}

type residentResponse struct {
	Name       string                   `json:"name"`
	Days       int                      `json:"days"`
	Proportion float64                  `json:"proportion"`
	Total      string                   `json:"total"`
	Categories map[string]shareResponse `json:"categories"`
}

type summaryResponse struct {
	Household     string             `json:"household,omitempty"`
	Start         string             `json:"start"`
	End           string             `json:"end"`
	ReferenceDays int                `json:"reference_days"`
	Categories    []string           `json:"categories"`
	Totals        map[string]string  `json:"totals"`
	GrandTotal    string             `json:"grand_total"`
	Residents     []residentResponse `json:"residents"`
	Unallocated   []string           `json:"unallocated"`
}

func (h *Handler) toResponse(res *proration.Result) summaryResponse {
	house := h.svc.Household()

	resp := summaryResponse{
		Household:     house.Name,
		Start:         house.Period.Start.String(),
		End:           house.Period.End.String(),
		ReferenceDays: res.ReferenceDays,
		Categories:    res.Catalog.Strings(),
		Totals:        make(map[string]string, len(res.Totals)),
		GrandTotal:    res.Totals.Grand().StringFixed(2),
		Residents:     make([]residentResponse, len(res.Residents)),
		Unallocated:   make([]string, len(res.Unallocated)),
	}

	for c, t := range res.Totals {
		resp.Totals[string(c)] = t.StringFixed(2)
	}

	for i, a := range res.Residents {
		rr := residentResponse{
			Name:       string(a.Name),
			Days:       a.Days,
			Proportion: a.Proportion,
			Total:      a.Total.StringFixed(2),
			Categories: make(map[string]shareResponse, len(a.Categories)),
		}

		for c, s := range a.Categories {
			rr.Categories[string(c)] = shareResponse{Amount: s.Amount.StringFixed(2), Weight: s.Weight}
		}

		resp.Residents[i] = rr
	}

	for i, c := range res.Unallocated {
		resp.Unallocated[i] = string(c)
	}

	return resp
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Summary(r.Context())
	if err != nil {
		slog.Error("computing summary", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.toResponse(res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) occupancy(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.svc.Occupancy()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
