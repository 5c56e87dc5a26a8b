package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/casa/internal/encoding"
	"github.com/MrJamesThe3rd/casa/internal/export"
	"github.com/MrJamesThe3rd/casa/internal/report"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

func contentCharset(c encoding.Charset) string {
	if c == encoding.UTF8BOM {
		return string(encoding.UTF8)
	}

	return string(c)
}

// download renders the whole report before writing so a failure still yields a clean 500.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.Write(r.Context(), &buf); err != nil {
		slog.Error("rendering report", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/csv; charset="+contentCharset(h.svc.Charset()))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write report", "error", err)
	}
}
