package registration

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/httpjson"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/models"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/query"
)

const (
	msgStoreFailure = "something went wrong, please try again"
	msgNotFound     = "registration not found"
)

// Handler holds the registration HTTP handlers.
type Handler struct {
	svc *Service
	loc *time.Location
	log *slog.Logger
}

// NewHandler builds the handlers. loc is the zone export timestamps are
// rendered in.
func NewHandler(svc *Service, loc *time.Location, log *slog.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, loc: loc, log: log}
}

// Submit handles POST /api/registrations.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.RegistrationFields
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		h.writeMutationError(w, "submit", err)
		return
	}
	httpjson.Write(w, http.StatusCreated, map[string]int64{"id": id})
}

// List handles GET /api/admin/registrations?q=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	regs, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error("list registrations", "err", err)
		httpjson.Error(w, http.StatusBadGateway, msgStoreFailure)
		return
	}
	regs = query.Filter(regs, r.URL.Query().Get("q"))
	if regs == nil {
		regs = []models.Registration{}
	}
	httpjson.Write(w, http.StatusOK, regs)
}

// Count handles GET /api/admin/registrations/count.
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Count(r.Context())
	if err != nil {
		h.log.Error("count registrations", "err", err)
		httpjson.Error(w, http.StatusBadGateway, msgStoreFailure)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]int{"count": n})
}

// Categories handles GET /api/admin/registrations/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	regs, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error("category counts", "err", err)
		httpjson.Error(w, http.StatusBadGateway, msgStoreFailure)
		return
	}
	counts := query.CountByCategory(regs)
	if counts == nil {
		counts = []models.CategoryCount{}
	}
	httpjson.Write(w, http.StatusOK, counts)
}

// Export handles GET /api/admin/registrations/export.csv. The optional q
// parameter narrows the export the same way List does.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	regs, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error("export registrations", "err", err)
		httpjson.Error(w, http.StatusBadGateway, msgStoreFailure)
		return
	}
	regs = query.Filter(regs, r.URL.Query().Get("q"))

	filename := fmt.Sprintf("registrations_%s.csv", time.Now().In(h.loc).Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if err := query.WriteCSV(w, regs, h.loc); err != nil {
		h.log.Error("write csv", "err", err)
	}
}

// Update handles PUT /api/admin/registrations/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req models.RegistrationFields
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		h.writeMutationError(w, "update", err)
		return
	}
	if !updated {
		httpjson.Error(w, http.StatusNotFound, msgNotFound)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"updated": true})
}

// Delete handles DELETE /api/admin/registrations/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	deleted, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		h.writeMutationError(w, "delete", err)
		return
	}
	if !deleted {
		httpjson.Error(w, http.StatusNotFound, msgNotFound)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) writeMutationError(w http.ResponseWriter, op string, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		httpjson.Write(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
		return
	}
	h.log.Error("registration "+op, "err", err)
	httpjson.Error(w, http.StatusBadGateway, msgStoreFailure)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpjson.Error(w, http.StatusBadRequest, "invalid registration id")
		return 0, false
	}
	return id, true
}
