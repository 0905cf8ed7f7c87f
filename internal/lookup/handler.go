package lookup

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/httpjson"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/metrics"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/models"
)

type response struct {
	Found        bool                 `json:"found"`
	Registration *models.Registration `json:"registration,omitempty"`
}

// Handler serves GET /api/registrations/lookup?email=.
type Handler struct {
	finder  Finder
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewHandler(finder Finder, m *metrics.Metrics, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{finder: finder, metrics: m, log: log}
}

func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	flow := NewFlow(h.finder)
	reg, err := flow.Search(r.Context(), r.URL.Query().Get("email"))
	switch {
	case errors.Is(err, ErrEmptyEmail), errors.Is(err, ErrMalformedEmail):
		h.metrics.Lookup(metrics.OutcomeInvalid)
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.metrics.Lookup(metrics.OutcomeError)
		h.log.Error("registration lookup", "err", err)
		httpjson.Error(w, http.StatusBadGateway, "lookup failed, please try again")
		return
	}

	if flow.State() == NoMatch {
		h.metrics.Lookup(metrics.OutcomeNoMatch)
		httpjson.Write(w, http.StatusOK, response{Found: false})
		return
	}
	h.metrics.Lookup(metrics.OutcomeOK)
	httpjson.Write(w, http.StatusOK, response{Found: true, Registration: reg})
}
