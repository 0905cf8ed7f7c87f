package content

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/httpjson"
)

const maxContentBody = 1 << 20

type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log}
}

// Get handles GET /api/content/{section}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Get(r.Context(), chi.URLParam(r, "section"))
	if errors.Is(err, ErrUnknownSection) {
		httpjson.Error(w, http.StatusNotFound, "unknown content section")
		return
	}
	if err != nil {
		httpjson.Error(w, http.StatusBadGateway, "something went wrong, please try again")
		return
	}
	httpjson.Write(w, http.StatusOK, v)
}

// Put handles PUT /api/admin/content/{section}.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxContentBody))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.svc.Put(r.Context(), chi.URLParam(r, "section"), json.RawMessage(raw))
	var derr *DecodeError
	switch {
	case errors.Is(err, ErrUnknownSection):
		httpjson.Error(w, http.StatusNotFound, "unknown content section")
		return
	case errors.As(err, &derr):
		httpjson.Error(w, http.StatusBadRequest, derr.Error())
		return
	case err != nil:
		h.log.Error("content update", "err", err)
		httpjson.Error(w, http.StatusBadGateway, "something went wrong, please try again")
		return
	}
	httpjson.Write(w, http.StatusOK, v)
}
