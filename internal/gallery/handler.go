package gallery

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/httpjson"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/models"
)

const msgStoreFailure = "something went wrong, please try again"

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

// Upload handles POST /api/admin/gallery (multipart: title, image).
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.svc.maxBytes+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	img, err := h.svc.Add(r.Context(), r.FormValue("title"), header.Header.Get("Content-Type"), file, header.Size)
	switch {
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrNotImage):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrTooLarge):
		httpjson.Error(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	case err != nil:
		h.log.Error("gallery upload", "err", err)
		httpjson.Error(w, http.StatusBadGateway, msgStoreFailure)
		return
	}
	httpjson.Write(w, http.StatusCreated, img)
}

// List handles GET /api/gallery. Read failures degrade to an empty list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	imgs, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error("gallery list", "err", err)
	}
	if imgs == nil {
		imgs = []models.GalleryImage{}
	}
	httpjson.Write(w, http.StatusOK, imgs)
}

// Image handles GET /api/gallery/{id}/image.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	img, rc, err := h.svc.Open(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.log.Error("gallery image", "err", err)
		httpjson.Error(w, http.StatusBadGateway, msgStoreFailure)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(img.Size, 10))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := io.Copy(w, rc); err != nil {
		h.log.Warn("gallery image stream interrupted", "id", img.ID, "err", err)
	}
}

// Delete handles DELETE /api/admin/gallery/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.log.Error("gallery delete", "err", err)
		httpjson.Error(w, http.StatusBadGateway, msgStoreFailure)
		return
	}
	if !ok {
		httpjson.Error(w, http.StatusNotFound, ErrNotFound.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"deleted": true})
}
