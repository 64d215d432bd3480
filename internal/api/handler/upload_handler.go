package handler

import (
	"net/http"

	"docuverify/internal/api/middleware"
	"docuverify/internal/app/service"
	"docuverify/internal/common"

	"github.com/go-chi/chi/v5"
)

type UploadHandler struct {
	uploadService *service.UploadService
	maxBytes      int64
}

func NewUploadHandler(uploadService *service.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, maxBytes: maxBytes}
}

func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(auth chi.Router) {
		auth.Use(middleware.Authenticator)
		auth.Post("/upload", h.upload)
	})
}

func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		common.RespondWithKind(w, common.KindValidationFailed, "No file uploaded")
		return
	}
	defer file.Close()

	fileURL, err := h.uploadService.UploadDocument(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"fileUrl": fileURL})
}
