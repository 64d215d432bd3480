package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"docuverify/internal/common"
	"docuverify/internal/platform/blob"

	"github.com/rs/zerolog"
)

// UploadService pushes document bytes to the external blob store and hands
// back the durable URL. Only PDFs are accepted; the bytes are never
// inspected beyond the declared type.
type UploadService struct {
	store blob.Store
	log   zerolog.Logger
}

func NewUploadService(store blob.Store, baseLogger zerolog.Logger) *UploadService {
	return &UploadService{
		store: store,
		log:   baseLogger.With().Str("component", "upload_service").Logger(),
	}
}

func (s *UploadService) UploadDocument(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if contentType != "application/pdf" && !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return "", common.E(common.KindValidationFailed, "Only PDFs are allowed")
	}

	url, err := s.store.Upload(ctx, filename, r)
	if err != nil {
		s.log.Error().Err(err).Str("filename", filename).Msg("blob upload failed")
		return "", common.WrapE(common.KindUpstreamStorage, "File upload failed", err)
	}

	s.log.Info().Str("filename", filename).Msg("document uploaded")
	return url, nil
}
