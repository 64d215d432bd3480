package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"docuverify/internal/common"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBlobStore struct {
	url string
	err error
}

func (s *stubBlobStore) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func TestUploadDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects non-PDF uploads", func(t *testing.T) {
		svc := NewUploadService(&stubBlobStore{url: "https://cdn.example.com/doc"}, zerolog.Nop())
		_, err := svc.UploadDocument(ctx, "scan.png", "image/png", strings.NewReader("bytes"))
		require.Error(t, err)
		assert.Equal(t, common.KindValidationFailed, common.KindOf(err))
	})

	t.Run("accepts a PDF and returns the blob URL", func(t *testing.T) {
		svc := NewUploadService(&stubBlobStore{url: "https://cdn.example.com/doc.pdf"}, zerolog.Nop())
		url, err := svc.UploadDocument(ctx, "statement.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/doc.pdf", url)
	})

	t.Run("blob failure surfaces as upstream storage failure", func(t *testing.T) {
		svc := NewUploadService(&stubBlobStore{err: errors.New("cdn unreachable")}, zerolog.Nop())
		_, err := svc.UploadDocument(ctx, "statement.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
		require.Error(t, err)
		assert.Equal(t, common.KindUpstreamStorage, common.KindOf(err))
		// The transport error stays out of the caller-facing message
		assert.Equal(t, "File upload failed", common.MessageOf(err))
	})
}
