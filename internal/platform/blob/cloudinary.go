package blob

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gosimple/slug"
)

// CloudinaryStore uploads documents to Cloudinary and returns the secure
// CDN URL.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore builds a store from a cloudinary:// URL.
func NewCloudinaryStore(cloudinaryURL, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func (s *CloudinaryStore) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       slug.Make(base),
		ResourceType:   "raw", // documents, not images
		UniqueFilename: boolPtr(true),
		Overwrite:      boolPtr(false),
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}
