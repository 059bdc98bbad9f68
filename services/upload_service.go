package services

import (
	"fmt"
	"io"
	"lojastreet_server/lib"
	"lojastreet_server/structs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// UploadPathPrefix is where stored files are served from.
const UploadPathPrefix = "/uploads/"

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

type UploadResult struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

type UploadService struct {
	logger *gecho.Logger
	cfg    *structs.UploadConfig
}

func NewUploadService(logger *gecho.Logger, cfg *structs.Config) *UploadService {
	return &UploadService{logger: logger, cfg: cfg.Upload}
}

// Dir is the directory stored files live in.
func (us *UploadService) Dir() string {
	return us.cfg.Dir
}

// SaveImage stores an image under a random name after sniffing its content.
func (us *UploadService) SaveImage(r io.Reader) (*UploadResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, us.cfg.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, lib.NewValidationError("image", "is required")
	}
	if int64(len(data)) > us.cfg.MaxBytes {
		return nil, lib.NewValidationError("image", fmt.Sprintf("must be at most %d bytes", us.cfg.MaxBytes))
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return nil, lib.NewValidationError("image", "must be one of: "+strings.Join(allowedImageTypes, ", "))
	}

	if err := os.MkdirAll(us.cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := uuid.NewString() + mtype.Extension()
	if err := os.WriteFile(filepath.Join(us.cfg.Dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	path := UploadPathPrefix + name
	us.logger.Info("Image uploaded", gecho.Field("path", path), gecho.Field("type", mtype.String()), gecho.Field("bytes", len(data)))

	return &UploadResult{
		Path: path,
		URL:  strings.TrimRight(us.cfg.PublicURL, "/") + path,
	}, nil
}
