package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

// thumbnailWidth is the fixed width of generated listing thumbnails;
// height follows the aspect ratio.
const thumbnailWidth = 400

// ErrUnsupportedImage reports a file that is not a decodable image of
// an accepted format.
var ErrUnsupportedImage = fmt.Errorf("unsupported image format")

// ErrImageTooLarge reports an upload exceeding the configured limit.
var ErrImageTooLarge = fmt.Errorf("image exceeds maximum upload size")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// UploadService stores uploaded images and generates thumbnails.
type UploadService struct {
	uploadDir string
	maxSize   int64
	logger    *logger.Logger
}

// NewUploadService creates a new upload service.
func NewUploadService(uploadDir string, maxSize int64, logger *logger.Logger) *UploadService {
	return &UploadService{
		uploadDir: uploadDir,
		maxSize:   maxSize,
		logger:    logger,
	}
}

// SaveImage validates, stores, and thumbnails one uploaded image. The
// stored filename is a fresh UUID so client-supplied names never reach
// the filesystem.
func (s *UploadService) SaveImage(ctx context.Context, file *multipart.FileHeader) (*ports.UploadResult, error) {
	if s.maxSize > 0 && file.Size > s.maxSize {
		return nil, ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return nil, ErrUnsupportedImage
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// Decoding proves the payload really is an image, whatever the
	// extension claims.
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	if err := os.MkdirAll(filepath.Join(s.uploadDir, "thumbs"), 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	name := uuid.New().String() + ext
	originalPath := filepath.Join(s.uploadDir, name)
	thumbPath := filepath.Join(s.uploadDir, "thumbs", name)

	if err := imaging.Save(img, originalPath); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return nil, fmt.Errorf("save thumbnail: %w", err)
	}

	var size int64
	if info, err := os.Stat(originalPath); err == nil {
		size = info.Size()
	}

	bounds := img.Bounds()
	s.logger.Info("Image uploaded", "filename", name, "width", bounds.Dx(), "height", bounds.Dy())

	return &ports.UploadResult{
		URL:          "/uploads/" + name,
		ThumbnailURL: "/uploads/thumbs/" + name,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		Size:         size,
	}, nil
}
