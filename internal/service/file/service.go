package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/payfolio/payslip-backend-go/internal/pkg/storage"
)

type FileService interface {
	// UploadPayslipTemp stores an uploaded payslip document in the temp
	// area, keyed by a fresh UUID. The document is only promoted once the
	// user confirms the extracted values.
	UploadPayslipTemp(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// PromotePayslipDocument moves a temp document to its permanent home
	// under the confirmed payslip's ID.
	PromotePayslipDocument(ctx context.Context, userID string, tempPath string, payslipID string) (string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadPayslipTemp uploads a payslip document (PDF or image) to temp storage.
// Images are compressed to keep stored documents between 50KB and 300KB.
func (s *fileServiceImpl) UploadPayslipTemp(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	allowedExts := []string{".pdf", ".jpg", ".jpeg", ".png"}

	isValid := false
	for _, allowed := range allowedExts {
		if ext == allowed {
			isValid = true
			break
		}
	}

	if !isValid {
		return "", fmt.Errorf("invalid file type: only pdf, jpg, jpeg, png allowed")
	}

	uniqueID := uuid.New().String()
	contentType := "application/pdf"
	reader := file

	if ext != ".pdf" {
		buffer, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("failed to read image: %w", err)
		}

		compressed, err := compressImage(buffer, 300*1024, 50*1024)
		if err != nil {
			return "", fmt.Errorf("failed to compress image: %w", err)
		}

		// Always JPEG after compression
		ext = ".jpg"
		contentType = "image/jpeg"
		reader = bytes.NewReader(compressed)
	}

	path := filepath.Join("payslips", "tmp", userID, uniqueID+ext)

	uploadedPath, err := s.storage.Upload(ctx, reader, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload payslip document: %w", err)
	}

	return uploadedPath, nil
}

// PromotePayslipDocument moves a confirmed document out of the temp area.
func (s *fileServiceImpl) PromotePayslipDocument(ctx context.Context, userID string, tempPath string, payslipID string) (string, error) {
	ext := strings.ToLower(filepath.Ext(tempPath))
	permanentPath := filepath.Join("payslips", userID, payslipID+ext)

	moved, err := s.storage.Move(ctx, tempPath, permanentPath)
	if err != nil {
		return "", fmt.Errorf("failed to promote payslip document: %w", err)
	}

	return moved, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// compressImage compresses an image to target size range using Go standard library
// maxSize: maximum allowed size
// minSize: minimum target size
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	if len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	img, format, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	// Start with quality 85 and reduce progressively
	quality := 85
	var compressed []byte
	currentImg := img

	for quality >= 50 {
		buf := new(bytes.Buffer)
		err = jpeg.Encode(buf, currentImg, &jpeg.Options{Quality: quality})
		if err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}

		compressed = buf.Bytes()

		if len(compressed) <= maxSize && len(compressed) >= minSize {
			return compressed, nil
		}

		if len(compressed) > maxSize {
			quality -= 5
			continue
		}

		// If too small but quality already low, accept it
		if len(compressed) < minSize && quality <= 60 {
			return compressed, nil
		}

		break
	}

	// If still too large after quality reduction, try resizing
	if len(compressed) > maxSize {
		targetSize := (maxSize + minSize) / 2
		ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
		newWidth := int(float64(originalWidth) * ratio)
		newHeight := int(float64(originalHeight) * ratio)

		// Keep documents legible
		if newWidth < 600 {
			newWidth = 600
		}
		if newHeight < 400 {
			newHeight = 400
		}

		resized := resizeImage(img, newWidth, newHeight)

		buf := new(bytes.Buffer)
		err = jpeg.Encode(buf, resized, &jpeg.Options{Quality: 70})
		if err != nil {
			return nil, fmt.Errorf("failed to encode resized image: %w", err)
		}

		compressed = buf.Bytes()
	}

	_ = format // PNG is converted to JPEG

	return compressed, nil
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
