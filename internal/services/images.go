package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"path"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
	"github.com/monocle-dev/holdings/internal/models"
	"github.com/monocle-dev/holdings/internal/observability"
	"github.com/monocle-dev/holdings/internal/storage"
	"github.com/monocle-dev/holdings/internal/types"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"gorm.io/gorm"
)

var ErrNotAnImage = errors.New("upload a valid image. The file you uploaded was either not an image or a corrupted image")

var safeExt = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

// maxImagePixels bounds the bitmap a full decode may allocate.
const maxImagePixels = 50_000_000

// ValidateImage checks that r holds a complete, decodable image and rewinds
// it. The header is read first so oversized bitmaps are refused before any
// pixel data is decoded.
func ValidateImage(r io.ReadSeeker) (string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return "", ErrNotAnImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxImagePixels {
		return "", ErrNotAnImage
	}

	if err := rewind(r); err != nil {
		return "", err
	}

	if _, _, err := image.Decode(r); err != nil {
		return "", ErrNotAnImage
	}

	if err := rewind(r); err != nil {
		return "", err
	}

	return format, nil
}

func rewind(r io.Seeker) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind upload: %w", err)
	}
	return nil
}

// ImageName generates the storage name for an uploaded file. Only the
// extension of the client's file name survives.
func ImageName(filename string) string {
	ext := filepath.Ext(filename)
	if !safeExt.MatchString(ext) {
		ext = ""
	}

	return path.Join(types.ImageUploadDir, uuid.NewString()+ext)
}

// AttachImage validates and stores file for an owned investment and records
// the new reference. On any failure the investment keeps its old image.
func AttachImage(ctx context.Context, conn *gorm.DB, store storage.Storage, userID, investmentID uint, filename string, file io.ReadSeeker) (models.Investment, error) {
	investment, err := OwnedInvestment(conn, userID, investmentID)
	if err != nil {
		return models.Investment{}, err
	}

	if _, err := ValidateImage(file); err != nil {
		observability.RecordImageUpload(observability.ImageRejected)
		return models.Investment{}, err
	}

	name := ImageName(filename)

	if err := store.Save(ctx, name, file); err != nil {
		return models.Investment{}, fmt.Errorf("store image: %w", err)
	}

	if err := conn.Model(&investment).Update("image", name).Error; err != nil {
		if delErr := store.Delete(ctx, name); delErr != nil {
			log.Printf("Failed to remove orphaned image %s: %v", name, delErr)
		}
		return models.Investment{}, fmt.Errorf("record image: %w", err)
	}

	observability.RecordImageUpload(observability.ImageStored)
	investment.Image = &name

	return investment, nil
}
