// Package upload stores uploaded binary assets on the local filesystem.
// Stored names are generated, never taken from the client, so the
// original filename cannot influence where bytes land on disk.
package upload

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"union-backend/internal/apperr"

	"github.com/google/uuid"
)

const (
	MaxDocumentSize = 10 * 1024 * 1024
	MaxImageSize    = 5 * 1024 * 1024
)

var documentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// SavedFile describes a stored asset. URL is the public path the API
// hands out; Name is a normalized display name derived from the upload.
type SavedFile struct {
	Name     string
	MimeType string
	URL      string
	Size     int64
}

type Store struct {
	documentsDir string
	imagesDir    string
}

func NewStore(documentsDir, imagesDir string) (*Store, error) {
	for _, dir := range []string{documentsDir, imagesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload directory %s: %w", dir, err)
		}
	}
	return &Store{documentsDir: documentsDir, imagesDir: imagesDir}, nil
}

// SaveDocument ingests a "file" upload: PDF, DOC, DOCX, TXT or a plain
// image, up to 10MB.
func (s *Store) SaveDocument(fh *multipart.FileHeader) (*SavedFile, error) {
	return s.save(fh, s.documentsDir, "/documents", "document", documentTypes, MaxDocumentSize,
		"Unsupported file type. Allowed: PDF, DOC, DOCX, TXT, JPG, PNG, GIF",
		"File is too large. Maximum size: 10MB")
}

// SaveImage ingests an "image" upload: JPG, PNG, GIF or WEBP, up to 5MB.
func (s *Store) SaveImage(fh *multipart.FileHeader) (*SavedFile, error) {
	return s.save(fh, s.imagesDir, "/images", "image", imageTypes, MaxImageSize,
		"Unsupported file type. Allowed: JPG, PNG, GIF, WEBP",
		"File is too large. Maximum size: 5MB")
}

func (s *Store) save(fh *multipart.FileHeader, dir, urlPrefix, namePrefix string, allowed map[string]bool, maxSize int64, typeMsg, sizeMsg string) (*SavedFile, error) {
	mimeType := fh.Header.Get("Content-Type")
	if !allowed[mimeType] {
		return nil, apperr.Upload(typeMsg)
	}
	if fh.Size > maxSize {
		return nil, apperr.Upload(sizeMsg)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	stored := fmt.Sprintf("%s-%d-%s%s", namePrefix, time.Now().UnixMilli(), uuid.NewString(), ext)

	src, err := fh.Open()
	if err != nil {
		return nil, apperr.Internal("Failed to read the uploaded file")
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, stored))
	if err != nil {
		return nil, apperr.Internal("Failed to store the uploaded file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return nil, apperr.Internal("Failed to store the uploaded file")
	}

	return &SavedFile{
		Name:     NormalizeDisplayName(fh.Filename),
		MimeType: mimeType,
		URL:      path.Join(urlPrefix, stored),
		Size:     fh.Size,
	}, nil
}

// Reclaim deletes the physical file behind a public path. Reclaiming a
// path that no longer exists is a no-op, so double deletes never fail
// the surrounding operation.
func (s *Store) Reclaim(publicPath string) {
	var dir, prefix string
	switch {
	case strings.HasPrefix(publicPath, "/documents/"):
		dir, prefix = s.documentsDir, "/documents/"
	case strings.HasPrefix(publicPath, "/images/"):
		dir, prefix = s.imagesDir, "/images/"
	default:
		return
	}

	// Base strips any directory component a stored path should not have.
	name := filepath.Base(strings.TrimPrefix(publicPath, prefix))
	if name == "." || name == "/" {
		return
	}

	if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "reclaim %s: %v\n", publicPath, err)
	}
}

var (
	invalidNameChars = regexp.MustCompile(`[^\w\s.-]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// NormalizeDisplayName derives a presentable name from the client's
// filename: strip special characters, collapse whitespace to
// underscores, cap the base at 50 characters, keep the extension.
func NormalizeDisplayName(original string) string {
	if original == "" {
		return "unnamed_file"
	}

	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)

	base = invalidNameChars.ReplaceAllString(base, "")
	base = whitespaceRuns.ReplaceAllString(base, "_")
	if len(base) > 50 {
		base = base[:50]
	}
	if base == "" {
		base = "unnamed_file"
	}

	return base + ext
}
