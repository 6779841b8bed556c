package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"

	"github.com/treasuryofflair/flairmarket/config"
	"github.com/treasuryofflair/flairmarket/pkg/apperr"
)

// uploadDir is the disk-relative directory all listing images land in.
const uploadDir = "uploads"

// extByMIME maps the sniffed content type to the stored file extension.
// The map doubles as the upload allowlist.
var extByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"image/bmp":  ".bmp",
}

// newFilename builds a collision-resistant name from the current timestamp
// and a random suffix, mirroring how upload names have always looked.
func newFilename(ext string) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(b), ext)
}

// SaveImage validates fh as an image and writes it to the default disk.
// The returned path is disk-relative ("uploads/<name>") and is what gets
// persisted on the listing row.
//
// Rejections are validation errors: files over the configured size cap and
// files whose sniffed content is not an allowed image type.
func SaveImage(fh *multipart.FileHeader) (string, error) {
	maxBytes := config.UploadMaxBytes()
	if fh.Size > maxBytes {
		return "", apperr.Validation(fmt.Sprintf("Image must not exceed %d bytes", maxBytes))
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("storage: open upload: %w", err)
	}
	defer f.Close()

	// Sniff the real content type from the first bytes; the client's
	// declared Content-Type is not trusted.
	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("storage: read upload: %w", err)
	}
	head = head[:n]

	mime := http.DetectContentType(head)
	ext, ok := extByMIME[mime]
	if !ok {
		return "", apperr.Validation("Only image uploads are allowed")
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("storage: rewind upload: %w", err)
	}

	rel := path.Join(uploadDir, newFilename(ext))
	if err := PutStream(rel, io.LimitReader(f, maxBytes)); err != nil {
		return "", err
	}

	return rel, nil
}
