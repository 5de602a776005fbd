package aiclient

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Image is a generated picture.
type Image struct {
	Prompt   string
	MIMEType string
	Data     []byte
}

// DataURL returns the image as an inline data URL.
func (img *Image) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data))
}

// Extension returns the file extension for the image's MIME type.
func (img *Image) Extension() string {
	switch img.MIMEType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

// Save writes the image into dir under a unique name and returns its path.
func (img *Image) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}
	name := fmt.Sprintf("visiontour-%s-%s%s", time.Now().Format("20060102-150405"), uuid.NewString()[:8], img.Extension())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}
