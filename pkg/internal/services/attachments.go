package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ImageUploadDir       = "posts"
	DefaultMediaRoot     = "media"
	DefaultMediaURL      = "/media"
	DefaultMaxImageBytes = 5 << 20
)

// ImageTypes are the raster formats accepted for post images.
var ImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp"}

var (
	ErrInvalidImage  = errors.New("upload a valid image, the file you uploaded was either not an image or a corrupted image")
	ErrImageTooLarge = errors.New("uploaded image is too large")
)

func MediaRoot() string {
	if root := viper.GetString("media.root"); len(root) > 0 {
		return root
	}
	return DefaultMediaRoot
}

func MediaURL() string {
	if url := viper.GetString("media.url"); len(url) > 0 {
		return strings.TrimSuffix(url, "/")
	}
	return DefaultMediaURL
}

func MaxImageSize() int64 {
	if size := viper.GetInt64("media.max_size"); size > 0 {
		return size
	}
	return DefaultMaxImageBytes
}

// SaveImage stores an uploaded image under the media root and returns
// its path relative to that root.
func SaveImage(file *multipart.FileHeader) (string, error) {
	if file.Size > MaxImageSize() {
		return "", ErrImageTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mime, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("unable to detect uploaded file type: %v", err)
	} else if !mimetype.EqualsAny(mime.String(), ImageTypes...) {
		return "", ErrInvalidImage
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	name := path.Join(ImageUploadDir, uuid.NewString()+mime.Extension())
	fullPath := filepath.Join(MediaRoot(), filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("unable to create media directory: %v", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("unable to create media file: %v", err)
	}
	if err := writeMedia(dst, src); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("unable to save media file: %v", err)
	}

	log.Debug().Str("path", fullPath).Str("mime", mime.String()).Msg("Image uploaded.")
	return name, nil
}

// writeMedia copies src into dst and closes it, a failed close counts as a
// failed write.
func writeMedia(dst io.WriteCloser, src io.Reader) error {
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

func DeleteImage(name string) error {
	if len(name) == 0 {
		return nil
	}
	err := os.Remove(filepath.Join(MediaRoot(), filepath.FromSlash(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
