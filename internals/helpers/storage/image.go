package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	MaxImageSide  = 1600
	MaxUploadSize = 8 << 20
	webpQuality   = 85
)

// ToWebP decodes jpeg/png/webp, fits it in MaxImageSide and re-encodes as webp.
func ToWebP(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	var (
		img image.Image
		err error
	)
	if strings.Contains(http.DetectContentType(data), "webp") {
		img, err = webp.Decode(bytes.NewReader(data))
	} else {
		img, err = imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	}
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > MaxImageSide || b.Dy() > MaxImageSide {
		img = imaging.Fit(img, MaxImageSide, MaxImageSide, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return buf.Bytes(), nil
}

// ImageKey builds "<folder>/<owner>/<date>-<uuid>-<name>.webp".
func ImageKey(folder, owner, filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, base)
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s/%s/%s-%s-%s.webp", folder, owner, time.Now().Format("20060102"), uuid.NewString()[:8], base)
}

// UploadImage converts a multipart image to webp and stores it.
func UploadImage(ctx context.Context, up Uploader, folder, owner string, fh *multipart.FileHeader) (string, error) {
	if up == nil {
		return "", ErrDisabled
	}
	if fh.Size > MaxUploadSize {
		return "", fmt.Errorf("image too large (%d KB)", fh.Size/1024)
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	out, err := ToWebP(raw)
	if err != nil {
		return "", err
	}
	return up.Put(ctx, ImageKey(folder, owner, fh.Filename), "image/webp", out)
}

// DeleteByURL removes an object we uploaded earlier. Unknown URLs are ignored.
func DeleteByURL(ctx context.Context, up Uploader, url string) error {
	if up == nil || url == "" {
		return nil
	}
	key, ok := up.KeyFromURL(url)
	if !ok {
		return nil
	}
	return up.Delete(ctx, key)
}
