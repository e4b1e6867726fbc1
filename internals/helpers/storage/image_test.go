package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUploader struct {
	objects map[string][]byte
}

func (m *memUploader) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	m.objects[key] = data
	return "mem://" + key, nil
}

func (m *memUploader) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memUploader) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, "mem://") {
		return "", false
	}
	return strings.TrimPrefix(url, "mem://"), true
}

func pngBytes(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestToWebPDownscales(t *testing.T) {
	out, err := ToWebP(pngBytes(t, 3200, 800))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, MaxImageSide, cfg.Width)
	assert.Equal(t, 400, cfg.Height)
}

func TestToWebPRejectsGarbage(t *testing.T) {
	_, err := ToWebP([]byte("not an image"))
	assert.Error(t, err)
	_, err = ToWebP(nil)
	assert.Error(t, err)
}

func TestImageKey(t *testing.T) {
	k := ImageKey("clubs", "abc", "My Logo!.PNG")
	assert.True(t, strings.HasPrefix(k, "clubs/abc/"))
	assert.True(t, strings.HasSuffix(k, "-my_logo_.webp"))
}

func TestDeleteByURL(t *testing.T) {
	up := &memUploader{objects: map[string][]byte{"clubs/a.webp": {1}}}
	require.NoError(t, DeleteByURL(context.Background(), up, "https://elsewhere/x.webp"))
	assert.Len(t, up.objects, 1)
	require.NoError(t, DeleteByURL(context.Background(), up, "mem://clubs/a.webp"))
	assert.Empty(t, up.objects)
	assert.NoError(t, DeleteByURL(context.Background(), nil, "mem://x"))
}
