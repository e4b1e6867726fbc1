package qr

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	g := NewGenerator("secret")
	ci := CheckIn{ReservationID: uuid.New(), UserID: uuid.New(), Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}

	tok, err := g.Token(ci)
	require.NoError(t, err)

	got, err := g.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, ci.ReservationID, got.ReservationID)
	assert.Equal(t, ci.UserID, got.UserID)
	assert.True(t, ci.Date.Equal(got.Date))
}

func TestVerifyRejectsTampering(t *testing.T) {
	g := NewGenerator("secret")
	tok, err := g.Token(CheckIn{ReservationID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)

	_, err = NewGenerator("other").Verify(tok)
	assert.ErrorIs(t, err, ErrBadToken)
	_, err = g.Verify("x" + tok)
	assert.ErrorIs(t, err, ErrBadToken)
	_, err = g.Verify("no-dot")
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestPNG(t *testing.T) {
	g := NewGenerator("secret")
	b, err := g.PNG(CheckIn{ReservationID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}
