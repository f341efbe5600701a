package share

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/armory/internal/domain"
)

func TestRenderQR_ScanRoundTrip(t *testing.T) {
	const payload = "[3,1,1,20,85,20,1,0]"

	data, err := RenderQR(payload, 256)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())

	got, err := ScanImage(img)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	got, err = ScanBytes(data)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestRenderQR_ClampsSize(t *testing.T) {
	data, err := RenderQR("[3,1,1,20,85,20,1,0]", 10)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, MinQRSize, img.Bounds().Dx())
}

func TestCodec_DecodeFrame(t *testing.T) {
	codec := newTestCodec(t)

	data, err := RenderQR("[3,2,5,40,90,22,4,0]", 256)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	w, err := codec.DecodeFrame(img)
	require.NoError(t, err)
	assert.Equal(t, "Legendary Revolver", w.Name)
	assert.True(t, w.IsReceived)
}

func TestScanImage_NoCode(t *testing.T) {
	blank := image.NewGray(image.Rect(0, 0, 120, 120))
	for i := range blank.Pix {
		blank.Pix[i] = 255
	}
	blank.Set(60, 60, color.Black)

	_, err := ScanImage(blank)
	assert.ErrorIs(t, err, domain.ErrNoCodeFound)

	_, err = ScanImage(nil)
	assert.ErrorIs(t, err, domain.ErrNoCodeFound)

	_, err = ScanBytes([]byte("definitely not an image"))
	assert.ErrorIs(t, err, domain.ErrNoCodeFound)
}
