package share

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF frames
	_ "image/jpeg" // register JPEG frames
	_ "image/png"  // register PNG frames

	"github.com/makiuchi-d/gozxing"
	gozxingqr "github.com/makiuchi-d/gozxing/qrcode"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/osse101/armory/internal/domain"
)

// RenderQR renders payload as a square PNG of the given pixel size.
// Low error correction keeps the module count small for the payload length,
// at the cost of tolerating less damage when scanned.
func RenderQR(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	size = min(max(size, MinQRSize), MaxQRSize)

	png, err := qrcode.Encode(payload, qrcode.Low, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

// ScanImage finds and decodes a QR code in img and returns its text
func ScanImage(img image.Image) (string, error) {
	if img == nil {
		return "", domain.ErrNoCodeFound
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrNoCodeFound, err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := gozxingqr.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		// Not found, checksum and format failures all mean no readable code
		return "", fmt.Errorf("%w: %w", domain.ErrNoCodeFound, err)
	}
	return result.GetText(), nil
}

// DecodeImage parses an encoded PNG, JPEG or GIF frame
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable image: %w", domain.ErrNoCodeFound, err)
	}
	return img, nil
}

// ScanBytes decodes an encoded image and scans it for a QR code
func ScanBytes(data []byte) (string, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return "", err
	}
	return ScanImage(img)
}

// DecodeFrame scans a camera frame and decodes the share payload it carries
func (c *Codec) DecodeFrame(img image.Image) (*domain.Weapon, error) {
	payload, err := ScanImage(img)
	if err != nil {
		return nil, err
	}
	return c.Decode(payload)
}
