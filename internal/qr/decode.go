package qr

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for scanned images
	_ "image/png"
	"os"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
)

// DecodeFile reads a QR code from an image file and returns its
// classified payload. The file handle is closed on every exit path.
func DecodeFile(path string) (ScanResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ScanResult{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return ScanResult{}, fmt.Errorf("failed to decode image: %w", err)
	}

	return DecodeImage(img)
}

// DecodeImage extracts a QR payload from an in-memory image.
func DecodeImage(img image.Image) (ScanResult, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return ScanResult{}, fmt.Errorf("failed to prepare image: %w", err)
	}

	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return ScanResult{}, fmt.Errorf("no qr code found: %w", err)
	}

	return Classify(result.GetText()), nil
}
