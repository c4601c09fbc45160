package imagepkg

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	minQRSize = 64
	maxQRSize = 1024
)

// ShareQRPNG returns PNG bytes of a QR code pointing at link, typically the
// download URL of a stored wallpaper. size is clamped to [64, 1024].
func ShareQRPNG(link string, size int) ([]byte, error) {
	if link == "" {
		return nil, fmt.Errorf("qr: empty content")
	}
	size = min(max(size, minQRSize), maxQRSize)
	b, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}
	return b, nil
}
