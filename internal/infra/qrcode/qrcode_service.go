// Package qrcode generates QR codes for the WhatsApp enquiry flow.
package qrcode

import (
	"fmt"
	"net/url"
	"strings"

	"storefront/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	whatsAppNumber       string
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(whatsAppNumber string, size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = 256
	}

	return &qrcodeService{
		whatsAppNumber:       strings.TrimPrefix(whatsAppNumber, "+"),
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateWhatsAppQR generates a PNG QR code encoding a wa.me chat link
// with the given prefilled message.
func (s *qrcodeService) GenerateWhatsAppQR(message string) ([]byte, error) {
	link := fmt.Sprintf("https://wa.me/%s?text=%s", s.whatsAppNumber, url.QueryEscape(message))

	png, err := qrcode.Encode(link, s.errorCorrectionLevel, s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode WhatsApp QR code: %w", err)
	}

	return png, nil
}
