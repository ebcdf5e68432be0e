package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GenerateWhatsAppQR generates a QR code image encoding a WhatsApp
	// chat link with the given prefilled message.
	GenerateWhatsAppQR(message string) ([]byte, error)
}
