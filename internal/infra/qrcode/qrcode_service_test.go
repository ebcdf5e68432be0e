package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWhatsAppQR(t *testing.T) {
	svc := NewQRCodeService("+919876543210", 256, "M")

	png, err := svc.GenerateWhatsAppQR("Hi, I would like to enquire about Submersible Pump x2")

	require.NoError(t, err)
	require.NotEmpty(t, png)
	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, png[:4])
}

func TestGenerateWhatsAppQR_DefaultsApplied(t *testing.T) {
	svc := NewQRCodeService("919876543210", 0, "bogus-level")

	png, err := svc.GenerateWhatsAppQR("hello")

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
