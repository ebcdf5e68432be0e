package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// EnquiryHandler holds dependencies for product enquiry handlers.
// Enquiries are open to guests, so no authentication is applied.
type EnquiryHandler struct {
	uc     usecase.EnquiryUsecase
	logger *slog.Logger
}

// NewEnquiryHandler is the constructor for EnquiryHandler, injected by Fx.
func NewEnquiryHandler(uc usecase.EnquiryUsecase, logger *slog.Logger) *EnquiryHandler {
	return &EnquiryHandler{
		uc:     uc,
		logger: logger,
	}
}

// enquiryResponse shapes the creation response. The WhatsApp QR code, when
// generated, is delivered inline as base64-encoded PNG.
type enquiryResponse struct {
	Enquiry any    `json:"enquiry"`
	QRCode  string `json:"qrCode,omitempty"`
}

// CreateEnquiry handles submitting a product enquiry.
func (h *EnquiryHandler) CreateEnquiry(c echo.Context) error {
	var input *usecase.CreateEnquiryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid enquiry input")
	}

	output, err := h.uc.CreateEnquiry(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := enquiryResponse{Enquiry: output.Enquiry}
	if len(output.QRCode) > 0 {
		resp.QRCode = base64.StdEncoding.EncodeToString(output.QRCode)
	}

	return response.Success(c, http.StatusCreated, resp, "Enquiry submitted successfully")
}

// ListEnquiries handles listing the enquiries submitted with a mobile number.
func (h *EnquiryHandler) ListEnquiries(c echo.Context) error {
	mobile := c.QueryParam("mobile")
	if mobile == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Mobile number is required")
	}

	enquiries, err := h.uc.ListEnquiriesByMobile(c.Request().Context(), mobile)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, enquiries, "Enquiries retrieved successfully")
}
