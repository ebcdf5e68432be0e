// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

var mobileNumberPattern = regexp.MustCompile(`^[0-9]{10}$`)

// enquiryService implements the EnquiryUsecase interface.
type enquiryService struct {
	enquiryRepo   repository.EnquiryRepository
	qrcodeService service.QRCodeService
	publisher     service.EventPublisher
	logger        *slog.Logger
}

// EnquiryServiceParams holds dependencies for EnquiryService, injected by Fx.
type EnquiryServiceParams struct {
	fx.In

	EnquiryRepo   repository.EnquiryRepository
	QRCodeService service.QRCodeService
	Publisher     service.EventPublisher
	Logger        *slog.Logger
}

// NewEnquiryService creates a new enquiry service instance
func NewEnquiryService(params EnquiryServiceParams) usecase.EnquiryUsecase {
	return &enquiryService{
		enquiryRepo:   params.EnquiryRepo,
		qrcodeService: params.QRCodeService,
		publisher:     params.Publisher,
		logger:        params.Logger,
	}
}

// CreateEnquiry validates and stores a product enquiry. WhatsApp enquiries
// additionally get a QR code encoding a prefilled chat message.
func (srv *enquiryService) CreateEnquiry(ctx context.Context, input *usecase.CreateEnquiryInput) (*usecase.CreateEnquiryOutput, error) {
	if !mobileNumberPattern.MatchString(input.UserMobile) {
		return nil, domainerrors.ErrInvalidMobileNumber.WrapMessage("enquiry rejected")
	}
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("enquiry must contain at least one item")
	}
	if !input.ContactMethod.Valid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown contact method")
	}

	items := make([]entity.EnquiryItem, 0, len(input.Items))
	var subtotal float64
	for _, it := range input.Items {
		if it.Quantity <= 0 {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("item quantity must be positive")
		}
		items = append(items, entity.EnquiryItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
		subtotal += it.Price * float64(it.Quantity)
	}

	enquiry := &entity.Enquiry{
		ID:            uuid.New(),
		UserName:      strings.TrimSpace(input.UserName),
		UserMobile:    input.UserMobile,
		UserEmail:     strings.TrimSpace(input.UserEmail),
		Items:         items,
		Subtotal:      subtotal,
		Total:         subtotal,
		ContactMethod: input.ContactMethod,
		CreatedAt:     time.Now(),
	}

	if err := srv.enquiryRepo.Create(ctx, enquiry); err != nil {
		srv.logger.Error("Failed to store enquiry", "error", err, "mobile", enquiry.UserMobile)

		return nil, errors.Wrap(err, "failed to store enquiry")
	}

	out := &usecase.CreateEnquiryOutput{Enquiry: enquiry}

	if enquiry.ContactMethod == entity.ContactMethodWhatsApp {
		qr, err := srv.qrcodeService.GenerateWhatsAppQR(srv.whatsAppMessage(enquiry))
		if err != nil {
			// The enquiry is already stored; the caller just loses the QR shortcut.
			srv.logger.Warn("Failed to generate WhatsApp QR code", "error", err, "enquiryID", enquiry.ID)
		} else {
			out.QRCode = qr
		}
	}

	if err := srv.publisher.PublishEvent(ctx, &service.StorefrontEvent{
		Type:      service.EventTypeEnquiryCreated,
		EntityID:  enquiry.ID.String(),
		Mobile:    enquiry.UserMobile,
		Total:     enquiry.Total,
		ItemCount: len(enquiry.Items),
	}); err != nil {
		srv.logger.Warn("Failed to publish enquiry created event", "error", err, "enquiryID", enquiry.ID)
	}
	srv.logger.Info("Enquiry created", "enquiryID", enquiry.ID, "itemCount", len(enquiry.Items))

	return out, nil
}

// ListEnquiriesByMobile returns all enquiries submitted with a mobile number.
func (srv *enquiryService) ListEnquiriesByMobile(ctx context.Context, mobile string) ([]*entity.Enquiry, error) {
	if !mobileNumberPattern.MatchString(mobile) {
		return nil, domainerrors.ErrInvalidMobileNumber.WrapMessage("enquiry lookup rejected")
	}

	enquiries, err := srv.enquiryRepo.FindByMobile(ctx, mobile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find enquiries by mobile")
	}

	return enquiries, nil
}

// whatsAppMessage renders the prefilled chat text for a WhatsApp enquiry.
func (srv *enquiryService) whatsAppMessage(enquiry *entity.Enquiry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi, I would like to enquire about the following items:\n")
	for _, it := range enquiry.Items {
		fmt.Fprintf(&b, "- %s x%d (%.2f)\n", it.Name, it.Quantity, it.Price)
	}
	fmt.Fprintf(&b, "Total: %.2f\nName: %s\nMobile: %s", enquiry.Total, enquiry.UserName, enquiry.UserMobile)

	return b.String()
}
