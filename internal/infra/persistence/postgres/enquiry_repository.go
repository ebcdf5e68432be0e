package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// enquiryRepository implements the domain.EnquiryRepository interface using GORM.
// Enquiries sit outside the transaction manager: they are append-only and
// never participate in multi-step writes.
type enquiryRepository struct {
	db *gorm.DB
}

// NewEnquiryRepository is the constructor for enquiryRepository.
func NewEnquiryRepository(db *gorm.DB) repository.EnquiryRepository {
	return &enquiryRepository{db: db}
}

// Create persists a new enquiry together with its item lines.
func (repo *enquiryRepository) Create(ctx context.Context, enquiry *entity.Enquiry) error {
	enquiryM := fromEnquiryDomain(enquiry)

	if err := repo.db.WithContext(ctx).Create(enquiryM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required enquiry information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create enquiry")
	}

	enquiry.CreatedAt = enquiryM.CreatedAt

	return nil
}

// FindByID retrieves a single enquiry by its unique ID, preloading its items.
func (repo *enquiryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Enquiry, error) {
	var enquiryM model.EnquiryModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&enquiryM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEnquiryNotFound
		}

		return nil, errors.Wrap(err, "failed to find enquiry by ID")
	}

	return toEnquiryDomain(&enquiryM), nil
}

// FindByMobile retrieves all enquiries submitted with a mobile number, newest first.
func (repo *enquiryRepository) FindByMobile(ctx context.Context, mobile string) ([]*entity.Enquiry, error) {
	var enquiryModels []*model.EnquiryModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("user_mobile = ?", mobile).
		Order("created_at DESC").
		Find(&enquiryModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find enquiries by mobile")
	}

	enquiries := make([]*entity.Enquiry, 0, len(enquiryModels))
	for _, enquiryM := range enquiryModels {
		enquiries = append(enquiries, toEnquiryDomain(enquiryM))
	}

	return enquiries, nil
}

// --- Mapper Functions ---

// toEnquiryDomain converts a GORM EnquiryModel to a domain Enquiry entity.
func toEnquiryDomain(data *model.EnquiryModel) *entity.Enquiry {
	if data == nil {
		return nil
	}

	items := make([]entity.EnquiryItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, entity.EnquiryItem{
			ProductID: itemM.ProductID,
			Name:      itemM.Name,
			Price:     itemM.Price,
			Quantity:  itemM.Quantity,
		})
	}

	return &entity.Enquiry{
		ID:            data.ID,
		UserName:      data.UserName,
		UserMobile:    data.UserMobile,
		UserEmail:     data.UserEmail,
		Items:         items,
		Subtotal:      data.Subtotal,
		Total:         data.Total,
		ContactMethod: entity.ContactMethod(data.ContactMethod),
		CreatedAt:     data.CreatedAt,
	}
}

// fromEnquiryDomain converts a domain Enquiry entity to a GORM EnquiryModel.
func fromEnquiryDomain(data *entity.Enquiry) *model.EnquiryModel {
	if data == nil {
		return nil
	}

	items := make([]model.EnquiryItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.EnquiryItemModel{
			EnquiryID: data.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return &model.EnquiryModel{
		ID:            data.ID,
		UserName:      data.UserName,
		UserMobile:    data.UserMobile,
		UserEmail:     data.UserEmail,
		Subtotal:      data.Subtotal,
		Total:         data.Total,
		ContactMethod: string(data.ContactMethod),
		Items:         items,
	}
}
