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
	"gorm.io/gorm/clause"
)

// wishlistRepository implements the domain.WishlistRepository interface
// using GORM. Saved products are stored as individual rows.
type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository is the constructor for wishlistRepository.
func NewWishlistRepository(db *gorm.DB) repository.WishlistRepository {
	return &wishlistRepository{db: db}
}

// FindByUser retrieves the wishlist belonging to a user.
func (repo *wishlistRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Wishlist, error) {
	var itemModels []*model.WishlistItemModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&itemModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find wishlist by user")
	}

	if len(itemModels) == 0 {
		return nil, repository.ErrWishlistNotFound
	}

	return toWishlistDomain(itemModels), nil
}

// AddItem saves a product to the user's wishlist. A product already saved
// gets its snapshot refreshed instead of a duplicate row.
func (repo *wishlistRepository) AddItem(ctx context.Context, userID uuid.UUID, item entity.WishlistItem) error {
	itemM := fromWishlistItemDomain(userID, item)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"price": item.Price,
				"name":  item.Name,
				"image": item.Image,
			}),
		}).
		Create(itemM).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save wishlist item")
	}

	return nil
}

// RemoveItem deletes a saved product from the user's wishlist.
func (repo *wishlistRepository) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.WishlistItemModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to remove wishlist item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrWishlistNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toWishlistDomain assembles a domain Wishlist from its persisted rows.
func toWishlistDomain(itemModels []*model.WishlistItemModel) *entity.Wishlist {
	wishlist := &entity.Wishlist{
		Items: make([]entity.WishlistItem, 0, len(itemModels)),
	}
	for _, itemM := range itemModels {
		wishlist.Items = append(wishlist.Items, entity.WishlistItem{
			ProductID: itemM.ProductID,
			Name:      itemM.Name,
			Image:     itemM.Image,
			Price:     itemM.Price,
		})
		if itemM.UpdatedAt.After(wishlist.UpdatedAt) {
			wishlist.UpdatedAt = itemM.UpdatedAt
		}
	}

	return wishlist
}

// fromWishlistItemDomain converts a domain WishlistItem to a GORM model.
func fromWishlistItemDomain(userID uuid.UUID, item entity.WishlistItem) *model.WishlistItemModel {
	return &model.WishlistItemModel{
		UserID:    userID,
		ProductID: item.ProductID,
		Name:      item.Name,
		Image:     item.Image,
		Price:     item.Price,
	}
}
