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

// cartRepository implements the domain.CartRepository interface using GORM.
// The cart is stored as individual line rows; the total is recomputed on read.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// FindByUser retrieves the cart belonging to a user.
func (repo *cartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var itemModels []*model.CartItemModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&itemModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find cart by user")
	}

	if len(itemModels) == 0 {
		return nil, repository.ErrCartNotFound
	}

	return toCartDomain(itemModels), nil
}

// Save replaces the user's cart contents with the given snapshot.
func (repo *cartRepository) Save(ctx context.Context, userID uuid.UUID, cart *entity.Cart) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItemModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to clear cart before save")
	}

	if cart.IsEmpty() {
		return nil
	}

	itemModels := make([]*model.CartItemModel, 0, len(cart.Items))
	for _, item := range cart.Items {
		itemModels = append(itemModels, fromCartItemDomain(userID, item))
	}

	if err := repo.db.WithContext(ctx).Create(&itemModels).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save cart")
	}

	return nil
}

// UpsertItem adds an item to the user's cart, or adds the quantity to an
// existing line for the same product.
func (repo *cartRepository) UpsertItem(ctx context.Context, userID uuid.UUID, item entity.CartItem) error {
	itemM := fromCartItemDomain(userID, item)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("cart_items.quantity + ?", item.Quantity),
				"price":    item.Price,
				"name":     item.Name,
				"image":    item.Image,
			}),
		}).
		Create(itemM).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert cart item")
	}

	return nil
}

// UpdateItemQuantity sets the quantity of an existing cart line.
func (repo *cartRepository) UpdateItemQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartItemModel{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update cart item quantity")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCartNotFound
	}

	return nil
}

// RemoveItem deletes a single product line from the user's cart.
func (repo *cartRepository) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItemModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to remove cart item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCartNotFound
	}

	return nil
}

// Clear removes every item from the user's cart.
func (repo *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItemModel{}).Error

	if err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}

// --- Mapper Functions ---

// toCartDomain assembles a domain Cart from its persisted line rows.
func toCartDomain(itemModels []*model.CartItemModel) *entity.Cart {
	cart := &entity.Cart{
		Items: make([]entity.CartItem, 0, len(itemModels)),
	}
	for _, itemM := range itemModels {
		cart.Items = append(cart.Items, entity.CartItem{
			ProductID: itemM.ProductID,
			Name:      itemM.Name,
			Image:     itemM.Image,
			Price:     itemM.Price,
			Quantity:  itemM.Quantity,
		})
		if itemM.UpdatedAt.After(cart.UpdatedAt) {
			cart.UpdatedAt = itemM.UpdatedAt
		}
	}
	cart.Recalculate()

	return cart
}

// fromCartItemDomain converts a domain CartItem to a GORM CartItemModel.
func fromCartItemDomain(userID uuid.UUID, item entity.CartItem) *model.CartItemModel {
	return &model.CartItemModel{
		UserID:    userID,
		ProductID: item.ProductID,
		Name:      item.Name,
		Image:     item.Image,
		Price:     item.Price,
		Quantity:  item.Quantity,
	}
}
