package catalog

import (
	"strings"

	"storefront/internal/domain/entity"
)

// Transformer normalizes raw upstream product records into the
// display-ready entity.Product shape. It is pure: no I/O, no clock.
type Transformer struct {
	imageBaseURL   string
	uploadsSegment string
}

// NewTransformer builds a Transformer. imageBaseURL is prefixed to
// relative image paths; uploadsSegment (e.g. "/uploads/") is inserted
// between the two when the relative path does not already carry it.
func NewTransformer(imageBaseURL, uploadsSegment string) *Transformer {
	if uploadsSegment == "" {
		uploadsSegment = "/uploads/"
	}

	return &Transformer{
		imageBaseURL:   strings.TrimRight(imageBaseURL, "/"),
		uploadsSegment: "/" + strings.Trim(uploadsSegment, "/") + "/",
	}
}

// Transform maps one raw product into its display shape: resolved
// category, absolute image URLs, discount-applied price, stock flag,
// brand fallback, and a rating list regardless of the source shape.
func (t *Transformer) Transform(raw *RawProduct) entity.Product {
	category := DisplayCategory(raw)
	price, discount := ResolvePrice(raw)

	brand := strings.TrimSpace(raw.Brand)
	if brand == "" {
		brand = category
	}

	ratings := make([]entity.Rating, 0, len(raw.Rating))
	for _, r := range raw.Rating {
		ratings = append(ratings, entity.Rating{Value: r.Value, Comment: r.Comment})
	}

	variants := make([]entity.BrandVariant, 0, len(raw.BrandVariants))
	for _, v := range raw.BrandVariants {
		variants = append(variants, entity.BrandVariant{
			Name:     v.Name,
			Price:    v.Price,
			Discount: v.Discount,
		})
	}

	return entity.Product{
		ID:            raw.ProductID(),
		Name:          raw.DisplayName(),
		Category:      category,
		Images:        t.AbsoluteImageURLs(raw.Images),
		Price:         price,
		MRP:           raw.MRP,
		Discount:      discount,
		Stock:         raw.Stock,
		InStock:       raw.Stock == nil || *raw.Stock > 0,
		HasVariants:   raw.HasVariants,
		BrandVariants: variants,
		Brand:         brand,
		Ratings:       ratings,
	}
}

// AbsoluteImageURLs rewrites each image path into an absolute URL.
// Already absolute URLs pass through untouched; relative paths are
// prefixed with the configured base URL, with the uploads segment
// inserted when the path does not already contain it.
func (t *Transformer) AbsoluteImageURLs(images FlexStrings) []string {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		img = strings.TrimSpace(img)
		if img == "" {
			continue
		}
		urls = append(urls, t.absoluteImageURL(img))
	}

	return urls
}

func (t *Transformer) absoluteImageURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	trimmed := strings.TrimLeft(path, "/")
	if strings.HasPrefix("/"+trimmed, t.uploadsSegment) {
		return t.imageBaseURL + "/" + trimmed
	}

	return t.imageBaseURL + t.uploadsSegment + trimmed
}

// ResolvePrice returns the effective price and discount percentage for
// summary display. When the product has variants, the first variant's
// pricing wins; otherwise the product's own fields are used. The
// returned price already has the discount applied; a zero discount
// returns the base price exactly.
func ResolvePrice(raw *RawProduct) (price, discount float64) {
	price, discount = raw.Price, raw.Discount
	if raw.HasVariants && len(raw.BrandVariants) > 0 {
		price, discount = raw.BrandVariants[0].Price, raw.BrandVariants[0].Discount
	}

	return ApplyDiscount(price, discount), discount
}

// ApplyDiscount applies a percentage discount to a price. A
// non-positive discount returns the price unchanged, with no rounding
// applied.
func ApplyDiscount(price, discount float64) float64 {
	if discount > 0 {
		return price - price*discount/100
	}

	return price
}

// DisplayCategory derives the display category for a raw product by
// priority:
//
//  1. the nested parent category object's title/englishName/slug;
//  2. the category object's own title if it is itself a parent;
//  3. the category object's own title as last resort;
//  4. the flat category string field;
//  5. the category object's title/englishName when only that is set.
//
// The result is title-cased and trimmed; empty when nothing resolves.
func DisplayCategory(raw *RawProduct) string {
	if ref := raw.CategoryID; ref != nil {
		if ref.Parent != nil {
			if name := firstNonEmpty(ref.Parent.Title, ref.Parent.EnglishName, ref.Parent.Slug); name != "" {
				return DisplayTitle(name)
			}
		}
		if ref.IsParent && ref.Title != "" {
			return DisplayTitle(ref.Title)
		}
		if name := firstNonEmpty(ref.Title, ref.EnglishName); name != "" {
			return DisplayTitle(name)
		}
	}

	if ref := raw.Category; ref != nil {
		if ref.Name != "" {
			return DisplayTitle(ref.Name)
		}
		if name := firstNonEmpty(ref.Title, ref.EnglishName); name != "" {
			return DisplayTitle(name)
		}
	}

	return ""
}

// TopLevelName resolves the top-level display name for a category
// record: its own title when it is a parent, otherwise its parent's
// title. Categories used for filtering must resolve through this.
func TopLevelName(cat *RawCategory) string {
	if !cat.IsParent && cat.ParentID != nil {
		if name := firstNonEmpty(cat.ParentID.Title, cat.ParentID.EnglishName, cat.ParentID.Slug); name != "" {
			return DisplayTitle(name)
		}
	}

	return DisplayTitle(firstNonEmpty(cat.Title, cat.EnglishName, cat.Slug))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}

	return ""
}
