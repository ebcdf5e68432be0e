package entity

// Product is the display-ready product shape served to clients after
// the raw upstream record has been through the catalog transformer:
// images are absolute URLs, the category is resolved to its top-level
// display name, and Price already has any discount applied.
type Product struct {
	ID            string  // Upstream identifier; opaque to this service.
	Name          string
	Category      string   // Resolved top-level display category name.
	Images        []string // Absolute image URLs.
	Price         float64  // Final price with discount applied.
	MRP           float64  // Maximum retail price before discount.
	Discount      float64  // Discount percentage actually applied.
	Stock         *int     // Units in stock; nil when upstream does not track stock.
	InStock       bool     // True when Stock is nil or positive.
	HasVariants   bool
	BrandVariants []BrandVariant
	Brand         string // Explicit brand, or the category name as fallback.
	Ratings       []Rating
}

// BrandVariant is an alternate configuration of a product (a different
// brand or capacity) with its own pricing. Summary displays use the
// first variant's pricing when variants exist.
type BrandVariant struct {
	Name     string
	Price    float64
	Discount float64
}

// Rating is a single customer rating entry. Upstream sends either a
// bare number or a list of entries; the transformer always produces a
// list.
type Rating struct {
	Value   float64
	Comment string
}
