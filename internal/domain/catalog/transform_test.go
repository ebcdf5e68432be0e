package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransformer() *Transformer {
	return NewTransformer("https://cdn.example.com", "/uploads/")
}

func intPtr(v int) *int {
	return &v
}

func TestTransform_VariantPriceWinsOverOwnPrice(t *testing.T) {
	raw := &RawProduct{
		ID:          "p1",
		Name:        "Submersible Pump",
		Price:       500,
		HasVariants: true,
		BrandVariants: []RawVariant{
			{Name: "Crompton", Price: 1000, Discount: 10},
			{Name: "Kirloskar", Price: 1200, Discount: 5},
		},
	}

	product := newTestTransformer().Transform(raw)

	// 1000 - 10% = 900; the product's own 500 must not leak through.
	assert.Equal(t, 900.0, product.Price)
	assert.Equal(t, 10.0, product.Discount)
	assert.True(t, product.HasVariants)
	require.Len(t, product.BrandVariants, 2)
	assert.Equal(t, "Crompton", product.BrandVariants[0].Name)
}

func TestTransform_ZeroDiscountKeepsExactPrice(t *testing.T) {
	raw := &RawProduct{ID: "p2", Name: "Control Panel", Price: 1234.56, Discount: 0}

	product := newTestTransformer().Transform(raw)

	assert.Equal(t, 1234.56, product.Price)
	assert.Equal(t, 0.0, product.Discount)
}

func TestTransform_OwnDiscountApplied(t *testing.T) {
	raw := &RawProduct{ID: "p3", Name: "Monoblock Pump", Price: 2000, Discount: 25}

	product := newTestTransformer().Transform(raw)

	assert.Equal(t, 1500.0, product.Price)
}

func TestTransform_EmptyVariantListFallsBackToOwnPrice(t *testing.T) {
	raw := &RawProduct{ID: "p4", Name: "Pump", Price: 750, Discount: 0, HasVariants: true}

	product := newTestTransformer().Transform(raw)

	assert.Equal(t, 750.0, product.Price)
}

func TestTransform_StockFlags(t *testing.T) {
	tests := []struct {
		name    string
		stock   *int
		inStock bool
	}{
		{name: "untracked stock counts as in stock", stock: nil, inStock: true},
		{name: "positive stock", stock: intPtr(3), inStock: true},
		{name: "zero stock", stock: intPtr(0), inStock: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &RawProduct{ID: "p", Name: "Pump", Stock: tt.stock}
			product := newTestTransformer().Transform(raw)
			assert.Equal(t, tt.inStock, product.InStock)
		})
	}
}

func TestTransform_ImageURLs(t *testing.T) {
	raw := &RawProduct{
		ID:   "p5",
		Name: "Pump",
		Images: FlexStrings{
			"https://elsewhere.example.com/pic.jpg",
			"pumps/pic2.jpg",
			"/uploads/pic3.jpg",
			"  ",
		},
	}

	product := newTestTransformer().Transform(raw)

	assert.Equal(t, []string{
		"https://elsewhere.example.com/pic.jpg",
		"https://cdn.example.com/uploads/pumps/pic2.jpg",
		"https://cdn.example.com/uploads/pic3.jpg",
	}, product.Images)
}

func TestTransform_BrandFallsBackToCategory(t *testing.T) {
	raw := &RawProduct{
		ID:       "p6",
		Name:     "Pump",
		Category: &RawCategoryRef{Name: "submersiblePumps"},
	}

	product := newTestTransformer().Transform(raw)

	assert.Equal(t, "Submersible Pumps", product.Brand)
	assert.Equal(t, "Submersible Pumps", product.Category)
}

func TestTransform_ExplicitBrandWins(t *testing.T) {
	raw := &RawProduct{
		ID:       "p7",
		Name:     "Pump",
		Brand:    "Crompton",
		Category: &RawCategoryRef{Name: "pumps"},
	}

	product := newTestTransformer().Transform(raw)

	assert.Equal(t, "Crompton", product.Brand)
}

func TestDisplayCategory_PriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		raw  RawProduct
		want string
	}{
		{
			name: "nested parent object wins",
			raw: RawProduct{
				CategoryID: &RawCategoryRef{
					Title:  "childCategory",
					Parent: &RawCategoryRef{Title: "openWellPumps"},
				},
			},
			want: "Open Well Pumps",
		},
		{
			name: "parent falls back to englishName then slug",
			raw: RawProduct{
				CategoryID: &RawCategoryRef{
					Parent: &RawCategoryRef{Slug: "borewell-pumps"},
				},
			},
			want: "Borewell-pumps",
		},
		{
			name: "own title when category object is itself a parent",
			raw: RawProduct{
				CategoryID: &RawCategoryRef{Title: "controlPanels", IsParent: true},
			},
			want: "Control Panels",
		},
		{
			name: "own title as last resort",
			raw: RawProduct{
				CategoryID: &RawCategoryRef{Title: "accessories"},
			},
			want: "Accessories",
		},
		{
			name: "flat category string",
			raw: RawProduct{
				Category: &RawCategoryRef{Name: "sparesAndService"},
			},
			want: "Spares And Service",
		},
		{
			name: "nested category object title",
			raw: RawProduct{
				Category: &RawCategoryRef{EnglishName: "motors"},
			},
			want: "Motors",
		},
		{
			name: "string parent id alone does not resolve",
			raw: RawProduct{
				CategoryID: &RawCategoryRef{Parent: &RawCategoryRef{Name: "64fa01"}},
			},
			want: "",
		},
		{
			name: "nothing resolves",
			raw:  RawProduct{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayCategory(&tt.raw))
		})
	}
}

func TestTopLevelName(t *testing.T) {
	parent := &RawCategory{Title: "openWellPumps", IsParent: true}
	assert.Equal(t, "Open Well Pumps", TopLevelName(parent))

	child := &RawCategory{
		Title:    "smallPumps",
		ParentID: &RawCategoryRef{Title: "openWellPumps"},
	}
	assert.Equal(t, "Open Well Pumps", TopLevelName(child))

	orphanChild := &RawCategory{Title: "smallPumps"}
	assert.Equal(t, "Small Pumps", TopLevelName(orphanChild))
}

func TestRawProduct_DecodeHeterogeneousShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		check   func(t *testing.T, p RawProduct)
	}{
		{
			name:    "numeric id and string image",
			payload: `{"id": 42, "name": "Pump", "images": "pic.jpg"}`,
			check: func(t *testing.T, p RawProduct) {
				assert.Equal(t, "42", p.ProductID())
				assert.Equal(t, FlexStrings{"pic.jpg"}, p.Images)
			},
		},
		{
			name:    "mongo id fallback",
			payload: `{"_id": "64fa01", "title": "Pump"}`,
			check: func(t *testing.T, p RawProduct) {
				assert.Equal(t, "64fa01", p.ProductID())
				assert.Equal(t, "Pump", p.DisplayName())
			},
		},
		{
			name:    "image list",
			payload: `{"id": "p", "images": ["a.jpg", "b.jpg"]}`,
			check: func(t *testing.T, p RawProduct) {
				assert.Equal(t, FlexStrings{"a.jpg", "b.jpg"}, p.Images)
			},
		},
		{
			name:    "null images",
			payload: `{"id": "p", "images": null}`,
			check: func(t *testing.T, p RawProduct) {
				assert.Nil(t, p.Images)
			},
		},
		{
			name:    "flat category string",
			payload: `{"id": "p", "category": "pumps"}`,
			check: func(t *testing.T, p RawProduct) {
				require.NotNil(t, p.Category)
				assert.Equal(t, "pumps", p.Category.Name)
			},
		},
		{
			name:    "category object with nested parent",
			payload: `{"id": "p", "categoryId": {"title": "small", "parentId": {"title": "pumps", "isParent": true}}}`,
			check: func(t *testing.T, p RawProduct) {
				require.NotNil(t, p.CategoryID)
				require.NotNil(t, p.CategoryID.Parent)
				assert.Equal(t, "pumps", p.CategoryID.Parent.Title)
			},
		},
		{
			name:    "category object with string parent id",
			payload: `{"id": "p", "categoryId": {"title": "small", "parentId": "64fa01"}}`,
			check: func(t *testing.T, p RawProduct) {
				require.NotNil(t, p.CategoryID.Parent)
				assert.Equal(t, "64fa01", p.CategoryID.Parent.Name)
			},
		},
		{
			name:    "scalar rating",
			payload: `{"id": "p", "rating": 4.5}`,
			check: func(t *testing.T, p RawProduct) {
				require.Len(t, p.Rating, 1)
				assert.Equal(t, 4.5, p.Rating[0].Value)
			},
		},
		{
			name:    "rating entry list",
			payload: `{"id": "p", "rating": [{"value": 5, "comment": "great"}, 3]}`,
			check: func(t *testing.T, p RawProduct) {
				require.Len(t, p.Rating, 2)
				assert.Equal(t, 5.0, p.Rating[0].Value)
				assert.Equal(t, "great", p.Rating[0].Comment)
				assert.Equal(t, 3.0, p.Rating[1].Value)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p RawProduct
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &p))
			tt.check(t, p)
		})
	}
}
