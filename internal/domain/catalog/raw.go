package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// The upstream commerce API is loose about shapes: product IDs arrive
// as strings or numbers, images as a string or a list, categories as a
// flat string or a nested object, ratings as a bare number or a list of
// entries. Each loose field gets an explicit type with its own
// UnmarshalJSON so the variance is handled exhaustively in one place
// instead of ad hoc checks scattered across call sites.

// FlexID decodes a JSON string or number into a string identifier.
type FlexID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""

		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, "id: decode string")
		}
		*id = FlexID(strings.TrimSpace(s))

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "id: decode number")
	}
	*id = FlexID(n.String())

	return nil
}

// FlexStrings decodes a JSON string, list of strings, or null into a
// slice of strings. A bare string becomes a one-element slice; null and
// the empty string become nil.
type FlexStrings []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = nil

		return nil
	}

	switch data[0] {
	case '"':
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return errors.Wrap(err, "strings: decode string")
		}
		if strings.TrimSpace(one) == "" {
			*s = nil

			return nil
		}
		*s = FlexStrings{one}

		return nil
	case '[':
		var many []string
		if err := json.Unmarshal(data, &many); err != nil {
			return errors.Wrap(err, "strings: decode list")
		}
		*s = FlexStrings(many)

		return nil
	default:
		return errors.Errorf("strings: unsupported JSON shape %q", string(data[0]))
	}
}

// RawCategoryRef decodes a category reference that is either a bare
// string or an object. For a bare string only Name is set; for an
// object the structured fields are set and Name stays empty.
type RawCategoryRef struct {
	Name        string          // Set when upstream sent a bare string.
	Title       string          `json:"title"`
	EnglishName string          `json:"englishName"`
	Slug        string          `json:"slug"`
	IsParent    bool            `json:"isParent"`
	Parent      *RawCategoryRef `json:"parentId"` // Populated parent object, or string parent ID in Parent.Name.
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *RawCategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*c = RawCategoryRef{}

		return nil
	}

	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return errors.Wrap(err, "category: decode string")
		}
		*c = RawCategoryRef{Name: strings.TrimSpace(name)}

		return nil
	}

	// Alias strips the custom unmarshaler to avoid infinite recursion.
	type alias RawCategoryRef
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return errors.Wrap(err, "category: decode object")
	}
	*c = RawCategoryRef(decoded)

	return nil
}

// RawRating is a single rating entry as sent by upstream.
type RawRating struct {
	Value   float64 `json:"value"`
	Comment string  `json:"comment"`
}

// UnmarshalJSON accepts either a bare number or an object entry.
func (r *RawRating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*r = RawRating{}

		return nil
	}

	if data[0] == '{' {
		type alias RawRating
		var decoded alias
		if err := json.Unmarshal(data, &decoded); err != nil {
			return errors.Wrap(err, "rating: decode object")
		}
		*r = RawRating(decoded)

		return nil
	}

	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return errors.Wrap(err, "rating: decode number")
	}
	*r = RawRating{Value: value}

	return nil
}

// FlexRatings decodes a bare number, a list of entries, a single
// object, or null into a list of rating entries.
type FlexRatings []RawRating

// UnmarshalJSON implements json.Unmarshaler.
func (r *FlexRatings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*r = nil

		return nil
	}

	if data[0] == '[' {
		var many []RawRating
		if err := json.Unmarshal(data, &many); err != nil {
			return errors.Wrap(err, "ratings: decode list")
		}
		*r = FlexRatings(many)

		return nil
	}

	var one RawRating
	if err := json.Unmarshal(data, &one); err != nil {
		return errors.Wrap(err, "ratings: decode entry")
	}
	*r = FlexRatings{one}

	return nil
}

// RawVariant is an alternate product configuration with its own pricing.
type RawVariant struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
}

// RawProduct is a product record exactly as the upstream API sends it,
// before transformation.
type RawProduct struct {
	ID            FlexID          `json:"id"`
	MongoID       FlexID          `json:"_id"` // Some upstream endpoints key by _id instead of id.
	Name          string          `json:"name"`
	Title         string          `json:"title"`
	Images        FlexStrings     `json:"images"`
	Category      *RawCategoryRef `json:"category"`
	CategoryID    *RawCategoryRef `json:"categoryId"`
	Price         float64         `json:"price"`
	MRP           float64         `json:"mrp"`
	Discount      float64         `json:"discount"`
	Stock         *int            `json:"stock"`
	HasVariants   bool            `json:"hasVariants"`
	BrandVariants []RawVariant    `json:"brandVariants"`
	Brand         string          `json:"brand"`
	Rating        FlexRatings     `json:"rating"`
}

// ProductID returns whichever identifier field upstream populated.
func (p *RawProduct) ProductID() string {
	if p.ID != "" {
		return string(p.ID)
	}

	return string(p.MongoID)
}

// DisplayName returns the product name, falling back to the title field.
func (p *RawProduct) DisplayName() string {
	if strings.TrimSpace(p.Name) != "" {
		return strings.TrimSpace(p.Name)
	}

	return strings.TrimSpace(p.Title)
}

// RawCategory is a category record as served by the upstream category
// listing endpoint.
type RawCategory struct {
	ID          FlexID          `json:"id"`
	MongoID     FlexID          `json:"_id"`
	Title       string          `json:"title"`
	EnglishName string          `json:"englishName"`
	Slug        string          `json:"slug"`
	IsParent    bool            `json:"isParent"`
	ParentID    *RawCategoryRef `json:"parentId"`
}

// CategoryID returns whichever identifier field upstream populated.
func (c *RawCategory) CategoryID() string {
	if c.ID != "" {
		return string(c.ID)
	}

	return string(c.MongoID)
}
