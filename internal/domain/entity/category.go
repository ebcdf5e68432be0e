package entity

// Category is a product category as served by the upstream catalog.
// Categories form a two-level hierarchy: parents (IsParent=true) and
// children referencing a parent through ParentID. A category used for
// filtering must resolve to its top-level display name, which is either
// its own title (if it is a parent) or its parent's title.
type Category struct {
	ID          string // Upstream identifier; opaque to this service.
	Title       string
	EnglishName string
	Slug        string
	IsParent    bool
	ParentID    string // ID of the parent category; empty for parents.
}
