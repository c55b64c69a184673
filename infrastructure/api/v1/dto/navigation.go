// Package dto holds the JSON request and response shapes of the v1 API.
package dto

import (
	"github.com/inkwell-shop/storefront/domain/catalog"
	"github.com/inkwell-shop/storefront/domain/navigation"
)

// MenuNodeResponse is one entry of the nested menu.
type MenuNodeResponse struct {
	Title   string             `json:"title"`
	Path    string             `json:"path"`
	Submenu []MenuNodeResponse `json:"submenu,omitempty"`
}

// NewMenuResponse converts a menu forest. An empty menu encodes as [].
func NewMenuResponse(menu []navigation.MenuNode) []MenuNodeResponse {
	out := make([]MenuNodeResponse, len(menu))
	for i, node := range menu {
		out[i] = MenuNodeResponse{Title: node.Title(), Path: node.Path()}
		if children := node.Submenu(); len(children) > 0 {
			out[i].Submenu = NewMenuResponse(children)
		}
	}
	return out
}

// MenuSubmission is the body of POST /navlinks. Nested items are checked
// inside the write transaction so a bad item rolls back the whole tree.
type MenuSubmission struct {
	Title   string           `json:"title" validate:"required"`
	Path    string           `json:"path" validate:"required"`
	Order   *int             `json:"order,omitempty"`
	Submenu []MenuSubmission `json:"submenu,omitempty"`
}

// Domain converts the request to a navigation.Submission.
func (m MenuSubmission) Domain() navigation.Submission {
	sub := navigation.Submission{Title: m.Title, Path: m.Path, Order: m.Order}
	if len(m.Submenu) > 0 {
		sub.Submenu = make([]navigation.Submission, len(m.Submenu))
		for i, child := range m.Submenu {
			sub.Submenu[i] = child.Domain()
		}
	}
	return sub
}

// CreatedResponse acknowledges a write.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// CategoryResponse is one entry of the category list.
type CategoryResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Image string `json:"image,omitempty"`
}

// NewCategoriesResponse converts derived categories.
func NewCategoriesResponse(categories []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = CategoryResponse{Label: c.Label(), Value: c.Value(), Image: c.Image()}
	}
	return out
}
