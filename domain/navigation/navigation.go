// Package navigation models the storefront menu: persisted NavNode rows,
// the nested MenuNode view built from them, and the submission shape used to
// write a whole subtree at once.
package navigation

import (
	"strings"
	"time"
)

// DefaultDisplayOrder is used when a submission omits its order.
const DefaultDisplayOrder = 1

// NavNode is one persisted menu entry. A node without a parent is a root.
type NavNode struct {
	id           string
	parentID     string
	label        string
	slug         string
	displayOrder int
	published    bool
	createdAt    time.Time
}

// NewNavNode creates a published NavNode that has not been persisted yet.
func NewNavNode(parentID, label, slug string, displayOrder int) NavNode {
	return NavNode{
		parentID:     parentID,
		label:        label,
		slug:         slug,
		displayOrder: displayOrder,
		published:    true,
	}
}

// ReconstructNavNode recreates a NavNode from persistence.
func ReconstructNavNode(id, parentID, label, slug string, displayOrder int, published bool, createdAt time.Time) NavNode {
	return NavNode{
		id:           id,
		parentID:     parentID,
		label:        label,
		slug:         slug,
		displayOrder: displayOrder,
		published:    published,
		createdAt:    createdAt,
	}
}

// ID returns the node identifier.
func (n NavNode) ID() string { return n.id }

// ParentID returns the parent identifier, empty for roots.
func (n NavNode) ParentID() string { return n.parentID }

// IsRoot reports whether the node has no parent.
func (n NavNode) IsRoot() bool { return n.parentID == "" }

// Label returns the display text.
func (n NavNode) Label() string { return n.label }

// Slug returns the full accumulated path, e.g. "/stationery/pens".
func (n NavNode) Slug() string { return n.slug }

// DisplayOrder returns the sibling order.
func (n NavNode) DisplayOrder() int { return n.displayOrder }

// Published reports whether the node is visible to readers.
func (n NavNode) Published() bool { return n.published }

// CreatedAt returns the creation time.
func (n NavNode) CreatedAt() time.Time { return n.createdAt }

// WithID returns a copy carrying the given identifier.
func (n NavNode) WithID(id string) NavNode {
	n.id = id
	return n
}

// WithPublished returns a copy with the published flag set.
func (n NavNode) WithPublished(published bool) NavNode {
	n.published = published
	return n
}

// MenuNode is the nested, read-side view of the navigation tree.
type MenuNode struct {
	title   string
	path    string
	submenu []MenuNode
}

// NewMenuNode creates a MenuNode.
func NewMenuNode(title, path string, submenu ...MenuNode) MenuNode {
	return MenuNode{title: title, path: path, submenu: submenu}
}

// Title returns the display text.
func (m MenuNode) Title() string { return m.title }

// Path returns the full slug for roots and the last slug segment for children.
func (m MenuNode) Path() string { return m.path }

// Submenu returns the children in display order.
func (m MenuNode) Submenu() []MenuNode {
	result := make([]MenuNode, len(m.submenu))
	copy(result, m.submenu)
	return result
}

// Count returns the number of nodes in this subtree, itself included.
func (m MenuNode) Count() int {
	total := 1
	for _, child := range m.submenu {
		total += child.Count()
	}
	return total
}

// Submission is a nested subtree to be written in one transaction.
type Submission struct {
	Title   string
	Path    string
	Order   *int
	Submenu []Submission
}

// DisplayOrder returns Order, or DefaultDisplayOrder when unset or zero.
func (s Submission) DisplayOrder() int {
	if s.Order == nil || *s.Order == 0 {
		return DefaultDisplayOrder
	}
	return *s.Order
}

// RootSlug normalises a root path to a single leading separator with no
// trailing separator: "stationery/" becomes "/stationery".
func RootSlug(path string) string {
	return "/" + strings.Trim(strings.TrimSpace(path), "/")
}

// ChildSlug joins a parent slug and a child path into a full accumulated
// path: ("/stationery", "/pens") becomes "/stationery/pens".
func ChildSlug(parentSlug, path string) string {
	return strings.TrimRight(parentSlug, "/") + "/" + strings.Trim(strings.TrimSpace(path), "/")
}

// LastSegment returns the final "/"-separated segment of a slug.
func LastSegment(slug string) string {
	trimmed := strings.TrimRight(slug, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
