package navigation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/inkwell-shop/storefront/domain"
)

// ErrInvalidItem is returned by WriteTree for a nested item that lacks a
// title or a path segment. It fails the write like any store error.
var ErrInvalidItem = errors.New("submenu item needs a title and a path segment")

// Inserter persists a single node and returns it carrying its generated id.
// WriteTree calls it once per node, parents strictly before children.
type Inserter func(node NavNode) (NavNode, error)

// Validate checks that the submission names both a title and a path.
// Nested items are checked by WriteTree as it reaches them and fail with
// ErrInvalidItem.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Title) == "" || strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("%w: title and path are required", domain.ErrValidation)
	}
	return nil
}

type pendingItem struct {
	item       Submission
	parentID   string
	parentSlug string
}

// WriteTree inserts the root of sub and then every nested item in
// depth-first pre-order, giving each child the id generated for its parent
// and a slug that extends the parent's slug.
//
// WriteTree stops at the first failure and returns it; the caller is
// expected to run it inside a transaction and roll back on error so that no
// partial tree survives. The returned id is the root's.
func WriteTree(sub Submission, insert Inserter) (string, error) {
	if err := sub.Validate(); err != nil {
		return "", err
	}

	root, err := insert(NewNavNode("", strings.TrimSpace(sub.Title), RootSlug(sub.Path), sub.DisplayOrder()))
	if err != nil {
		return "", err
	}

	stack := pushItems(nil, sub.Submenu, root.ID(), root.Slug())
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if strings.TrimSpace(next.item.Title) == "" || strings.Trim(strings.TrimSpace(next.item.Path), "/") == "" {
			return "", fmt.Errorf("submenu of %s: %w", next.parentSlug, ErrInvalidItem)
		}

		node, err := insert(NewNavNode(
			next.parentID,
			strings.TrimSpace(next.item.Title),
			ChildSlug(next.parentSlug, next.item.Path),
			next.item.DisplayOrder(),
		))
		if err != nil {
			return "", err
		}
		stack = pushItems(stack, next.item.Submenu, node.ID(), node.Slug())
	}

	return root.ID(), nil
}

// pushItems pushes items in reverse so the first item is popped first.
func pushItems(stack []pendingItem, items []Submission, parentID, parentSlug string) []pendingItem {
	for i := len(items) - 1; i >= 0; i-- {
		stack = append(stack, pendingItem{item: items[i], parentID: parentID, parentSlug: parentSlug})
	}
	return stack
}
