// Package review provides product reviews.
package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-shop/storefront/domain"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of a product.
type Review struct {
	id        string
	productID string
	userName  string
	userEmail string
	rating    int
	title     string
	body      string
	images    []string
	helpful   int
	createdAt time.Time
	updatedAt time.Time
}

// NewReview validates and creates a review that has not been persisted yet.
// Strings are trimmed, blank images are removed and an empty image list
// becomes nil.
func NewReview(productID, userName, userEmail string, rating int, title, body string, images []string) (Review, error) {
	productID = strings.TrimSpace(productID)
	if _, err := uuid.Parse(productID); err != nil {
		return Review{}, fmt.Errorf("%w: invalid product_id", domain.ErrValidation)
	}
	if rating < MinRating || rating > MaxRating {
		return Review{}, fmt.Errorf("%w: invalid rating", domain.ErrValidation)
	}
	userName = strings.TrimSpace(userName)
	body = strings.TrimSpace(body)
	if userName == "" || body == "" {
		return Review{}, fmt.Errorf("%w: user_name and body are required", domain.ErrValidation)
	}

	var cleaned []string
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			cleaned = append(cleaned, img)
		}
	}

	return Review{
		productID: productID,
		userName:  userName,
		userEmail: strings.TrimSpace(userEmail),
		rating:    rating,
		title:     strings.TrimSpace(title),
		body:      body,
		images:    cleaned,
	}, nil
}

// ReconstructReview recreates a Review from persistence.
func ReconstructReview(
	id, productID, userName, userEmail string,
	rating int,
	title, body string,
	images []string,
	helpful int,
	createdAt, updatedAt time.Time,
) Review {
	return Review{
		id:        id,
		productID: productID,
		userName:  userName,
		userEmail: userEmail,
		rating:    rating,
		title:     title,
		body:      body,
		images:    images,
		helpful:   helpful,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the review identifier.
func (r Review) ID() string { return r.id }

// ProductID returns the reviewed product's id.
func (r Review) ProductID() string { return r.productID }

// UserName returns the reviewer's display name.
func (r Review) UserName() string { return r.userName }

// UserEmail returns the reviewer's e-mail, possibly empty.
func (r Review) UserEmail() string { return r.userEmail }

// Rating returns the 1..5 rating.
func (r Review) Rating() int { return r.rating }

// Title returns the headline, possibly empty.
func (r Review) Title() string { return r.title }

// Body returns the review text.
func (r Review) Body() string { return r.body }

// Images returns attached image URLs, nil when there are none.
func (r Review) Images() []string {
	if r.images == nil {
		return nil
	}
	result := make([]string, len(r.images))
	copy(result, r.images)
	return result
}

// Helpful returns how many readers marked the review helpful.
func (r Review) Helpful() int { return r.helpful }

// CreatedAt returns the creation time.
func (r Review) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last modification time.
func (r Review) UpdatedAt() time.Time { return r.updatedAt }
