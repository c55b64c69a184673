package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/inkwell-shop/storefront/domain/review"
)

// Rating accepts a whole number either as a JSON number or a numeric string.
type Rating int

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rating) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if raw == "" || raw == "null" {
		*r = 0
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return fmt.Errorf("rating must be a whole number, got %s", data)
	}
	*r = Rating(f)
	return nil
}

// ImageList accepts an array of URLs or a single URL string.
type ImageList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *ImageList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("images must be a string or an array of strings")
	}
	if one = strings.TrimSpace(one); one != "" {
		*l = ImageList{one}
	} else {
		*l = nil
	}
	return nil
}

// ReviewRequest is the body of POST /reviews.
type ReviewRequest struct {
	ProductID string    `json:"product_id" validate:"required"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	Rating    Rating    `json:"rating"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Images    ImageList `json:"images"`
}

// ReviewResponse is a stored review. Blank optional fields are null.
type ReviewResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserName  string    `json:"user_name"`
	UserEmail *string   `json:"user_email"`
	Rating    int       `json:"rating"`
	Title     *string   `json:"title"`
	Body      string    `json:"body"`
	Images    []string  `json:"images"`
	Helpful   int       `json:"helpful"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReviewResponse converts a review.
func NewReviewResponse(r review.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID(),
		ProductID: r.ProductID(),
		UserName:  r.UserName(),
		UserEmail: nullable(r.UserEmail()),
		Rating:    r.Rating(),
		Title:     nullable(r.Title()),
		Body:      r.Body(),
		Images:    r.Images(),
		Helpful:   r.Helpful(),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}

// NewReviewsResponse converts a list of reviews. An empty list encodes as [].
func NewReviewsResponse(reviews []review.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = NewReviewResponse(r)
	}
	return out
}

// HelpfulResponse is the result of PATCH /reviews/{id}/helpful.
type HelpfulResponse struct {
	ID      string `json:"id"`
	Helpful int    `json:"helpful"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
