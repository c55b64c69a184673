package review

import (
	"errors"
	"testing"

	"github.com/inkwell-shop/storefront/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productID = "3f1c6a2e-8d4b-4c55-9a1e-2b7f0c9d4e11"

func TestNewReview_Validation(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		userName  string
		rating    int
		body      string
	}{
		{"bad product id", "not-a-uuid", "Asha", 5, "Great"},
		{"rating too low", productID, "Asha", 0, "Great"},
		{"rating too high", productID, "Asha", 6, "Great"},
		{"blank user", productID, "  ", 4, "Great"},
		{"blank body", productID, "Asha", 4, "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReview(tt.productID, tt.userName, "", tt.rating, "", tt.body, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
		})
	}
}

func TestNewReview_TrimsAndCleansImages(t *testing.T) {
	r, err := NewReview(productID, " Asha ", " asha@example.com ", 4, "  ", " Smooth ink ", []string{"", " a.jpg ", " "})
	require.NoError(t, err)
	assert.Equal(t, "Asha", r.UserName())
	assert.Equal(t, "asha@example.com", r.UserEmail())
	assert.Empty(t, r.Title())
	assert.Equal(t, "Smooth ink", r.Body())
	assert.Equal(t, []string{"a.jpg"}, r.Images())

	r, err = NewReview(productID, "Asha", "", 5, "", "ok", []string{" "})
	require.NoError(t, err)
	assert.Nil(t, r.Images())
}
