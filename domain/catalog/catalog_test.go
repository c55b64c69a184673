package catalog

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/domain/navigation"
	"github.com/inkwell-shop/storefront/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(label, slug string) navigation.NavNode {
	return navigation.ReconstructNavNode("id-"+label, "parent", label, slug, 1, true, time.Time{})
}

func TestDeriveCategories_EmptyLeafSet(t *testing.T) {
	got := DeriveCategories(nil, nil)
	require.Len(t, got, 1)
	assert.Equal(t, AllCategoriesLabel, got[0].Label())
	assert.Equal(t, AllCategoriesValue, got[0].Value())
	assert.Empty(t, got[0].Image())
}

func TestDeriveCategories_SortsAndAttachesImages(t *testing.T) {
	leaves := []navigation.NavNode{
		leaf("Pens", "/stationery/pens"),
		leaf("Ink", "/stationery/ink"),
		leaf("Cards", "/gifts/cards"),
	}
	images := map[string]string{
		"pens":        "https://cdn/pens.jpg",
		"gifts/cards": "https://cdn/cards.jpg",
	}

	got := DeriveCategories(leaves, images)
	require.Len(t, got, 4)

	assert.Equal(t, AllCategoriesValue, got[0].Value())
	assert.Equal(t, "Cards", got[1].Label())
	assert.Equal(t, "gifts/cards", got[1].Value())
	assert.Equal(t, "https://cdn/cards.jpg", got[1].Image())
	assert.Equal(t, "Ink", got[2].Label())
	assert.Empty(t, got[2].Image())
	assert.Equal(t, "Pens", got[3].Label())
	assert.Equal(t, "https://cdn/pens.jpg", got[3].Image())
}

func TestDeriveCategories_SkipsUnpublished(t *testing.T) {
	hidden := leaf("Hidden", "/hidden").WithPublished(false)
	got := DeriveCategories([]navigation.NavNode{hidden}, nil)
	assert.Len(t, got, 1)
}

func TestCategoryKeys(t *testing.T) {
	assert.Equal(t, []string{"pens", "stationery/pens"}, CategoryKeys(leaf("Pens", "/Stationery/Pens")))
	assert.Equal(t, []string{"gifts"}, CategoryKeys(leaf("Gifts", "/gifts")))
}

func TestNewProduct_Validation(t *testing.T) {
	_, err := NewProduct("", "", "", "pens", nil, []string{"a.jpg"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = NewProduct("Gel Pen", "", "", " ", nil, []string{"a.jpg"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = NewProduct("Gel Pen", "", "", "pens", nil, []string{" "})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	negative := -1.0
	_, err = NewProduct("Gel Pen", "", "", "pens", &negative, []string{"a.jpg"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	price := 12.5
	p, err := NewProduct(" Gel Pen ", "G2", "Pilot", "pens", &price, []string{"a.jpg", "", "b.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "Gel Pen", p.Name())
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.Images())
	assert.True(t, p.Published())
	got, ok := p.Price()
	assert.True(t, ok)
	assert.Equal(t, 12.5, got)
}

func TestNewListing_Normalises(t *testing.T) {
	l := NewListing("", "", 0, 0)
	assert.Equal(t, AllCategoriesValue, l.Category())
	assert.Equal(t, 1, l.Page())
	assert.Equal(t, DefaultPageSize, l.Limit())
	assert.Equal(t, 0, l.Offset())
	assert.True(t, l.AllCategories())

	l = NewListing("Pens", "Pilot", 3, 500)
	assert.Equal(t, MaxPageSize, l.Limit())
	assert.Equal(t, 200, l.Offset())
	assert.False(t, l.AllCategories())
}

func TestNewListing_ClampsHugePage(t *testing.T) {
	l := NewListing("", "", math.MaxInt, MaxPageSize)
	assert.Equal(t, MaxPage, l.Page())
	assert.Equal(t, (MaxPage-1)*MaxPageSize, l.Offset())
	assert.Positive(t, l.Offset())
}

func TestListing_Filters(t *testing.T) {
	q := repository.Build(NewListing("ALL", "", 1, 10).Filters()...)
	require.Len(t, q.Conditions(), 1)
	assert.Equal(t, "published", q.Conditions()[0].Field())

	q = repository.Build(NewListing("Pens", "Pilot", 2, 10).Options()...)
	require.Len(t, q.Conditions(), 3)
	assert.True(t, q.Conditions()[2].Raw())
	assert.Equal(t, []any{"pens"}, q.Conditions()[2].Args())
	assert.Equal(t, 10, q.LimitValue())
	assert.Equal(t, 10, q.OffsetValue())
	require.Len(t, q.Orders(), 1)
	assert.False(t, q.Orders()[0].Ascending())
}
