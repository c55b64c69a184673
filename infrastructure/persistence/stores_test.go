package persistence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/domain/account"
	"github.com/inkwell-shop/storefront/domain/catalog"
	"github.com/inkwell-shop/storefront/domain/navigation"
	"github.com/inkwell-shop/storefront/domain/order"
	"github.com/inkwell-shop/storefront/domain/repository"
	"github.com/inkwell-shop/storefront/domain/review"
	"github.com/inkwell-shop/storefront/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB creates a migrated in-memory SQLite database.
// Cannot use testdb package here due to import cycle (testdb imports persistence).
func newTestDB(t *testing.T) database.Database {
	t.Helper()
	db, err := database.NewDatabase(context.Background(), "sqlite:///:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, AutoMigrate(db))
	return db
}

func intPtr(i int) *int { return &i }

func TestNavigationStore_InsertTreeRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewNavigationStore(newTestDB(t))

	rootID, err := store.InsertTree(ctx, navigation.Submission{
		Title: "Stationery",
		Path:  "/stationery/",
		Submenu: []navigation.Submission{
			{Title: "Pens", Path: "/pens", Order: intPtr(2)},
			{Title: "Ink", Path: "ink", Order: intPtr(1), Submenu: []navigation.Submission{
				{Title: "Bottled", Path: "/bottled"},
			}},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, rootID)

	rows, err := store.Find(ctx, navigation.WithTreeOrder()...)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, rootID, rows[0].ID())
	assert.Equal(t, "/stationery", rows[0].Slug())
	assert.True(t, rows[0].IsRoot())

	bySlug := map[string]navigation.NavNode{}
	for _, r := range rows {
		bySlug[r.Slug()] = r
	}
	assert.Equal(t, rootID, bySlug["/stationery/pens"].ParentID())
	assert.Equal(t, 2, bySlug["/stationery/pens"].DisplayOrder())
	assert.Equal(t, bySlug["/stationery/ink"].ID(), bySlug["/stationery/ink/bottled"].ParentID())
	assert.Equal(t, 1, bySlug["/stationery/ink/bottled"].DisplayOrder())

	menu, dropped := navigation.BuildMenu(rows)
	assert.Empty(t, dropped)
	require.Len(t, menu, 1)
	assert.Equal(t, "/stationery", menu[0].Path())
	require.Len(t, menu[0].Submenu(), 2)
	assert.Equal(t, "ink", menu[0].Submenu()[0].Path())
	assert.Equal(t, "pens", menu[0].Submenu()[1].Path())
}

func TestNavigationStore_NestedFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	store := NewNavigationStore(newTestDB(t))

	_, err := store.InsertTree(ctx, navigation.Submission{
		Title: "Stationery",
		Path:  "/stationery",
		Submenu: []navigation.Submission{
			{Title: "Pens", Path: "/pens"},
			{Title: "Broken"},
		},
	})
	require.ErrorIs(t, err, navigation.ErrInvalidItem)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "no partial tree may survive")
}

func TestNavigationStore_InsertTreeIgnoresCancellation(t *testing.T) {
	store := NewNavigationStore(newTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rootID, err := store.InsertTree(ctx, navigation.Submission{
		Title:   "Stationery",
		Path:    "/stationery",
		Submenu: []navigation.Submission{{Title: "Pens", Path: "/pens"}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, rootID)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestNavigationStore_ConcurrentRootsGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	store := NewNavigationStore(newTestDB(t))

	sub := navigation.Submission{Title: "Gifts", Path: "/gifts"}
	ids := make([]string, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = store.InsertTree(ctx, sub)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.NotEqual(t, ids[0], ids[1])
}

func TestNavigationStore_Leaves(t *testing.T) {
	ctx := context.Background()
	store := NewNavigationStore(newTestDB(t))

	_, err := store.InsertTree(ctx, navigation.Submission{
		Title: "Stationery", Path: "/stationery",
		Submenu: []navigation.Submission{{Title: "Pens", Path: "/pens"}, {Title: "Ink", Path: "/ink"}},
	})
	require.NoError(t, err)
	_, err = store.InsertTree(ctx, navigation.Submission{Title: "Sale", Path: "/sale"})
	require.NoError(t, err)

	leaves, err := store.Leaves(ctx)
	require.NoError(t, err)

	var labels []string
	for _, l := range leaves {
		labels = append(labels, l.Label())
	}
	assert.Equal(t, []string{"Ink", "Pens", "Sale"}, labels)
}

func saveProduct(t *testing.T, store ProductStore, name, category string, published bool, created time.Time, images ...string) catalog.Product {
	t.Helper()
	p, err := store.Save(context.Background(), catalog.ReconstructProduct("", name, "", "Lamy", category, nil, images, published, created))
	require.NoError(t, err)
	return p
}

func TestProductStore_ListingAndLatestImages(t *testing.T) {
	ctx := context.Background()
	store := NewProductStore(newTestDB(t))
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	saveProduct(t, store, "Safari", "Pens", true, base, "old.jpg")
	newest := saveProduct(t, store, "Al-Star", "pens", true, base.Add(time.Hour), "new.jpg", "new2.jpg")
	saveProduct(t, store, "Hidden", "pens", false, base.Add(2*time.Hour), "hidden.jpg")
	saveProduct(t, store, "Blue Ink", "stationery/ink", true, base, "ink.jpg")

	got, err := store.FindOne(ctx, repository.WithID(newest.ID()))
	require.NoError(t, err)
	assert.Equal(t, []string{"new.jpg", "new2.jpg"}, got.Images())
	assert.True(t, got.Published())

	listing := catalog.NewListing("PENS", "", 1, 1)
	page, err := store.Find(ctx, listing.Options()...)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Al-Star", page[0].Name())

	total, err := store.Count(ctx, listing.Filters()...)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	all, err := store.Count(ctx, catalog.NewListing("All", "", 1, 20).Filters()...)
	require.NoError(t, err)
	assert.EqualValues(t, 3, all)

	images, err := store.LatestImages(ctx, []string{"pens", "Stationery/Ink", "brushes"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"pens": "new.jpg", "stationery/ink": "ink.jpg"}, images)

	_, err = store.FindOne(ctx, repository.WithID("00000000-0000-0000-0000-000000000000"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserStore_DuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(newTestDB(t))

	u, err := store.Save(ctx, account.NewUser("Ada", "Ada@Example.com", "hash", "customer"))
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email())

	_, err = store.Save(ctx, account.NewUser("Ada Again", "ada@example.com", "hash", "customer"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = store.Save(ctx, account.NewUser("Ada Seller", "ada@example.com", "hash", "seller"))
	assert.NoError(t, err, "same email with another user type is allowed")

	expires := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	_, err = store.Save(ctx, u.WithResetCode("codehash", expires))
	require.NoError(t, err)

	found, err := store.FindOne(ctx, account.WithEmail("ADA@example.com"), account.WithUserType("customer"))
	require.NoError(t, err)
	assert.Equal(t, "codehash", found.ResetCodeHash())
	assert.True(t, found.ResetExpiresAt().Equal(expires))
}

func TestUserStore_ResetAttempts(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(newTestDB(t))

	u, err := store.Save(ctx, account.NewUser("Ada", "ada@example.com", "hash", "customer"))
	require.NoError(t, err)

	claimed, err := store.ClaimResetAttempt(ctx, u.ID(), 2)
	require.NoError(t, err)
	assert.False(t, claimed, "no reset pending")

	u, err = store.Save(ctx, u.WithResetCode("codehash", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		claimed, err = store.ClaimResetAttempt(ctx, u.ID(), 2)
		require.NoError(t, err)
		assert.True(t, claimed)
	}
	claimed, err = store.ClaimResetAttempt(ctx, u.ID(), 2)
	require.NoError(t, err)
	assert.False(t, claimed, "limit reached")

	found, err := store.FindOne(ctx, repository.WithID(u.ID()))
	require.NoError(t, err)
	assert.Equal(t, 2, found.ResetAttempts())

	require.NoError(t, store.ClearReset(ctx, u.ID()))
	found, err = store.FindOne(ctx, repository.WithID(u.ID()))
	require.NoError(t, err)
	assert.Empty(t, found.ResetCodeHash())
	assert.Zero(t, found.ResetAttempts())
	assert.True(t, found.ResetExpiresAt().IsZero())
}

func TestOrderStore_PlaceAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewOrderStore(newTestDB(t))

	billing := order.Contact{Name: "Ada", Email: "ada@example.com", Address: order.Address{City: "Pune"}}
	o, err := order.NewOrder(billing, order.Address{Line1: "1 Ink Lane", City: "Pune"}, "upi", []order.Item{
		order.NewItem("p1", "Safari", 250000, 2, 500000, "a.jpg"),
		order.NewItem("p2", "Ink", 40000, 1, 40000, ""),
	}, 5400)
	require.NoError(t, err)

	placed, err := store.Place(ctx, o)
	require.NoError(t, err)
	require.NotEmpty(t, placed.ID())

	orders, err := store.Find(ctx, repository.WithOrderDesc("created_at"))
	require.NoError(t, err)
	require.Len(t, orders, 1)

	got := orders[0]
	assert.Equal(t, placed.ID(), got.ID())
	assert.Equal(t, "ada@example.com", got.Email())
	assert.Equal(t, order.DefaultCurrency, got.Currency())
	assert.Equal(t, order.PaymentPending, got.PaymentStatus())
	assert.Equal(t, order.FulfillNotPacked, got.FulfillStatus())
	assert.Equal(t, "1 Ink Lane", got.Shipping().Line1)
	assert.Equal(t, "Pune", got.Billing().Address.City)
	require.Len(t, got.Items(), 2)
	assert.Equal(t, "Safari", got.Items()[0].ProductName())
	assert.EqualValues(t, 500000, got.Items()[0].SubtotalMinor())

	one, err := store.FindOne(ctx, order.WithEmail("ada@example.com"))
	require.NoError(t, err)
	assert.Len(t, one.Items(), 2)
}

func TestOrderStore_PlaceIgnoresCancellation(t *testing.T) {
	store := NewOrderStore(newTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o, err := order.NewOrder(order.Contact{Email: "ada@example.com"}, order.Address{}, "cod", []order.Item{
		order.NewItem("p1", "Safari", 250000, 1, 250000, ""),
	}, 2500)
	require.NoError(t, err)

	placed, err := store.Place(ctx, o)
	require.NoError(t, err)

	found, err := store.FindOne(context.Background(), repository.WithID(placed.ID()))
	require.NoError(t, err)
	assert.Len(t, found.Items(), 1)
}

func TestReviewStore_IncrementHelpful(t *testing.T) {
	ctx := context.Background()
	store := NewReviewStore(newTestDB(t))

	r, err := review.NewReview("6f1c2f7e-8a4b-4c2d-9e3f-1a2b3c4d5e6f", "Ada", "", 5, "", "Smooth nib", nil)
	require.NoError(t, err)
	saved, err := store.Save(ctx, r)
	require.NoError(t, err)
	assert.Empty(t, saved.Images())
	assert.Empty(t, saved.Title())

	bumped, err := store.IncrementHelpful(ctx, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, bumped.Helpful())

	bumped, err = store.IncrementHelpful(ctx, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, bumped.Helpful())

	_, err = store.IncrementHelpful(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := store.Find(ctx, review.WithProductID(saved.ProductID()), repository.WithOrderDesc("created_at"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Smooth nib", list[0].Body())
}
