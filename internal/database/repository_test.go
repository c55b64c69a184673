package database

import (
	"context"
	"errors"
	"testing"

	"github.com/inkwell-shop/storefront/domain/repository"
)

type shelfModel struct {
	ID       string `gorm:"primaryKey"`
	ParentID *string
	Label    string
	Position int
}

func (shelfModel) TableName() string { return "shelves" }

type shelf struct {
	id     string
	label  string
	parent string
}

type shelfMapper struct{}

func (shelfMapper) ToDomain(m shelfModel) shelf {
	s := shelf{id: m.ID, label: m.Label}
	if m.ParentID != nil {
		s.parent = *m.ParentID
	}
	return s
}

func (shelfMapper) ToModel(s shelf) shelfModel {
	m := shelfModel{ID: s.id, Label: s.label}
	if s.parent != "" {
		m.ParentID = &s.parent
	}
	return m
}

func seededRepository(t *testing.T) Repository[shelf, shelfModel] {
	t.Helper()
	db, _ := openTemp(t)
	ctx := context.Background()
	if err := db.GORM().AutoMigrate(&shelfModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	root := "a"
	rows := []shelfModel{
		{ID: "b", ParentID: &root, Label: "Pens", Position: 2},
		{ID: "a", Label: "Stationery", Position: 1},
		{ID: "c", ParentID: &root, Label: "Ink", Position: 1},
		{ID: "d", Label: "Gifts", Position: 2},
	}
	if err := db.Session(ctx).Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewRepository[shelf, shelfModel](db, shelfMapper{}, "shelf")
}

func TestRepository_FindWithRawOrderAndWhere(t *testing.T) {
	ctx := context.Background()
	repo := seededRepository(t)

	got, err := repo.Find(ctx,
		repository.WithOrderExpr("parent_id IS NOT NULL"),
		repository.WithOrderAsc("position"),
	)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	var ids string
	for _, s := range got {
		ids += s.id
	}
	if ids != "adcb" {
		t.Errorf("expected roots first then by position, got %q", ids)
	}

	roots, err := repo.Find(ctx, repository.WithWhere("parent_id IS NULL"))
	if err != nil {
		t.Fatalf("Find roots: %v", err)
	}
	if len(roots) != 2 {
		t.Errorf("expected 2 roots, got %d", len(roots))
	}

	lower, err := repo.Find(ctx, repository.WithWhere("LOWER(label) = ?", "pens"))
	if err != nil {
		t.Fatalf("Find lower: %v", err)
	}
	if len(lower) != 1 || lower[0].id != "b" {
		t.Errorf("unexpected case-insensitive match: %+v", lower)
	}
}

func TestRepository_PaginationAndCount(t *testing.T) {
	ctx := context.Background()
	repo := seededRepository(t)

	opts := append([]repository.Option{repository.WithOrderAsc("id")}, repository.WithPagination(2, 2)...)
	page, err := repo.Find(ctx, opts...)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(page) != 2 || page[0].id != "c" || page[1].id != "d" {
		t.Errorf("unexpected second page: %+v", page)
	}

	count, err := repo.Count(ctx, append(opts, repository.WithConditionIn("id", []string{"a", "b", "c"}))...)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Errorf("count must ignore pagination, got %d", count)
	}
}

func TestRepository_FindOneAndExists(t *testing.T) {
	ctx := context.Background()
	repo := seededRepository(t)

	s, err := repo.FindOne(ctx, repository.WithID("a"))
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if s.label != "Stationery" {
		t.Errorf("unexpected label %q", s.label)
	}

	_, err = repo.FindOne(ctx, repository.WithID("zzz"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	ok, err := repo.Exists(ctx, repository.WithCondition("label", "Gifts"))
	if err != nil || !ok {
		t.Errorf("Exists = %v, %v", ok, err)
	}

	if err := repo.DeleteBy(ctx, repository.WithID("d")); err != nil {
		t.Fatalf("DeleteBy: %v", err)
	}
	ok, _ = repo.Exists(ctx, repository.WithID("d"))
	if ok {
		t.Error("expected row to be deleted")
	}
}
