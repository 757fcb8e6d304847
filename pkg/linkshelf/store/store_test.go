package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mikepea/linkshelf/pkg/linkshelf/models"
	"github.com/mikepea/linkshelf/pkg/linkshelf/query"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) *Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	s, err := New(db)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return s
}

func createTestBookmark(t *testing.T, s *Store, link string, createdAt int64, favorites bool) models.Bookmark {
	bookmark := models.Bookmark{Link: link, CreatedAt: createdAt, Favorites: favorites}
	if err := s.Create(context.Background(), &bookmark); err != nil {
		t.Fatalf("Failed to create test bookmark: %v", err)
	}
	return bookmark
}

func TestCreateSetsGUIDAndCreatedAt(t *testing.T) {
	s := setupTestStore(t)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return fixed })

	bookmark := models.Bookmark{Link: "https://example.com"}
	if err := s.Create(context.Background(), &bookmark); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if bookmark.GUID == "" {
		t.Error("Expected guid to be generated")
	}
	if bookmark.CreatedAt != fixed.UnixMilli() {
		t.Errorf("Expected createdAt %d, got %d", fixed.UnixMilli(), bookmark.CreatedAt)
	}

	other := models.Bookmark{Link: "https://example.org"}
	s.Create(context.Background(), &other)
	if other.GUID == bookmark.GUID {
		t.Error("Expected distinct guids")
	}
}

func TestCountAndListWithFilters(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	createTestBookmark(t, s, "https://a.example.com", 3000, true)
	createTestBookmark(t, s, "https://b.example.com", 1000, false)
	createTestBookmark(t, s, "https://c.example.com", 2000, true)

	total, err := s.Count(ctx, query.Filters{"favorites": "true"})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if total != 2 {
		t.Errorf("Expected 2 favorites, got %d", total)
	}

	page, err := s.List(ctx, query.DefaultControl(), query.Filters{"favorites": "true"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("Expected 2 bookmarks, got %d", len(page))
	}
	if page[0].Link != "https://c.example.com" || page[1].Link != "https://a.example.com" {
		t.Errorf("Expected ascending createdAt order, got %s then %s", page[0].Link, page[1].Link)
	}
}

func TestListPaginationAndDescending(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	for i := int64(1); i <= 5; i++ {
		createTestBookmark(t, s, "https://example.com", i*1000, false)
	}

	control := query.Control{Limit: 2, Offset: 1, SortBy: "createdAt", SortDir: "desc"}
	page, err := s.List(ctx, control, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("Expected 2 bookmarks, got %d", len(page))
	}
	if page[0].CreatedAt != 4000 || page[1].CreatedAt != 3000 {
		t.Errorf("Expected createdAt 4000, 3000; got %d, %d", page[0].CreatedAt, page[1].CreatedAt)
	}
}

func TestListBadOrder(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.List(context.Background(), query.Control{Limit: 10, SortBy: "nope", SortDir: "asc"}, nil)
	if !errors.Is(err, query.ErrBadOrder) {
		t.Errorf("Expected ErrBadOrder, got %v", err)
	}
}

func TestCountUnknownFilterColumn(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.Count(context.Background(), query.Filters{"nope": "x"}); err == nil {
		t.Error("Expected error filtering on unknown column")
	}
}

func TestExists(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	bookmark := createTestBookmark(t, s, "https://example.com", 0, false)

	exists, err := s.Exists(ctx, bookmark.GUID)
	if err != nil || !exists {
		t.Errorf("Expected bookmark to exist, got %v (err %v)", exists, err)
	}

	exists, err = s.Exists(ctx, "missing")
	if err != nil || exists {
		t.Errorf("Expected missing bookmark not to exist, got %v (err %v)", exists, err)
	}
}

func TestUpdateOnlyChangesGivenFields(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	bookmark := createTestBookmark(t, s, "https://example.com", 1000, true)

	fixed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return fixed })

	if err := s.Update(ctx, bookmark.GUID, map[string]any{"description": "updated"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	loaded, err := s.Get(ctx, bookmark.GUID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded.Description != "updated" {
		t.Errorf("Expected description 'updated', got %q", loaded.Description)
	}
	if loaded.Link != bookmark.Link || loaded.CreatedAt != bookmark.CreatedAt || !loaded.Favorites {
		t.Errorf("Expected other fields unchanged, got %+v", loaded)
	}
	if loaded.UpdatedAt == nil || *loaded.UpdatedAt != fixed.UnixMilli() {
		t.Errorf("Expected updatedAt %d, got %v", fixed.UnixMilli(), loaded.UpdatedAt)
	}
}

func TestUpdateMissing(t *testing.T) {
	s := setupTestStore(t)

	err := s.Update(context.Background(), "missing", map[string]any{"description": "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTwice(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	bookmark := createTestBookmark(t, s, "https://example.com", 0, false)

	if err := s.Delete(ctx, bookmark.GUID); err != nil {
		t.Fatalf("First delete failed: %v", err)
	}
	if err := s.Delete(ctx, bookmark.GUID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := s.Get(ctx, bookmark.GUID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound from Get, got %v", err)
	}
}

func TestAllOrdersByCreatedAt(t *testing.T) {
	s := setupTestStore(t)
	createTestBookmark(t, s, "https://second.example.com", 2000, false)
	createTestBookmark(t, s, "https://first.example.com", 1000, false)

	all, err := s.All(context.Background())
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 2 || all[0].Link != "https://first.example.com" {
		t.Errorf("Expected oldest bookmark first, got %+v", all)
	}
}
