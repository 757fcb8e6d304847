package models

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	return db
}

func TestAutoMigrate(t *testing.T) {
	db := setupTestDB(t)

	err := AutoMigrate(db)
	if err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	if !db.Migrator().HasTable("bookmarks") {
		t.Fatal("Expected table bookmarks to exist")
	}
	for _, column := range Columns {
		if !db.Migrator().HasColumn(&Bookmark{}, column) {
			t.Errorf("Expected column %s to exist", column)
		}
	}
}

func TestBookmarkDefaults(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	bookmark := Bookmark{
		GUID: "0b6a4b7e-7c1e-4c59-9f0e-2f0e6f1c8a11",
		Link: "https://example.com",
	}
	if err := db.Create(&bookmark).Error; err != nil {
		t.Fatalf("Failed to create bookmark: %v", err)
	}

	var loaded Bookmark
	if err := db.First(&loaded, "guid = ?", bookmark.GUID).Error; err != nil {
		t.Fatalf("Failed to load bookmark: %v", err)
	}

	if loaded.Description != "" {
		t.Errorf("Expected empty description, got %q", loaded.Description)
	}
	if loaded.Favorites {
		t.Error("Expected favorites to default to false")
	}
	if loaded.CreatedAt == 0 {
		t.Error("Expected createdAt to be set on insert")
	}
	if loaded.UpdatedAt != nil {
		t.Errorf("Expected updatedAt to be unset, got %d", *loaded.UpdatedAt)
	}
}

func TestBookmarkGUIDUniqueness(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	first := Bookmark{GUID: "same-guid", Link: "https://example1.com"}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("Failed to create bookmark: %v", err)
	}

	second := Bookmark{GUID: "same-guid", Link: "https://example2.com"}
	if err := db.Create(&second).Error; err == nil {
		t.Error("Expected error when creating bookmark with duplicate guid")
	}
}

func TestIsColumn(t *testing.T) {
	if !IsColumn("createdAt") {
		t.Error("Expected createdAt to be a column")
	}
	if IsColumn("created_at") {
		t.Error("Expected created_at not to be a column")
	}
}
