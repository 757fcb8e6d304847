package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mikepea/linkshelf/pkg/linkshelf/models"
	"github.com/mikepea/linkshelf/pkg/linkshelf/query"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// ErrNotFound is returned when no bookmark matches the given guid
var ErrNotFound = errors.New("bookmark not found")

// Store persists bookmarks through GORM
type Store struct {
	db     *gorm.DB
	schema *schema.Schema
	now    func() time.Time
}

// New creates a store backed by db
func New(db *gorm.DB) (*Store, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(&models.Bookmark{}); err != nil {
		return nil, fmt.Errorf("parse bookmark schema: %w", err)
	}
	return &Store{db: db, schema: stmt.Schema, now: time.Now}, nil
}

// SetClock replaces the wall clock used for timestamps
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

// where applies equality filters, converting values to the column type
// where the column is known
func (s *Store) where(db *gorm.DB, filters query.Filters) *gorm.DB {
	if len(filters) == 0 {
		return db
	}
	conds := make(map[string]interface{}, len(filters))
	for column, raw := range filters {
		conds[column] = s.coerce(column, raw)
	}
	return db.Where(conds)
}

func (s *Store) coerce(column, raw string) interface{} {
	field := s.schema.LookUpField(column)
	if field == nil {
		return raw
	}
	switch field.DataType {
	case schema.Bool:
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	case schema.Int, schema.Uint:
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
	}
	return raw
}

// Count returns the number of bookmarks matching filters, ignoring pagination
func (s *Store) Count(ctx context.Context, filters query.Filters) (int64, error) {
	var total int64
	db := s.where(s.db.WithContext(ctx).Model(&models.Bookmark{}), filters)
	if err := db.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count bookmarks: %w", err)
	}
	return total, nil
}

// List returns one page of bookmarks matching filters
func (s *Store) List(ctx context.Context, control query.Control, filters query.Filters) ([]models.Bookmark, error) {
	if err := control.Validate(); err != nil {
		return nil, err
	}

	var bookmarks []models.Bookmark
	db := s.where(s.db.WithContext(ctx), filters).
		Order(clause.OrderByColumn{Column: clause.Column{Name: control.SortBy}, Desc: control.Desc()}).
		Limit(control.Limit).
		Offset(control.Offset)

	if err := db.Find(&bookmarks).Error; err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}

// All returns every bookmark ordered by creation time
func (s *Store) All(ctx context.Context) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	if err := s.db.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "createdAt"}}).Find(&bookmarks).Error; err != nil {
		return nil, fmt.Errorf("list all bookmarks: %w", err)
	}
	return bookmarks, nil
}

// Get returns the bookmark with the given guid
func (s *Store) Get(ctx context.Context, guid string) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := s.db.WithContext(ctx).Where("guid = ?", guid).First(&bookmark).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark %s: %w", guid, err)
	}
	return &bookmark, nil
}

// Exists reports whether a bookmark with the given guid exists
func (s *Store) Exists(ctx context.Context, guid string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Bookmark{}).Where("guid = ?", guid).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check bookmark %s: %w", guid, err)
	}
	return count > 0, nil
}

// Create inserts a bookmark. A guid is generated and createdAt is set to the
// current time unless the caller already provided them.
func (s *Store) Create(ctx context.Context, bookmark *models.Bookmark) error {
	if bookmark.GUID == "" {
		bookmark.GUID = uuid.New().String()
	}
	if bookmark.CreatedAt == 0 {
		bookmark.CreatedAt = s.nowMillis()
	}

	if err := s.db.WithContext(ctx).Create(bookmark).Error; err != nil {
		return fmt.Errorf("create bookmark: %w", err)
	}
	return nil
}

// Update applies a partial update to the bookmark with the given guid and
// stamps updatedAt. The affected-row count decides whether the bookmark
// existed, so no separate existence probe is needed.
func (s *Store) Update(ctx context.Context, guid string, fields map[string]any) error {
	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updatedAt"] = s.nowMillis()

	result := s.db.WithContext(ctx).Model(&models.Bookmark{}).Where("guid = ?", guid).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update bookmark %s: %w", guid, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the bookmark with the given guid
func (s *Store) Delete(ctx context.Context, guid string) error {
	result := s.db.WithContext(ctx).Where("guid = ?", guid).Delete(&models.Bookmark{})
	if result.Error != nil {
		return fmt.Errorf("delete bookmark %s: %w", guid, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
