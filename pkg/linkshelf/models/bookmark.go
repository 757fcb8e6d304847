package models

// Bookmark represents a saved link with its metadata.
// Column names match the JSON field names so that query-string filters
// can address columns directly.
type Bookmark struct {
	GUID        string `gorm:"column:guid;primaryKey;type:varchar(36)" json:"guid"`
	Link        string `gorm:"column:link;size:2048;not null;default:''" json:"link"`
	CreatedAt   int64  `gorm:"column:createdAt;not null;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt   *int64 `gorm:"column:updatedAt;autoUpdateTime:false" json:"updatedAt"`
	Description string `gorm:"column:description;size:1024;default:''" json:"description"`
	Favorites   bool   `gorm:"column:favorites;not null;default:false" json:"favorites"`
}

// TableName pins the table name regardless of naming strategy
func (Bookmark) TableName() string {
	return "bookmarks"
}

// Columns lists the persisted columns, in declaration order
var Columns = []string{"guid", "link", "createdAt", "updatedAt", "description", "favorites"}

// IsColumn reports whether name is a persisted bookmark column
func IsColumn(name string) bool {
	for _, c := range Columns {
		if c == name {
			return true
		}
	}
	return false
}
