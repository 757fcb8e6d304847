package importexport

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/linkshelf/pkg/linkshelf/envelope"
	"github.com/mikepea/linkshelf/pkg/linkshelf/metrics"
	"github.com/mikepea/linkshelf/pkg/linkshelf/models"
	"github.com/mikepea/linkshelf/pkg/linkshelf/store"
	"github.com/mikepea/linkshelf/pkg/linkshelf/validation"
	"go.uber.org/zap"
)

// FavoriteTag marks a favorite bookmark in Pinboard tags
const FavoriteTag = "favorite"

// Handler handles import/export requests
type Handler struct {
	store *store.Store
	log   *zap.Logger
}

// NewHandler creates a new import/export handler
func NewHandler(s *store.Store, log *zap.Logger) *Handler {
	return &Handler{store: s, log: log}
}

// PinboardBookmark represents a bookmark in Pinboard JSON format
type PinboardBookmark struct {
	Href        string `json:"href"`
	Description string `json:"description"`
	Extended    string `json:"extended"`
	Tags        string `json:"tags"`
	Time        string `json:"time"`
	Shared      string `json:"shared"`
	ToRead      string `json:"toread"`
}

// ImportRequest represents an import request
type ImportRequest struct {
	Bookmarks []PinboardBookmark `json:"bookmarks" binding:"required"`
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

func hasTag(tags, name string) bool {
	for _, tag := range strings.Fields(tags) {
		if strings.EqualFold(tag, name) {
			return true
		}
	}
	return false
}

func toPinboard(bookmark models.Bookmark) PinboardBookmark {
	tags := ""
	if bookmark.Favorites {
		tags = FavoriteTag
	}
	return PinboardBookmark{
		Href:     bookmark.Link,
		Extended: bookmark.Description,
		Tags:     tags,
		Time:     time.UnixMilli(bookmark.CreatedAt).UTC().Format(time.RFC3339),
		Shared:   "no",
		ToRead:   "no",
	}
}

// Import imports bookmarks from Pinboard JSON format
// @Summary Import bookmarks
// @Description Import Pinboard JSON. Entries whose link fails validation are skipped.
// @Tags importexport
// @Accept json
// @Produce json
// @Param request body ImportRequest true "Bookmarks to import"
// @Success 200 {object} ImportResult
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Router /import [post]
func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.Observe("import", metrics.OutcomeInvalid)
		envelope.Error(c, http.StatusBadRequest, envelope.ScopeValidation, &validation.Error{
			Code:        validation.CodeInvalidBody,
			Description: "Body must contain a bookmarks array",
		})
		return
	}

	result := ImportResult{
		Errors: []string{},
	}

	for i, entry := range req.Bookmarks {
		if verr := validation.ValidateLink(entry.Href); verr != nil {
			result.Errors = append(result.Errors, "bookmark "+strconv.Itoa(i)+": "+verr.Code)
			result.Skipped++
			continue
		}

		// Parse time
		var createdAt int64
		if entry.Time != "" {
			parsed, err := time.Parse(time.RFC3339, entry.Time)
			if err != nil {
				result.Errors = append(result.Errors, "bookmark "+strconv.Itoa(i)+": invalid time format")
				result.Skipped++
				continue
			}
			createdAt = parsed.UnixMilli()
		}

		bookmark := models.Bookmark{
			Link:        entry.Href,
			Description: entry.Extended,
			Favorites:   hasTag(entry.Tags, FavoriteTag),
			CreatedAt:   createdAt,
		}

		if err := h.store.Create(c.Request.Context(), &bookmark); err != nil {
			h.log.Error("import bookmark failed", zap.Int("index", i), zap.Error(err))
			result.Errors = append(result.Errors, "bookmark "+strconv.Itoa(i)+": "+envelope.BackendMessage)
			result.Skipped++
			continue
		}

		result.Imported++
	}

	metrics.Observe("import", metrics.OutcomeOK)
	c.JSON(http.StatusOK, result)
}

// Export exports bookmarks to Pinboard JSON format
// @Summary Export bookmarks
// @Tags importexport
// @Produce json
// @Param download query bool false "Serve as a file download"
// @Success 200 {array} PinboardBookmark
// @Failure 400 {object} map[string]interface{} "Backend error"
// @Router /export [get]
func (h *Handler) Export(c *gin.Context) {
	all, err := h.store.All(c.Request.Context())
	if err != nil {
		h.log.Error("export bookmarks failed", zap.Error(err))
		metrics.Observe("export", metrics.OutcomeBackendErr)
		envelope.Error(c, http.StatusBadRequest, envelope.ScopeBackend, envelope.BackendMessage)
		return
	}

	bookmarks := make([]PinboardBookmark, len(all))
	for i, bookmark := range all {
		bookmarks[i] = toPinboard(bookmark)
	}

	// Set content disposition for download
	if c.Query("download") == "true" {
		c.Header("Content-Disposition", "attachment; filename=linkshelf-export.json")
	}

	metrics.Observe("export", metrics.OutcomeOK)
	c.JSON(http.StatusOK, bookmarks)
}

// ExportSingle exports a single bookmark to Pinboard JSON format
// @Summary Export one bookmark
// @Tags importexport
// @Produce json
// @Param guid path string true "Bookmark guid"
// @Success 200 {object} PinboardBookmark
// @Failure 404 {object} map[string]interface{} "Bookmark not found"
// @Router /export/{guid} [get]
func (h *Handler) ExportSingle(c *gin.Context) {
	bookmark, err := h.store.Get(c.Request.Context(), c.Param("guid"))
	if errors.Is(err, store.ErrNotFound) {
		metrics.Observe("export", metrics.OutcomeNotFound)
		envelope.Error(c, http.StatusNotFound, envelope.ScopeBookmarks, "Bookmark not found")
		return
	}
	if err != nil {
		h.log.Error("export bookmark failed", zap.Error(err))
		metrics.Observe("export", metrics.OutcomeBackendErr)
		envelope.Error(c, http.StatusBadRequest, envelope.ScopeBackend, envelope.BackendMessage)
		return
	}

	metrics.Observe("export", metrics.OutcomeOK)
	c.JSON(http.StatusOK, toPinboard(*bookmark))
}

// RegisterRoutes registers import/export routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/import", h.Import)
	rg.GET("/export", h.Export)
	rg.GET("/export/:guid", h.ExportSingle)
}
