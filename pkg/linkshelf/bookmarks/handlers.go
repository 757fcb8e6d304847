package bookmarks

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/linkshelf/pkg/linkshelf/envelope"
	"github.com/mikepea/linkshelf/pkg/linkshelf/metrics"
	"github.com/mikepea/linkshelf/pkg/linkshelf/models"
	"github.com/mikepea/linkshelf/pkg/linkshelf/query"
	"github.com/mikepea/linkshelf/pkg/linkshelf/store"
	"github.com/mikepea/linkshelf/pkg/linkshelf/validation"
	"go.uber.org/zap"
)

const (
	msgNoMatches = "No bookmarks found"
	msgBadOrder  = "Bad order request"
	msgNotFound  = "Bookmark not found"
)

// Handler handles bookmark requests
type Handler struct {
	store    *store.Store
	log      *zap.Logger
	maxLimit int
}

// Option configures a Handler
type Option func(*Handler)

// WithMaxLimit caps the page size a client may request
func WithMaxLimit(n int) Option {
	return func(h *Handler) {
		h.maxLimit = n
	}
}

// NewHandler creates a new bookmarks handler
func NewHandler(s *store.Store, log *zap.Logger, opts ...Option) *Handler {
	h := &Handler{store: s, log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ListResponse is the body of a successful list request
type ListResponse struct {
	Length int64             `json:"length"`
	Data   []models.Bookmark `json:"data"`
}

// CreatedBookmark identifies a newly created bookmark
type CreatedBookmark struct {
	GUID      string `json:"guid"`
	CreatedAt int64  `json:"createdAt"`
}

// backendError logs a persistence failure and hides it behind a fixed message
func (h *Handler) backendError(c *gin.Context, operation string, err error) {
	h.log.Error("bookmark operation failed",
		zap.String("operation", operation),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	metrics.Observe(operation, metrics.OutcomeBackendErr)
	envelope.Error(c, http.StatusBadRequest, envelope.ScopeBackend, envelope.BackendMessage)
}

func (h *Handler) validationError(c *gin.Context, operation string, verr *validation.Error) {
	metrics.Observe(operation, metrics.OutcomeInvalid)
	envelope.Error(c, http.StatusBadRequest, envelope.ScopeValidation, verr)
}

func (h *Handler) notFound(c *gin.Context, operation string) {
	metrics.Observe(operation, metrics.OutcomeNotFound)
	envelope.Error(c, http.StatusNotFound, envelope.ScopeBookmarks, msgNotFound)
}

// bindBody decodes a JSON object body
func bindBody(c *gin.Context) (map[string]any, *validation.Error) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, &validation.Error{Code: validation.CodeInvalidBody, Description: "Body must be a JSON object"}
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}

// List returns a page of bookmarks
// @Summary List bookmarks
// @Description Page through bookmarks. Any query key other than limit, offset, sort_by and sort_dir is an equality filter on the column of that name.
// @Tags bookmarks
// @Produce json
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Offset (default 0)"
// @Param sort_by query string false "Sort column (default createdAt)"
// @Param sort_dir query string false "asc or desc (default asc)"
// @Success 200 {object} ListResponse
// @Failure 400 {object} map[string]interface{} "Bad order or backend error"
// @Failure 401 {object} map[string]interface{} "No bookmarks found"
// @Router /bookmarks [get]
func (h *Handler) List(c *gin.Context) {
	control, filters := query.SplitQuery(c.Request.URL.Query())
	control = control.Capped(h.maxLimit)

	if err := control.Validate(); err != nil {
		metrics.Observe("list", metrics.OutcomeInvalid)
		envelope.Error(c, http.StatusBadRequest, envelope.ScopeBookmarks, msgBadOrder)
		return
	}

	ctx := c.Request.Context()
	total, err := h.store.Count(ctx, filters)
	if err != nil {
		h.backendError(c, "list", err)
		return
	}

	// 401 for an empty result is what existing clients expect
	if total == 0 {
		metrics.Observe("list", metrics.OutcomeNotFound)
		envelope.Error(c, http.StatusUnauthorized, envelope.ScopeBookmarks, msgNoMatches)
		return
	}

	page, err := h.store.List(ctx, control, filters)
	if errors.Is(err, query.ErrBadOrder) || (err == nil && page == nil) {
		metrics.Observe("list", metrics.OutcomeInvalid)
		envelope.Error(c, http.StatusBadRequest, envelope.ScopeBookmarks, msgBadOrder)
		return
	}
	if err != nil {
		h.backendError(c, "list", err)
		return
	}

	metrics.Observe("list", metrics.OutcomeOK)
	c.JSON(http.StatusOK, ListResponse{Length: total, Data: page})
}

// Get returns a single bookmark
// @Summary Get a bookmark
// @Tags bookmarks
// @Produce json
// @Param guid path string true "Bookmark guid"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "Bookmark not found"
// @Router /bookmarks/{guid} [get]
func (h *Handler) Get(c *gin.Context) {
	bookmark, err := h.store.Get(c.Request.Context(), c.Param("guid"))
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(c, "get")
		return
	}
	if err != nil {
		h.backendError(c, "get", err)
		return
	}

	metrics.Observe("get", metrics.OutcomeOK)
	envelope.Data(c, http.StatusOK, bookmark)
}

// Exists reports whether a bookmark exists via the status code alone
// @Summary Check a bookmark exists
// @Tags bookmarks
// @Param guid path string true "Bookmark guid"
// @Success 200
// @Failure 404
// @Router /bookmarks/{guid} [head]
func (h *Handler) Exists(c *gin.Context) {
	exists, err := h.store.Exists(c.Request.Context(), c.Param("guid"))
	if err != nil {
		h.log.Error("bookmark operation failed", zap.String("operation", "exists"), zap.Error(err))
		metrics.Observe("exists", metrics.OutcomeBackendErr)
		c.Status(http.StatusBadRequest)
		return
	}
	if !exists {
		metrics.Observe("exists", metrics.OutcomeNotFound)
		c.Status(http.StatusNotFound)
		return
	}

	metrics.Observe("exists", metrics.OutcomeOK)
	c.Status(http.StatusOK)
}

// Create creates a new bookmark
// @Summary Create a bookmark
// @Tags bookmarks
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "link (required), description, favorites"
// @Success 200 {object} CreatedBookmark
// @Failure 400 {object} map[string]interface{} "Validation or backend error"
// @Router /bookmarks [post]
func (h *Handler) Create(c *gin.Context) {
	body, verr := bindBody(c)
	if verr != nil {
		h.validationError(c, "create", verr)
		return
	}

	if _, ok := body["link"]; !ok {
		verr = validation.ValidateLink("")
	} else {
		verr = validation.ValidateFields(body)
	}
	if verr != nil {
		h.validationError(c, "create", verr)
		return
	}

	bookmark := models.Bookmark{Link: body["link"].(string)}
	if description, ok := body["description"].(string); ok {
		bookmark.Description = description
	}
	if favorites, ok := body["favorites"].(bool); ok {
		bookmark.Favorites = favorites
	}

	if err := h.store.Create(c.Request.Context(), &bookmark); err != nil {
		h.backendError(c, "create", err)
		return
	}

	metrics.Observe("create", metrics.OutcomeOK)
	envelope.Data(c, http.StatusOK, CreatedBookmark{GUID: bookmark.GUID, CreatedAt: bookmark.CreatedAt})
}

// Update applies a partial update to a bookmark
// @Summary Update a bookmark
// @Description Only the fields present in the body are changed. updatedAt is set on every update.
// @Tags bookmarks
// @Accept json
// @Produce json
// @Param guid path string true "Bookmark guid"
// @Param request body map[string]interface{} true "Any of link, description, favorites"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Validation or backend error"
// @Failure 404 {object} map[string]interface{} "Bookmark not found"
// @Router /bookmarks/{guid} [patch]
func (h *Handler) Update(c *gin.Context) {
	body, verr := bindBody(c)
	if verr != nil {
		h.validationError(c, "update", verr)
		return
	}
	if verr := validation.ValidateFields(body); verr != nil {
		h.validationError(c, "update", verr)
		return
	}

	err := h.store.Update(c.Request.Context(), c.Param("guid"), body)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(c, "update")
		return
	}
	if err != nil {
		h.backendError(c, "update", err)
		return
	}

	metrics.Observe("update", metrics.OutcomeOK)
	envelope.Data(c, http.StatusOK, "OK")
}

// Delete deletes a bookmark
// @Summary Delete a bookmark
// @Tags bookmarks
// @Produce json
// @Param guid path string true "Bookmark guid"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Backend error"
// @Failure 404 {object} map[string]interface{} "Bookmark not found"
// @Router /bookmarks/{guid} [delete]
func (h *Handler) Delete(c *gin.Context) {
	err := h.store.Delete(c.Request.Context(), c.Param("guid"))
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(c, "delete")
		return
	}
	if err != nil {
		h.backendError(c, "delete", err)
		return
	}

	metrics.Observe("delete", metrics.OutcomeOK)
	envelope.Data(c, http.StatusOK, "OK")
}

// RegisterRoutes registers bookmark routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)

	rg.GET("/:guid", h.Get)
	rg.HEAD("/:guid", h.Exists)
	rg.PATCH("/:guid", h.Update)
	rg.DELETE("/:guid", h.Delete)
}
