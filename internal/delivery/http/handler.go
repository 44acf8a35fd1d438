package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tagtracer/backend/internal/domain"
	"github.com/tagtracer/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	dashboard *usecase.DashboardService
	assistant *usecase.AssistantService
	editor    *usecase.ImageEditor
}

// NewHandler creates a new HTTP handler. Any service may be nil, in which
// case its endpoints answer 503.
func NewHandler(
	dashboard *usecase.DashboardService,
	assistant *usecase.AssistantService,
	editor *usecase.ImageEditor,
) *Handler {
	return &Handler{
		dashboard: dashboard,
		assistant: assistant,
		editor:    editor,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "tagtracer-backend",
		"version": "1.0.0",
	})
}

// ListProducts runs the filter/sort pipeline over the catalog with the
// search term and sort option given as query parameters
func (h *Handler) ListProducts(c *gin.Context) {
	if !h.requireDashboard(c) {
		return
	}

	st := h.dashboard.Snapshot()
	products := usecase.FilterAndSort(st.Catalog, c.Query("search"), domain.ParseSortOption(c.Query("sort")))
	c.JSON(http.StatusOK, newProductsResponse(products))
}

// GetDashboard returns the current dashboard state
func (h *Handler) GetDashboard(c *gin.Context) {
	if !h.requireDashboard(c) {
		return
	}
	c.JSON(http.StatusOK, newDashboardResponse(h.dashboard.Snapshot()))
}

// UpdateView sets the search term and sort option of the dashboard
func (h *Handler) UpdateView(c *gin.Context) {
	if !h.requireDashboard(c) {
		return
	}

	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	st := h.dashboard.SetView(req.SearchTerm, domain.ParseSortOption(req.SortBy))
	c.JSON(http.StatusOK, newDashboardResponse(st))
}

// SyncCatalog re-reads the configured catalog feed
func (h *Handler) SyncCatalog(c *gin.Context) {
	if !h.requireDashboard(c) {
		return
	}

	count, err := h.dashboard.SyncFromFeed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": count})
}

// GlobalSearch runs a live comparison and recommendation search
func (h *Handler) GlobalSearch(c *gin.Context) {
	if !h.requireDashboard(c) {
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	st, err := h.dashboard.GlobalSearch(c.Request.Context(), req.Query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDashboardResponse(st))
}

// SearchRecommendation searches for a recommended product by name
func (h *Handler) SearchRecommendation(c *gin.Context) {
	if !h.requireDashboard(c) {
		return
	}

	var req recommendationSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	st, err := h.dashboard.SearchFromRecommendation(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDashboardResponse(st))
}

// ListMessages returns the assistant conversation
func (h *Handler) ListMessages(c *gin.Context) {
	if h.assistant == nil {
		notConfigured(c, "assistant")
		return
	}

	history := h.assistant.History()
	messages := make([]chatMessageResponse, 0, len(history))
	for _, msg := range history {
		messages = append(messages, newChatMessageResponse(msg))
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage asks the assistant a question
func (h *Handler) SendMessage(c *gin.Context) {
	if h.assistant == nil {
		notConfigured(c, "assistant")
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	reply, err := h.assistant.Send(c.Request.Context(), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newChatMessageResponse(reply))
}

// ImagePresets lists suggested edit instructions
func (h *Handler) ImagePresets(c *gin.Context) {
	if h.editor == nil {
		notConfigured(c, "image editor")
		return
	}
	c.JSON(http.StatusOK, gin.H{"presets": h.editor.Presets()})
}

// BeginImageEdit opens an edit session for a product
func (h *Handler) BeginImageEdit(c *gin.Context) {
	if h.editor == nil {
		notConfigured(c, "image editor")
		return
	}

	var req beginEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}

	session, err := h.editor.Begin(c.Request.Context(), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetImageEdit returns an open edit session
func (h *Handler) GetImageEdit(c *gin.Context) {
	if h.editor == nil {
		notConfigured(c, "image editor")
		return
	}

	session, err := h.editor.Session(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ApplyImageEdit produces a new pending preview
func (h *Handler) ApplyImageEdit(c *gin.Context) {
	if h.editor == nil {
		notConfigured(c, "image editor")
		return
	}

	var req applyEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode (refine|fresh) and prompt are required"})
		return
	}

	session, err := h.editor.Apply(c.Request.Context(), c.Param("id"), usecase.EditMode(req.Mode), req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ConfirmImageEdit commits the pending preview to the product
func (h *Handler) ConfirmImageEdit(c *gin.Context) {
	if h.editor == nil {
		notConfigured(c, "image editor")
		return
	}

	product, err := h.editor.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CancelImageEdit discards an edit session
func (h *Handler) CancelImageEdit(c *gin.Context) {
	if h.editor == nil {
		notConfigured(c, "image editor")
		return
	}

	if err := h.editor.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) requireDashboard(c *gin.Context) bool {
	if h.dashboard == nil {
		notConfigured(c, "dashboard")
		return false
	}
	return true
}

func notConfigured(c *gin.Context, what string) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": what + " not configured"})
}

// respondError maps domain errors to a status code and a short message
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrEditSessionNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrAssistantBusy):
		status, message = http.StatusConflict, domain.ErrAssistantBusy.Error()
	case errors.Is(err, domain.ErrSourceImageUnavailable):
		status, message = http.StatusUnprocessableEntity, domain.ErrSourceImageUnavailable.Error()
	case errors.Is(err, domain.ErrAIEmptyResult):
		status, message = http.StatusUnprocessableEntity, domain.ErrAIEmptyResult.Error()
	case errors.Is(err, domain.ErrRateLimited):
		status, message = http.StatusTooManyRequests, domain.ErrRateLimited.Error()
	case errors.Is(err, domain.ErrAIServiceFailure):
		status, message = http.StatusBadGateway, domain.ErrAIServiceFailure.Error()
	case errors.Is(err, domain.ErrFeedFailure):
		status, message = http.StatusBadGateway, domain.ErrFeedFailure.Error()
	case errors.Is(err, domain.ErrCacheUnavailable):
		status, message = http.StatusServiceUnavailable, domain.ErrCacheUnavailable.Error()
	}

	c.JSON(status, gin.H{"error": message})
}
