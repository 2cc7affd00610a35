package handler

import (
	"errors"
	"net/http"
	"strings"

	"blog-service/internal/blog"
	"blog-service/internal/blog/service"
	"blog-service/pkg/logger"
	"blog-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CreateBlogRequest is the payload for POST /blogs. Author is optional and
// defaults to Anonymous when absent or empty.
type CreateBlogRequest struct {
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body" binding:"required"`
	Author string `json:"author"`
}

// UpdateBlogRequest is the payload for PUT /blogs/:id. A missing or empty
// author leaves the stored value unchanged.
type UpdateBlogRequest struct {
	Title  string  `json:"title" binding:"required"`
	Body   string  `json:"body" binding:"required"`
	Author *string `json:"author"`
}

// BlogHandler holds dependencies
type BlogHandler struct {
	svc service.Service
}

func NewBlogHandler(svc service.Service) *BlogHandler {
	return &BlogHandler{svc: svc}
}

// Register routes under /blogs
func (h *BlogHandler) Register(r *gin.Engine) {
	b := r.Group("/blogs")
	b.POST("", h.Create)
	b.GET("", h.List)
	b.GET("/:id", h.Get)
	b.PUT("/:id", h.Update)
	b.DELETE("/:id", h.Delete)
}

// Create stores a new post and returns it with its assigned id and timestamps.
func (h *BlogHandler) Create(c *gin.Context) {
	var req CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, blog.CategoryValidation, bindingErrorMessage(err))
		return
	}
	post, err := h.svc.Create(c.Request.Context(), req.Title, req.Body, req.Author)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// List returns every post, newest first.
func (h *BlogHandler) List(c *gin.Context) {
	posts, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *BlogHandler) Get(c *gin.Context) {
	post, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *BlogHandler) Update(c *gin.Context) {
	var req UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, blog.CategoryValidation, bindingErrorMessage(err))
		return
	}
	post, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.Title, req.Body, req.Author)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "blog post deleted", "id": id})
}

// serviceError translates domain errors into the response taxonomy. Anything
// unrecognized is logged and reported as a generic server error so driver
// details never reach clients.
func (h *BlogHandler) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, blog.ErrInvalidID):
		respondError(c, http.StatusBadRequest, blog.CategoryInvalidID, err.Error())
	case errors.Is(err, blog.ErrValidation):
		respondError(c, http.StatusBadRequest, blog.CategoryValidation, err.Error())
	case errors.Is(err, blog.ErrNotFound):
		respondError(c, http.StatusNotFound, blog.CategoryNotFound, err.Error())
	default:
		logger.ErrorWithTraceID(logger.Fields{
			"request_id": middleware.RequestID(c),
			"error":      err.Error(),
		}, "blog request failed")
		respondError(c, http.StatusInternalServerError, blog.CategoryServer, "an unexpected error occurred")
	}
}

func respondError(c *gin.Context, status int, category, message string) {
	c.JSON(status, gin.H{"error": category, "message": message})
}

func bindingErrorMessage(err error) string {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		fields := make([]string, 0, len(verr))
		for _, fe := range verr {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return "missing required fields: " + strings.Join(fields, ", ")
	}
	return "invalid request body"
}
