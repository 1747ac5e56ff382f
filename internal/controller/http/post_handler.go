package http

import (
	"errors"
	"net/http"
	"strings"

	"storypad/internal/apperr"
	"storypad/internal/entity"
	"storypad/internal/sanitize"
	"storypad/internal/usecase"
	"storypad/pkg/logger"
	"storypad/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase          usecase.PostUseCase
	logger               *logger.Logger
	ampIframePlaceholder string
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger, ampIframePlaceholder string) *PostHandler {
	return &PostHandler{
		postUseCase:          postUseCase,
		logger:               logger,
		ampIframePlaceholder: ampIframePlaceholder,
	}
}

type SaveRequest struct {
	Title  string `json:"title" form:"title"`
	Author string `json:"author" form:"author"`
	Story  string `json:"story" form:"story"`
	Delta  string `json:"delta" form:"delta"`
	Code   string `json:"code" form:"code"`
}

// Save godoc
// @Summary      Publish or edit a story
// @Description  Creates a new post, or edits an existing one when a valid edit code is supplied and the requester is the original creator.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        post body SaveRequest true "Post fields; code present means edit"
// @Success      200  {object}  usecase.SaveResult
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /save [post]
func (h *PostHandler) Save(c *gin.Context) {
	ownerIdentity := c.GetString(middleware.IdentityKey)

	var req SaveRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	res, err := h.postUseCase.Save(c.Request.Context(), usecase.SaveInput{
		Title:  req.Title,
		Author: req.Author,
		Story:  req.Story,
		Delta:  req.Delta,
		Code:   req.Code,
	}, ownerIdentity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Show godoc
// @Summary      Public post view
// @Tags         posts
// @Produce      json
// @Param        slug path string true "Post slug"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /{slug} [get]
func (h *PostHandler) Show(c *gin.Context) {
	post, ok := h.resolve(c)
	if !ok {
		return
	}

	root := rootURL(c.Request)
	ownerIdentity := c.GetString(middleware.IdentityKey)

	c.JSON(http.StatusOK, gin.H{
		"slug":       post.Slug,
		"title":      post.Title,
		"author":     post.Author,
		"story":      post.Story,
		"url":        post.URL(),
		"ampUrl":     post.AmpURL(),
		"absUrl":     root + post.URL(),
		"absAmpUrl":  root + post.AmpURL(),
		"canEdit":    post.Editable(ownerIdentity),
		"created_at": post.CreatedAt,
		"updated_at": post.UpdatedAt,
	})
}

// Edit godoc
// @Summary      Edit view
// @Description  Returns the full post including the edit code and editor delta. Owner only.
// @Tags         posts
// @Produce      json
// @Param        slug path string true "Post slug"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /{slug}/edit [get]
func (h *PostHandler) Edit(c *gin.Context) {
	post, ok := h.resolve(c)
	if !ok {
		return
	}

	ownerIdentity := c.GetString(middleware.IdentityKey)
	if !post.Editable(ownerIdentity) {
		respondError(c, h.logger, apperr.Forbidden("not allowed to edit this post"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"slug":   post.Slug,
		"code":   post.Code,
		"title":  post.Title,
		"author": post.Author,
		"story":  post.Story,
		"delta":  post.Delta,
		"url":    post.URL(),
	})
}

// ShowAMP godoc
// @Summary      AMP post view
// @Tags         posts
// @Produce      json
// @Param        slug path string true "Post slug"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /{slug}/amp [get]
func (h *PostHandler) ShowAMP(c *gin.Context) {
	post, ok := h.resolve(c)
	if !ok {
		return
	}

	root := rootURL(c.Request)
	storyAmp := strings.ReplaceAll(
		post.StoryAmp,
		sanitize.AMPIframePlaceholderToken,
		root+h.ampIframePlaceholder,
	)

	c.JSON(http.StatusOK, gin.H{
		"slug":     post.Slug,
		"title":    post.Title,
		"author":   post.Author,
		"storyAmp": storyAmp,
		"absUrl":   root + post.URL(),
		"canEdit":  post.Editable(c.GetString(middleware.IdentityKey)),
	})
}

func (h *PostHandler) resolve(c *gin.Context) (*entity.Post, bool) {
	post, err := h.postUseCase.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return post, true
}

// respondError maps the error taxonomy to transport status codes. Client
// errors carry a generic message; internals are logged, never echoed.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, apperr.ErrConflict):
		log.Warn("identifier conflict: %v", err)
		c.JSON(http.StatusConflict, gin.H{"error": "try again"})
	default:
		log.Error("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// rootURL reconstructs the request base URL the way the reverse proxy saw it.
func rootURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
