package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"threadbox/internal/middleware"
	"threadbox/internal/models"
	"threadbox/internal/services"
	"threadbox/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments  *services.CommentService
	reactions *services.ReactionService
	logger    *slog.Logger
}

func NewCommentHandler(comments *services.CommentService, reactions *services.ReactionService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, reactions: reactions, logger: logger}
}

// List returns one page of top-level comments, newest first, each with
// its full reply tree, plus the page window over the total.
func (h *CommentHandler) List(c *gin.Context) {
	limit := utils.ParseLimit(c.Query("limit"))
	offset := utils.ParseOffset(c.Query("offset"))

	comments, total, err := h.comments.ListPage(limit, offset)
	if err != nil {
		internalError(c, h.logger, "Failed to retrieve comments", err)
		return
	}

	window := services.ComputeWindow(total, limit, offset)
	c.JSON(http.StatusOK, gin.H{
		"comments":    comments,
		"total":       total,
		"total_pages": window.TotalPages,
		"has_prev":    window.HasPrev,
		"has_next":    window.HasNext,
	})
}

type createCommentRequest struct {
	Text     string `json:"text"`
	ParentID *uint  `json:"parentId"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "Token required")
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Comment text cannot be empty")
		return
	}

	comment, err := h.comments.Create(req.Text, req.ParentID, claims.UserID)
	switch {
	case errors.Is(err, services.ErrEmptyText):
		errorJSON(c, http.StatusBadRequest, "Comment text cannot be empty")
	case errors.Is(err, services.ErrNotFound):
		errorJSON(c, http.StatusNotFound, "Parent comment not found")
	case err != nil:
		internalError(c, h.logger, "Failed to add comment", err)
	default:
		c.JSON(http.StatusCreated, comment)
	}
}

type editCommentRequest struct {
	Text string `json:"text"`
}

func (h *CommentHandler) Update(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "Token required")
		return
	}

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		errorJSON(c, http.StatusNotFound, "Comment not found")
		return
	}

	var req editCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Updated text is required")
		return
	}

	comment, err := h.comments.Edit(id, req.Text, claims.UserID)
	switch {
	case errors.Is(err, services.ErrEmptyText):
		errorJSON(c, http.StatusBadRequest, "Updated text is required")
	case errors.Is(err, services.ErrNotFound):
		errorJSON(c, http.StatusNotFound, "Comment not found")
	case errors.Is(err, services.ErrForbidden):
		errorJSON(c, http.StatusForbidden, "You can only edit your own comments.")
	case err != nil:
		internalError(c, h.logger, "Failed to edit comment", err)
	default:
		c.JSON(http.StatusOK, comment)
	}
}

func (h *CommentHandler) Delete(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "Token required")
		return
	}

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		errorJSON(c, http.StatusNotFound, "Comment not found")
		return
	}

	err := h.comments.Delete(id, claims.UserID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		errorJSON(c, http.StatusNotFound, "Comment not found")
	case errors.Is(err, services.ErrForbidden):
		errorJSON(c, http.StatusForbidden, "You can only delete your own comments.")
	case err != nil:
		internalError(c, h.logger, "Failed to delete comment", err)
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully", "id": id})
	}
}

func (h *CommentHandler) Like(c *gin.Context) {
	h.react(c, models.ReactionLike, "You already liked this comment.", "Failed to like comment")
}

func (h *CommentHandler) Dislike(c *gin.Context) {
	h.react(c, models.ReactionDislike, "You already disliked this comment.", "Failed to dislike comment")
}

func (h *CommentHandler) react(c *gin.Context, status, conflictMsg, failMsg string) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "Token required")
		return
	}

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		errorJSON(c, http.StatusNotFound, "Comment not found")
		return
	}

	counts, err := h.reactions.React(id, claims.UserID, status)
	switch {
	case errors.Is(err, services.ErrAlreadyReacted):
		errorJSON(c, http.StatusBadRequest, conflictMsg)
	case errors.Is(err, services.ErrNotFound):
		errorJSON(c, http.StatusNotFound, "Comment not found")
	case err != nil:
		internalError(c, h.logger, failMsg, err)
	default:
		c.JSON(http.StatusOK, counts)
	}
}

// Likes reports a comment's reaction counts and the caller's own status.
func (h *CommentHandler) Likes(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "Token required")
		return
	}

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		errorJSON(c, http.StatusNotFound, "Comment not found")
		return
	}

	counts, status, err := h.reactions.Summary(id, claims.UserID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		errorJSON(c, http.StatusNotFound, "Comment not found")
	case err != nil:
		internalError(c, h.logger, "Failed to fetch likes", err)
	default:
		c.JSON(http.StatusOK, gin.H{
			"likes":      counts.Likes,
			"dislikes":   counts.Dislikes,
			"likeStatus": status,
		})
	}
}
