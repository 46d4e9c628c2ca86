package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/services"
)

// CommentHandler handles recipe comments.
type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers the authenticated comment routes on the
// recipes group.
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/:id/comments", h.CreateComment)
	g.PUT("/comments/:commentId", h.UpdateComment)
	g.DELETE("/comments/:commentId", h.DeleteComment)
}

// RegisterPublicCommentRoutes registers the listing, open to guests.
func (h *CommentHandler) RegisterPublicCommentRoutes(g *echo.Group) {
	g.GET("/:id/comments", h.ListComments)
}

// CreateComment adds a comment and notifies the recipe author.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	recipeID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.comments.Create(c.Request().Context(), recipeID, userID, req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Comment created successfully", map[string]any{"comment": comment})
}

// UpdateComment edits the caller's own comment.
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	commentID, err := objectIDParam(c, "commentId")
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.comments.Update(c.Request().Context(), commentID, userID, req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Comment updated successfully", map[string]any{"comment": comment})
}

// DeleteComment soft-deletes a comment. Author or admin.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	commentID, err := objectIDParam(c, "commentId")
	if err != nil {
		return err
	}

	if err := h.comments.Delete(c.Request().Context(), commentID, userID, currentRole(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Comment deleted successfully", nil)
}

// ListComments returns a recipe's live comments with their authors.
func (h *CommentHandler) ListComments(c echo.Context) error {
	recipeID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	comments, err := h.comments.ListByPost(c.Request().Context(), recipeID, page)
	if err != nil {
		return err
	}

	payload := map[string]any{"comments": comments}
	if len(comments) > 0 {
		if cursor := nextCursor(len(comments), page, comments[len(comments)-1].CreatedAt); cursor != "" {
			payload["nextCursor"] = cursor
		}
	}
	return respond(c, http.StatusOK, "Comments fetched successfully", payload)
}
