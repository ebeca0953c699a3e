package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/dto"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/response"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CreateComment godoc
// @Summary      Comment on a card
// @Description  Adds a comment authored by the authenticated user
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Param        request body dto.CreateCommentRequest true "Comment to create"
// @Success      201 {object} response.SuccessResponse{data=dto.CommentResponse} "Comment created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      404 {object} response.ErrorResponse "Card not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /cards/{cardId}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("cardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid card ID")
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	req.CardID = cardID

	comment, err := h.commentService.CreateComment(c, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, comment)
}

// GetComments godoc
// @Summary      List a card's comments
// @Description  Returns the card's comments oldest first
// @Tags         comments
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CommentResponse} "Comments"
// @Failure      400 {object} response.ErrorResponse "Invalid card ID"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      404 {object} response.ErrorResponse "Card not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /cards/{cardId}/comments [get]
func (h *CommentHandler) GetComments(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("cardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid card ID")
		return
	}

	comments, err := h.commentService.GetComments(c, cardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comments)
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Description  Rewrites a comment's content. Only the author may edit a comment.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        commentId path string true "Comment ID (UUID)"
// @Param        request body dto.UpdateCommentRequest true "New content"
// @Success      200 {object} response.SuccessResponse{data=dto.CommentResponse} "Comment updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "Not the comment author"
// @Failure      404 {object} response.ErrorResponse "Comment not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /comments/{commentId} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid comment ID")
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.commentService.UpdateComment(c, commentID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Deletes a comment. Only the author may delete a comment.
// @Tags         comments
// @Produce      json
// @Param        commentId path string true "Comment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CommentDeletedResponse} "Comment deleted"
// @Failure      400 {object} response.ErrorResponse "Invalid comment ID"
// @Failure      403 {object} response.ErrorResponse "Not the comment author"
// @Failure      404 {object} response.ErrorResponse "Comment not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /comments/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid comment ID")
		return
	}

	deleted, err := h.commentService.DeleteComment(c, commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, deleted)
}
