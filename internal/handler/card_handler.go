package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/dto"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/response"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/service"
)

type CardHandler struct {
	cardService service.CardService
}

func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// CreateCard godoc
// @Summary      Create a card
// @Description  Creates a card at the end of the list
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Param        request body dto.CreateCardRequest true "Card to create"
// @Success      201 {object} response.SuccessResponse{data=dto.CardResponse} "Card created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      404 {object} response.ErrorResponse "List not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /lists/{listId}/cards [post]
func (h *CardHandler) CreateCard(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	req.ListID = listID

	card, err := h.cardService.CreateCard(c, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, card)
}

// GetCards godoc
// @Summary      List a list's cards
// @Description  Returns the list's cards in position order
// @Tags         cards
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CardResponse} "Cards"
// @Failure      400 {object} response.ErrorResponse "Invalid list ID"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      404 {object} response.ErrorResponse "List not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /lists/{listId}/cards [get]
func (h *CardHandler) GetCards(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	cards, err := h.cardService.GetCards(c, listID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, cards)
}

// UpdateCard godoc
// @Summary      Update a card
// @Description  Updates card fields; omitted fields are left unchanged. Setting assigneeId to the nil UUID clears the assignee.
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Param        request body dto.UpdateCardRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse} "Card updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      404 {object} response.ErrorResponse "Card not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /cards/{cardId} [put]
func (h *CardHandler) UpdateCard(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("cardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid card ID")
		return
	}

	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	card, err := h.cardService.UpdateCard(c, cardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, card)
}

// MoveCard godoc
// @Summary      Move a card
// @Description  Moves a card to a target list and zero-based index within that list. Both lists must belong to the same board.
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Param        request body dto.MoveCardRequest true "Target list and index"
// @Success      200 {object} response.SuccessResponse{data=dto.CardMovedResponse} "Card moved"
// @Failure      400 {object} response.ErrorResponse "Invalid request or cross-board move"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      404 {object} response.ErrorResponse "Card or target list not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /cards/{cardId}/move [post]
func (h *CardHandler) MoveCard(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("cardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid card ID")
		return
	}

	var req dto.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	moved, err := h.cardService.MoveCard(c, cardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, moved)
}

// DeleteCard godoc
// @Summary      Delete a card
// @Description  Deletes a card and its comments
// @Tags         cards
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CardDeletedResponse} "Card deleted"
// @Failure      400 {object} response.ErrorResponse "Invalid card ID"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      404 {object} response.ErrorResponse "Card not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /cards/{cardId} [delete]
func (h *CardHandler) DeleteCard(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("cardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid card ID")
		return
	}

	deleted, err := h.cardService.DeleteCard(c, cardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, deleted)
}
