package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/dto"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/response"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/service"
)

type ListHandler struct {
	listService service.ListService
}

func NewListHandler(listService service.ListService) *ListHandler {
	return &ListHandler{
		listService: listService,
	}
}

// CreateList godoc
// @Summary      Create a list
// @Description  Creates a list at the end of the board
// @Tags         lists
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.CreateListRequest true "List to create"
// @Success      201 {object} response.SuccessResponse{data=dto.ListResponse} "List created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId}/lists [post]
func (h *ListHandler) CreateList(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	var req dto.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	req.BoardID = boardID

	list, err := h.listService.CreateList(c, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, list)
}

// GetLists godoc
// @Summary      List a board's lists
// @Description  Returns the board's lists in position order. Archived lists are included only when includeArchived=true.
// @Tags         lists
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        includeArchived query bool false "Include archived lists"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ListResponse} "Lists"
// @Failure      400 {object} response.ErrorResponse "Invalid board ID"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId}/lists [get]
func (h *ListHandler) GetLists(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	includeArchived, _ := strconv.ParseBool(c.DefaultQuery("includeArchived", "false"))

	lists, err := h.listService.GetLists(c, boardID, includeArchived)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, lists)
}

// UpdateList godoc
// @Summary      Update a list
// @Description  Renames or archives/restores a list; omitted fields are left unchanged
// @Tags         lists
// @Accept       json
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Param        request body dto.UpdateListRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.ListResponse} "List updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      404 {object} response.ErrorResponse "List not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /lists/{listId} [put]
func (h *ListHandler) UpdateList(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	var req dto.UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	list, err := h.listService.UpdateList(c, listID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// DeleteList godoc
// @Summary      Delete a list
// @Description  Deletes a list and every card on it
// @Tags         lists
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ListDeletedResponse} "List deleted"
// @Failure      400 {object} response.ErrorResponse "Invalid list ID"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      404 {object} response.ErrorResponse "List not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /lists/{listId} [delete]
func (h *ListHandler) DeleteList(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	deleted, err := h.listService.DeleteList(c, listID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, deleted)
}
