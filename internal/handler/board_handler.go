package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/dto"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/response"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/service"
)

// BoardHandler serves board CRUD and membership endpoints.
// Services read the authenticated user id from the context, so handlers
// pass the gin context through rather than c.Request.Context().
type BoardHandler struct {
	boardService service.BoardService
}

func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// CreateBoard godoc
// @Summary      Create a board
// @Description  Creates a board owned by the authenticated user, who becomes its first member
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBoardRequest true "Board to create"
// @Success      201 {object} response.SuccessResponse{data=dto.BoardResponse} "Board created"
// @Failure      400 {object} response.ErrorResponse "Invalid request body"
// @Failure      401 {object} response.ErrorResponse "Not authenticated"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards [post]
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(c, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, board)
}

// GetBoards godoc
// @Summary      List my boards
// @Description  Returns every board the authenticated user is a member of
// @Tags         boards
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.BoardResponse} "Boards"
// @Failure      401 {object} response.ErrorResponse "Not authenticated"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards [get]
func (h *BoardHandler) GetBoards(c *gin.Context) {
	boards, err := h.boardService.GetBoards(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, boards)
}

// GetBoard godoc
// @Summary      Get a board with its lists and cards
// @Description  Returns the full board: metadata, members, active lists and their cards
// @Tags         boards
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardDetailResponse} "Board detail"
// @Failure      400 {object} response.ErrorResponse "Invalid board ID"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId} [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	board, err := h.boardService.GetBoard(c, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}

// UpdateBoard godoc
// @Summary      Update a board
// @Description  Updates title, description or visibility; omitted fields are left unchanged
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.UpdateBoardRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse} "Board updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId} [put]
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	var req dto.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	board, err := h.boardService.UpdateBoard(c, boardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}

// DeleteBoard godoc
// @Summary      Delete a board
// @Description  Deletes the board and everything on it. Only the owner may delete a board.
// @Tags         boards
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse "Board deleted"
// @Failure      400 {object} response.ErrorResponse "Invalid board ID"
// @Failure      403 {object} response.ErrorResponse "Not the board owner"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId} [delete]
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	if err := h.boardService.DeleteBoard(c, boardID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}

// AddMember godoc
// @Summary      Add a board member
// @Description  Adds a user to the board. Adding an existing member is a no-op and returns the current membership.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.AddMemberRequest true "User to add"
// @Success      201 {object} response.SuccessResponse{data=dto.MemberResponse} "Member added"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId}/members [post]
func (h *BoardHandler) AddMember(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	// The path is authoritative for the board id
	req.BoardID = boardID

	member, err := h.boardService.AddMember(c, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, member)
}

// RemoveMember godoc
// @Summary      Remove a board member
// @Description  Removes a user from the board. Removing a non-member is a no-op; the owner cannot be removed.
// @Tags         members
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        userId path string true "User ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.MemberRemovedResponse} "Member removed"
// @Failure      400 {object} response.ErrorResponse "Invalid ID"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId}/members/{userId} [delete]
func (h *BoardHandler) RemoveMember(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid user ID")
		return
	}

	removed, err := h.boardService.RemoveMember(c, boardID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, removed)
}
