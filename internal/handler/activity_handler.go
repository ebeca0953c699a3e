package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/response"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/service"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// GetActivities godoc
// @Summary      Read a board's activity log
// @Description  Returns one page of the board's activity log, newest first
// @Tags         activities
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        page query int false "Page number, 1-based" default(1)
// @Param        limit query int false "Page size, max 100" default(50)
// @Success      200 {object} response.SuccessResponse{data=dto.ActivityListResponse} "Activity page"
// @Failure      400 {object} response.ErrorResponse "Invalid board ID"
// @Failure      403 {object} response.ErrorResponse "No access to board"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId}/activities [get]
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	activities, err := h.activityService.GetActivities(c, boardID, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, activities)
}
