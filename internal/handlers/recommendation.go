package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/requestdata"
	"github.com/mindforge/thinkpath-backend/internal/services"
)

type RecommendationHandler struct {
	log    *logger.Logger
	recSvc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recSvc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:    log.With("handler", "RecommendationHandler"),
		recSvc: recSvc,
	}
}

func requestUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusForbidden, "FORBIDDEN", errors.New("missing user identity"))
		return uuid.Nil, false
	}
	return rd.UserID, true
}

// GET /api/daily-task
func (h *RecommendationHandler) GetDailyTask(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	task, err := h.recSvc.GetDailyTask(c.Request.Context(), userID)
	if err != nil {
		h.log.Warn("GetDailyTask failed", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, "INTERNAL", err)
		return
	}
	RespondOK(c, task)
}

// POST /api/daily-task/complete
func (h *RecommendationHandler) CompleteTask(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var input services.CompleteTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_REQUEST", err)
		return
	}

	result, err := h.recSvc.CompleteTask(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStepNotFound):
			RespondError(c, http.StatusNotFound, "STEP_NOT_FOUND", err)
		case errors.Is(err, services.ErrPathConflict):
			RespondError(c, http.StatusConflict, "PATH_CONFLICT", err)
		case errors.Is(err, services.ErrNoActivePath):
			RespondError(c, http.StatusNotFound, "NO_ACTIVE_PATH", err)
		default:
			h.log.Warn("CompleteTask failed", "user_id", userID, "error", err)
			RespondError(c, http.StatusInternalServerError, "INTERNAL", err)
		}
		return
	}
	RespondOK(c, result)
}

// GET /api/practice/optional?exclude=<thinkingTypeId>
func (h *RecommendationHandler) GetOptionalPractices(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	practices, err := h.recSvc.GetOptionalPractices(c.Request.Context(), userID, c.Query("exclude"))
	if err != nil {
		h.log.Warn("GetOptionalPractices failed", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, "INTERNAL", err)
		return
	}
	RespondOK(c, gin.H{"practices": practices})
}
