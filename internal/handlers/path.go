package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/services"
)

type PathHandler struct {
	log    *logger.Logger
	recSvc services.RecommendationService
}

func NewPathHandler(log *logger.Logger, recSvc services.RecommendationService) *PathHandler {
	return &PathHandler{
		log:    log.With("handler", "PathHandler"),
		recSvc: recSvc,
	}
}

// GET /api/learning-path
func (h *PathHandler) GetActivePath(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	path, err := h.recSvc.GetActivePath(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNoActivePath) {
			RespondError(c, http.StatusNotFound, "NO_ACTIVE_PATH", err)
			return
		}
		h.log.Warn("GetActivePath failed", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, "INTERNAL", err)
		return
	}
	RespondOK(c, path)
}

// POST /api/learning-path/regenerate
func (h *PathHandler) RegeneratePath(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var body struct {
		ThinkingTypeID string `json:"thinkingTypeId"`
		TargetLevel    int    `json:"targetLevel"`
		LearningStyle  string `json:"learningStyle"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			RespondError(c, http.StatusBadRequest, "BAD_REQUEST", err)
			return
		}
	}

	path, err := h.recSvc.RegeneratePath(c.Request.Context(), userID, services.GeneratePathInput{
		ThinkingTypeID: body.ThinkingTypeID,
		TargetLevel:    body.TargetLevel,
		LearningStyle:  body.LearningStyle,
	})
	if err != nil {
		h.log.Warn("RegeneratePath failed", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, "INTERNAL", err)
		return
	}
	RespondOK(c, path)
}
