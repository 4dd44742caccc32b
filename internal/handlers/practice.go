package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/services"
)

type PracticeHandler struct {
	log        *logger.Logger
	sessionSvc services.PracticeSessionService
}

func NewPracticeHandler(log *logger.Logger, sessionSvc services.PracticeSessionService) *PracticeHandler {
	return &PracticeHandler{
		log:        log.With("handler", "PracticeHandler"),
		sessionSvc: sessionSvc,
	}
}

// POST /api/practice/sessions
func (h *PracticeHandler) RecordSession(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var input services.RecordSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_REQUEST", err)
		return
	}

	session, err := h.sessionSvc.RecordSession(c.Request.Context(), userID, input)
	if err != nil {
		h.log.Warn("RecordSession failed", "user_id", userID, "error", err)
		RespondError(c, http.StatusBadRequest, "BAD_REQUEST", err)
		return
	}
	RespondOK(c, session)
}
