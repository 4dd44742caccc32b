package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/services"
)

type UserHandler struct {
	log      *logger.Logger
	stateSvc services.UserStateService
}

func NewUserHandler(log *logger.Logger, stateSvc services.UserStateService) *UserHandler {
	return &UserHandler{
		log:      log.With("handler", "UserHandler"),
		stateSvc: stateSvc,
	}
}

// GET /api/user/state
func (h *UserHandler) GetUserState(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	state, err := h.stateSvc.GetUserState(c.Request.Context(), userID)
	if err != nil {
		h.log.Warn("GetUserState failed", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, "INTERNAL", err)
		return
	}
	RespondOK(c, state)
}

// PUT /api/user/preferences
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var patch services.PreferencePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_REQUEST", err)
		return
	}

	prefs, err := h.stateSvc.UpdatePreferences(c.Request.Context(), userID, patch)
	if err != nil {
		h.log.Warn("UpdatePreferences failed", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, "INTERNAL", err)
		return
	}
	RespondOK(c, prefs)
}
