package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/apperr"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/auth/credentials"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/logger"
)

func (h *Handler) Register(c *gin.Context) {
	var req credentials.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, errKey, apperr.Validation("Invalid request body"))
		return
	}

	user, err := h.credentials.Register(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, errKey, err)
		return
	}

	logger.Info("user registered", map[string]any{
		"user_id": user.ID.Hex(),
		"type":    string(user.Type),
	})

	c.JSON(http.StatusOK, user.Public())
}
