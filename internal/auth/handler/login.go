package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/apperr"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/auth"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/auth/credentials"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/logger"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/session"
)

const msgInvalidLogin = "Invalid email or password"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, errKey, apperr.Auth(http.StatusBadRequest, msgInvalidLogin, err))
		return
	}

	user, err := h.credentials.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, credentials.ErrInvalidCredentials) {
		apperr.Respond(c, errKey, apperr.Auth(http.StatusBadRequest, msgInvalidLogin, err))
		return
	}
	if err != nil {
		apperr.Respond(c, errKey, err)
		return
	}

	id := auth.Identity{
		ID:       user.ID.Hex(),
		Username: user.Name,
		Email:    user.Email,
	}

	token, lifetime, err := h.tokens.Issue(id)
	if err != nil {
		apperr.Respond(c, errKey, &apperr.Error{
			Kind:    apperr.KindInternal,
			Status:  http.StatusInternalServerError,
			Message: "Error generating token",
			Err:     err,
		})
		return
	}

	// Cache is an accelerator; check-auth verifies the token on a miss.
	if err := h.sessionStore.Put(c.Request.Context(), token, id, lifetime); err != nil {
		logger.Warn("login: session cache write failed", map[string]any{
			"error":   err,
			"user_id": id.ID,
		})
	}

	session.SetCookie(c.Writer, token, h.tokens.TTL(), h.cookie)

	logger.Info("login succeeded", map[string]any{
		"user_id":   id.ID,
		"client_ip": c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    id,
		"message": "Login successful",
	})
}
