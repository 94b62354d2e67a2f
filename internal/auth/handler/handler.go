package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/auth"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/auth/credentials"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/logger"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/middleware"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/models"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/session"
)

// errKey is the JSON field user routes put their error message in.
const errKey = "msg"

type CredentialService interface {
	Register(ctx context.Context, in credentials.SignupInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

type TokenIssuer interface {
	Issue(id auth.Identity) (string, time.Duration, error)
	TTL() time.Duration
}

type Handler struct {
	credentials  CredentialService
	tokens       TokenIssuer
	sessionStore session.Store
	authRequired gin.HandlerFunc
	cookie       session.CookieOptions
}

func NewHandler(
	credentialService CredentialService,
	tokens TokenIssuer,
	sessionStore session.Store,
	authMiddleware *middleware.AuthMiddleware,
	cookie session.CookieOptions,
) *Handler {
	return &Handler{
		credentials:  credentialService,
		tokens:       tokens,
		sessionStore: sessionStore,
		authRequired: middleware.GinRequireAuth(authMiddleware),
		cookie:       cookie,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/user", h.Register)
	r.POST("/user-login", h.Login)
	r.GET("/logout", h.Logout)
	r.GET("/check-auth", h.authRequired, h.CheckAuth)
}

// Logout clears the cookie and drops the cached session. The token itself
// stays verifiable until it expires.
func (h *Handler) Logout(c *gin.Context) {
	if raw := session.TokenFromRequest(c.Request); raw != "" {
		if err := h.sessionStore.Delete(c.Request.Context(), raw); err != nil {
			logger.Warn("logout: session delete failed", map[string]any{
				"error": err,
			})
		}
	}

	session.ClearCookie(c.Writer, h.cookie)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h *Handler) CheckAuth(c *gin.Context) {
	id, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{errKey: "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    id,
	})
}
