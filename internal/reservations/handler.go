// Package reservations serves the stored listings and a signed-in user's
// bookings. Both are read-only.
package reservations

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/apperr"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/db"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/middleware"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/models"
)

const errKey = "error"

type PropertyFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
}

type BookingLister interface {
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error)
}

type Handler struct {
	properties   PropertyFinder
	bookings     BookingLister
	authRequired gin.HandlerFunc
}

func NewHandler(properties PropertyFinder, bookings BookingLister, authMiddleware *middleware.AuthMiddleware) *Handler {
	return &Handler{
		properties:   properties,
		bookings:     bookings,
		authRequired: middleware.GinRequireAuth(authMiddleware.WithErrorKey(errKey)),
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/properties/:id", h.GetProperty)
	r.GET("/bookings", h.authRequired, h.ListBookings)
}

func (h *Handler) GetProperty(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperr.Respond(c, errKey, apperr.Validation("Invalid property id."))
		return
	}

	p, err := h.properties.FindByID(c.Request.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		apperr.Respond(c, errKey, apperr.NotFound("Property not found."))
		return
	}
	if err != nil {
		apperr.Respond(c, errKey, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) ListBookings(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		apperr.Respond(c, errKey, apperr.Auth(http.StatusUnauthorized, "Not authenticated", nil))
		return
	}

	userID, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		apperr.Respond(c, errKey, apperr.Auth(http.StatusUnauthorized, "Invalid token", err))
		return
	}

	bookings, err := h.bookings.ListByUser(c.Request.Context(), userID)
	if err != nil {
		apperr.Respond(c, errKey, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bookings,
	})
}
