package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/apperr"
)

const errKey = "error"

type checkoutRequest struct {
	HotelName string `json:"hotel_name"`
	Price     Price  `json:"price"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/create-checkout-session", h.CreateCheckoutSession)
}

func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, errKey, apperr.Validation(msgInvalidPrice))
		return
	}

	url, err := h.service.CreateCheckoutSession(c.Request.Context(), req.HotelName, req.Price)
	if err != nil {
		apperr.Respond(c, errKey, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
