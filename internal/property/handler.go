package property

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/apperr"
)

const errKey = "error"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/get-properties", h.GetProperties)
	r.GET("/hotel-details", h.GetHotelDetails)
	r.GET("/hotel-photos", h.GetHotelPhotos)
}

func (h *Handler) GetProperties(c *gin.Context) {
	q := SearchQuery{
		Query:         c.Query("query"),
		ArrivalDate:   c.Query("arrival_date"),
		DepartureDate: c.Query("departure_date"),
		Adults:        optionalQuery(c, "adults"),
		ChildrenAge:   optionalQuery(c, "children_age"),
		RoomQty:       optionalQuery(c, "room_qty"),
	}

	body, err := h.service.SearchProperties(c.Request.Context(), q)
	if err != nil {
		apperr.Respond(c, errKey, err)
		return
	}
	writeRaw(c, body)
}

func (h *Handler) GetHotelDetails(c *gin.Context) {
	body, err := h.service.HotelDetails(c.Request.Context(),
		c.Query("hotel_id"),
		c.Query("arrival_date"),
		c.Query("departure_date"),
	)
	if err != nil {
		apperr.Respond(c, errKey, err)
		return
	}
	writeRaw(c, body)
}

func (h *Handler) GetHotelPhotos(c *gin.Context) {
	body, err := h.service.HotelPhotos(c.Request.Context(), c.Query("hotel_id"))
	if err != nil {
		apperr.Respond(c, errKey, err)
		return
	}
	writeRaw(c, body)
}

// optionalQuery distinguishes an absent parameter from an empty one.
func optionalQuery(c *gin.Context, key string) *string {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	return &v
}

func writeRaw(c *gin.Context, body []byte) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
