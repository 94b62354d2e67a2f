package schemacheck

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/logger"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/validation"
)

type Handler struct {
	validator *validation.Validator
}

func NewHandler(v *validation.Validator) *Handler {
	return &Handler{validator: v}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/testing", h.SampleRegistration)
}

func (h *Handler) SampleRegistration(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		failed(c, []validation.FieldError{{Field: "body", Message: "body could not be read"}})
		return
	}

	raw, ok := decodeObject(body)
	if !ok {
		failed(c, []validation.FieldError{{Field: "body", Message: "body must be a JSON object"}})
		return
	}

	stripped := 0
	for k := range raw {
		if !knownField(k) {
			stripped++
		}
	}
	if stripped > 0 {
		logger.Debug("testing: unknown fields dropped", map[string]any{"count": stripped})
	}

	reg, res := Check(h.validator, raw)
	if !res.OK() {
		failed(c, res.Errors)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Validation successful",
		"data":    reg,
	})
}

func failed(c *gin.Context, errs []validation.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Validation failed",
		"errors":  errs,
	})
}
