package api

import (
	"net/http"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/Domenick1991/goaholidays/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type deleteBookingResponse struct {
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, "Booking", err, "Failed to load bookings.")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "Booking", err, "Failed to load booking.")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req domain.BookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, "Booking", err, "Failed to save booking. Please try again.")
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) update(c *gin.Context) {
	var req domain.BookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	b, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, "Booking", err, "Failed to update booking. Please try again.")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) delete(c *gin.Context) {
	b, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "Booking", err, "Failed to delete booking.")
		return
	}
	c.JSON(http.StatusOK, deleteBookingResponse{Message: "Booking deleted successfully", Booking: b})
}
