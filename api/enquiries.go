package api

import (
	"net/http"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/Domenick1991/goaholidays/internal/service/enquiry"
	"github.com/gin-gonic/gin"
)

type EnquiryHandler struct {
	service enquiry.EnquiryUseCase
}

func NewEnquiryHandler(service enquiry.EnquiryUseCase) *EnquiryHandler {
	return &EnquiryHandler{service: service}
}

func (h *EnquiryHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
}

func (h *EnquiryHandler) list(c *gin.Context) {
	enquiries, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, "Enquiry", err, "Failed to load enquiries.")
		return
	}
	c.JSON(http.StatusOK, enquiries)
}

func (h *EnquiryHandler) create(c *gin.Context) {
	var req domain.EnquiryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	e, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, "Enquiry", err, "Failed to save enquiry. Please try again.")
		return
	}
	c.JSON(http.StatusCreated, e)
}
