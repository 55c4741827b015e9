package api

import (
	"net/http"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/Domenick1991/goaholidays/internal/pricing"
	"github.com/gin-gonic/gin"
)

const (
	minPersons = 1
	maxPersons = 20
)

type PackageHandler struct{}

type quoteRequest struct {
	Package        domain.Tier `json:"package"`
	Persons        int         `json:"persons"`
	NewYearVoucher bool        `json:"newYearVoucher"`
}

func NewPackageHandler() *PackageHandler {
	return &PackageHandler{}
}

func (h *PackageHandler) Register(router *gin.RouterGroup) {
	router.GET("/packages", h.list)
	router.POST("/quote", h.quote)
}

func (h *PackageHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Catalog())
}

func (h *PackageHandler) quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if req.Persons < minPersons || req.Persons > maxPersons {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:  "Number of persons must be between 1 and 20",
			Fields: map[string]string{"persons": "Number of persons must be between 1 and 20"},
		})
		return
	}
	c.JSON(http.StatusOK, pricing.Quote(req.Package, req.Persons, req.NewYearVoucher))
}
