package api

import (
	"net/http"

	"github.com/Domenick1991/goaholidays/internal/storage"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	store storage.Readiness
}

type healthResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Database   string `json:"database"`
	ReadyState int    `json:"readyState"`
}

func NewHealthHandler(store storage.Readiness) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Register(router *gin.RouterGroup) {
	router.GET("/health", h.health)
}

// health always answers 200; status says whether the store can take work.
func (h *HealthHandler) health(c *gin.Context) {
	state := h.store.State()

	status := "WARNING"
	if state == storage.StateConnected {
		status = "OK"
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:     status,
		Message:    "Server is running",
		Database:   state.String(),
		ReadyState: int(state),
	})
}
