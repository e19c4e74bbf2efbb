package v1

import (
	"net/http"

	"github.com/James1Law/vibe-test-carpenter-site/internal/delivery/http/response"
	"github.com/James1Law/vibe-test-carpenter-site/internal/domain"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC domain.HealthUsecase
}

func NewHealthHandler(public *gin.RouterGroup, healthUC domain.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	public.GET("/health", handler.Check)
}

// Check godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.HealthReport
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.healthUC.Check(c.Request.Context()))
}
