package billing

import (
	"net/http"

	"gomeraway-api/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

// ListPlans returns the plan catalog with the configured price of each plan.
func (h *Handler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": plans.Catalog(h.prices)})
}
