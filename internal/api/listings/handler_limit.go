package listings

import (
	"net/http"

	"gomeraway-api/internal/app/http/middleware"
	"gomeraway-api/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckListingLimit answers whether the caller may publish one more listing.
// Failures always answer with a denying decision.
func (h *Handler) CheckListingLimit(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, plans.Denied())
		return
	}

	decision, err := h.decider.Decide(c.Request.Context(), identity.ID)
	if err != nil {
		h.log.Error("listing limit check failed", zap.String("user_id", identity.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, plans.Denied())
		return
	}
	c.JSON(http.StatusOK, decision)
}
