package preload

import (
	"net/http"
	"strings"

	"gomeraway-api/internal/app/http/middleware"
	"gomeraway-api/internal/preload"

	"github.com/gin-gonic/gin"
)

type Hinter interface {
	Hint(client, route, intent string) []string
}

type Handler struct {
	hinter Hinter
}

func NewHandler(h Hinter) *Handler {
	return &Handler{hinter: h}
}

// Preload always answers 200; warming happens in the background.
func (h *Handler) Preload(c *gin.Context) {
	route := c.DefaultQuery("route", "/")
	intent := strings.ToLower(c.DefaultQuery("intent", preload.IntentHover))
	if intent != preload.IntentNavigate {
		intent = preload.IntentHover
	}

	client := c.ClientIP()
	if identity, ok := middleware.IdentityFrom(c); ok {
		client = identity.ID
	}

	next := h.hinter.Hint(client, route, intent)
	if next == nil {
		next = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"route": route, "next": next})
}
