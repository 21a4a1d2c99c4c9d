package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var corsAllowHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

// CORS is the fixed permissive policy shared by every function endpoint.
// Every response carries the same header set and every OPTIONS request is
// answered with 200, with or without an Origin header.
func CORS() gin.HandlerFunc {
	policy := cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:              corsAllowHeaders,
		ExposeHeaders:             []string{"Content-Length"},
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	})
	allowHeaders := strings.Join(corsAllowHeaders, ", ")

	return func(c *gin.Context) {
		// gin-contrib/cors ignores requests without a cross-origin Origin.
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", allowHeaders)

		if c.Request.Method == http.MethodOptions && c.GetHeader("Origin") == "" {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		policy(c)
	}
}
