package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Recovery turns panics into a generic 500. gin logs the stack to its error
// writer; the client only sees the generic message.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("ERROR: panic recovered: %v request_id=%s", recovered, GetRequestID(c))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}

// Logger writes one access log line per request, tagged with the request id.
func Logger() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/health"},
		Formatter: func(p gin.LogFormatterParams) string {
			return fmt.Sprintf("%s | %3d | %13v | %15s | %-7s %s request_id=%v\n",
				p.TimeStamp.Format(time.RFC3339),
				p.StatusCode,
				p.Latency,
				p.ClientIP,
				p.Method,
				p.Path,
				p.Keys[requestIDKey],
			)
		},
	})
}
