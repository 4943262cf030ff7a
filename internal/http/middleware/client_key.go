package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soundfield/attune-backend/internal/requestdata"
)

// ClientKeyHeader carries the caller's quiz client identity. Browsers
// generate it once and send it on every tuning request, so anonymous
// sessions survive page reloads.
const ClientKeyHeader = "X-Client-ID"

// AttachClientKey copies the client key header into the request data.
// It runs before auth middleware so the key survives context rewrites.
func AttachClientKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(ClientKeyHeader))
		if key == "" {
			key = strings.TrimSpace(c.Query("client_id"))
		}
		if key != "" {
			ctx := c.Request.Context()
			rd := requestdata.GetRequestData(ctx)
			if rd == nil {
				rd = &requestdata.RequestData{}
			}
			rd.ClientKey = key
			c.Request = c.Request.WithContext(requestdata.WithRequestData(ctx, rd))
		}
		c.Next()
	}
}
