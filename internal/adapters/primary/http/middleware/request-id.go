package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key the request logger reads the id from.
const RequestIDKey = "request_id"

// RequestID tags every request with an id. A caller-supplied X-Request-ID is
// kept so ids correlate across CLI and server logs; otherwise one is
// generated. The id is echoed in the response header either way.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header(requestIDHeader, id)

		c.Next()
	}
}
