package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionHeader carries the session identity across requests. The
	// engine has no accounts; the session id is the only principal.
	SessionHeader = "X-Session-ID"

	sessionContextKey = "session_id"
)

// SessionMiddleware resolves the caller's session id, minting a fresh one
// when the header is absent or unparsable, and always echoes it back so the
// client can persist it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(SessionHeader))
		if err != nil {
			id = uuid.New()
		}

		c.Set(sessionContextKey, id)
		c.Header(SessionHeader, id.String())

		c.Next()
	}
}

func GetSessionID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
