package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ClientIDCookie identifies a browser across requests so duplicate
	// snapshot submissions can be collapsed per client.
	ClientIDCookie = "client_id"

	clientIDContextKey = "clientID"

	clientIDMaxAge = 365 * 24 * 3600
)

// ClientIDMiddleware assigns every client a stable random identifier via a
// long-lived cookie.
func ClientIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, err := c.Cookie(ClientIDCookie)
		if err != nil || clientID == "" {
			clientID = uuid.NewString()
			c.SetCookie(ClientIDCookie, clientID, clientIDMaxAge, "/", "", false, true)
		}
		c.Set(clientIDContextKey, clientID)
		c.Next()
	}
}

// GetClientID returns the client identifier assigned by ClientIDMiddleware.
func GetClientID(c *gin.Context) string {
	if clientID, exists := c.Get(clientIDContextKey); exists {
		if id, ok := clientID.(string); ok {
			return id
		}
	}
	return ""
}
