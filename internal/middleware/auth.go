package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// A bare token without the scheme is accepted as well.
func BearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", false
	}

	fields := strings.Fields(header)
	switch {
	case len(fields) == 2 && strings.EqualFold(fields[0], "Bearer"):
		return fields[1], true
	case len(fields) == 1:
		return fields[0], true
	}
	return "", false
}
