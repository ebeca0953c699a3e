package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/response"
)

var (
	// ErrInvalidClaims is returned when a token validates but carries no
	// usable claims.
	ErrInvalidClaims = errors.New("invalid token claims")
	// ErrUserIDMissing is returned when none of the supported user id
	// claims is present.
	ErrUserIDMissing = errors.New("user id not found in token")
)

// ParseUserID validates an HMAC-signed JWT and extracts the user id.
// The id is read from the "user_id" claim, falling back to "sub" and
// "uid" for tokens minted by other issuers.
func ParseUserID(tokenString, secret string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidClaims
	}

	var userIDStr string
	if uid, ok := claims["user_id"].(string); ok {
		userIDStr = uid
	} else if sub, ok := claims["sub"].(string); ok {
		userIDStr = sub
	} else if uid, ok := claims["uid"].(string); ok {
		userIDStr = uid
	} else {
		return uuid.Nil, ErrUserIDMissing
	}

	return uuid.Parse(userIDStr)
}

// ExtractUserID pulls the authenticated user id the auth middleware stored
// in the Gin context. On failure it writes an unauthorized response and
// returns false; handlers should return immediately.
func ExtractUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userUUID, true
}
