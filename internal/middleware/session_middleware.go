package middleware

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-butterflies-checkout/internal/pkg/apperror"
	"go-butterflies-checkout/internal/pkg/response"
)

const sessionCookie = "storefront_session"

// SessionMiddleware resolves the storefront session for guest checkout.
//
// Resolution order:
//  1. a signed session cookie (JWT, HMAC, session_id claim)
//  2. an X-Session-ID header, for clients without cookie support
//  3. a freshly minted session, written back as a signed cookie
//
// Every request downstream can rely on c.GetString("session_id") being set.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := sessionFromCookie(c); id != "" {
			c.Set("session_id", id)
			c.Next()
			return
		}

		if id := c.GetHeader("X-Session-ID"); id != "" {
			c.Set("session_id", id)
			c.Next()
			return
		}

		id := uuid.New().String()
		if token, err := signSession(id); err == nil {
			c.SetCookie(sessionCookie, token, int(30*24*3600), "/", "", false, true)
		}
		c.Header("X-Session-ID", id)
		c.Set("session_id", id)

		c.Next()
	}
}

func sessionFromCookie(c *gin.Context) string {
	tokenString, err := c.Cookie(sessionCookie)
	if err != nil {
		return ""
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	id, _ := claims["session_id"].(string)
	return id
}

func signSession(id string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": id,
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// RequireSession guards routes that make no sense without a resolved session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("session_id") == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "a session is required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
