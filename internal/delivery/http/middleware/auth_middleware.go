package middleware

import (
	"errors"
	"strings"

	"mentorhub/internal/domain/mentorship"
	"mentorhub/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserIDKey       = "user_id"
	CtxEmailKey        = "email"
	CtxCapabilitiesKey = "capabilities"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware validates the bearer token and stashes the caller's identity
// in request locals. Handlers downstream never re-derive the session.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerToken(c.Get("Authorization"))
		if !ok {
			// Websocket clients can't set headers from the browser.
			token = strings.TrimSpace(c.Query("token"))
			if token == "" {
				return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
			}
		}

		claims, err := m.jwt.ValidateAccessToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxCapabilitiesKey, claims.Capabilities)

		return c.Next()
	}
}

// AdminOnly gates the matcher endpoints on the ADMIN capability carried in
// the validated token.
func (m *AuthMiddleware) AdminOnly() fiber.Handler {
	return func(c fiber.Ctx) error {
		caps, _ := c.Locals(CtxCapabilitiesKey).([]string)
		for _, capability := range caps {
			if capability == string(mentorship.CapabilityAdmin) {
				return c.Next()
			}
		}
		return NewAppError(fiber.StatusForbidden, "Admin capability required", nil, nil)
	}
}

func bearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
