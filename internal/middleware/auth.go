package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims the service understands: the standard registered
// claims with the subject as user ID, plus the workflow role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and stores the resulting domain.Actor in the request context.
func AuthMiddleware(jwtSecret string, issuer string) gin.HandlerFunc {
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()})}
	if issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(issuer))
	}

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		// Parse and validate the token
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		}, parserOpts...)

		if err != nil || !token.Valid {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if claims.Subject == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		role, err := domain.ParseRole(claims.Role)
		if err != nil {
			logger.Warn("Unknown role in token", slog.String("role", claims.Role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token carries no workflow role"})
			return
		}
		actor := domain.Actor{UserID: claims.Subject, Role: role}

		// Add the actor to the logger and the request context
		enrichedLogger := logger.With(slog.String("user_id", actor.UserID), slog.String("role", string(actor.Role)))
		ctx := WithActor(WithLogger(c.Request.Context(), enrichedLogger), actor)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(loggerKey), enrichedLogger)

		c.Next() // Proceed to the next handler
	}
}
