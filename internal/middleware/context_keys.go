package middleware

import (
	"context"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// actorKey is the key used to store the authenticated actor in the request context.
const actorKey = contextKey("actor")

// WithActor returns a copy of ctx carrying the authenticated actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActorFromContext retrieves the authenticated actor from the Gin context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	actor, ok := c.Request.Context().Value(actorKey).(domain.Actor)
	if !ok || actor.UserID == "" {
		return domain.Actor{}, false
	}
	return actor, true
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	actor, ok := GetActorFromContext(c)
	return actor.UserID, ok
}
