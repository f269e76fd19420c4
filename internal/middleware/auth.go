package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

const (
	ContextUserID    = "userID"
	ContextAccountID = "accountID"
	ContextUserRole  = "userRole"
	ContextActor     = "actor"
)

// AuthMiddleware valida o Bearer token e resolve o Actor uma única vez
// por requisição.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {

			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		actor, ok := actorFromClaims(claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		c.Set(ContextUserID, actor.UserID)
		c.Set(ContextAccountID, actor.AccountID)
		c.Set(ContextUserRole, string(actor.Role))
		c.Set(ContextActor, actor)

		c.Next()
	}
}

func actorFromClaims(claims jwt.MapClaims) (domain.Actor, bool) {
	userID, ok1 := claims["sub"].(float64)
	accountID, ok2 := claims["accountId"].(float64)
	if !ok1 || !ok2 || userID <= 0 || accountID <= 0 {
		return domain.Actor{}, false
	}

	actor := domain.Actor{
		AccountID: uint(accountID),
		UserID:    uint(userID),
		Role:      domain.RoleOwner,
	}

	role, _ := claims["role"].(string)
	switch domain.Role(role) {
	case domain.RoleOwner, "":
	case domain.RoleProfessional:
		actor.Role = domain.RoleProfessional
		if pid, ok := claims["professionalId"].(float64); ok && pid > 0 {
			actor.ProfessionalID = uint(pid)
		}
		actor.CanViewAll, _ = claims["canViewAll"].(bool)
	default:
		return domain.Actor{}, false
	}

	return actor, true
}

// ActorFrom lê o Actor gravado pelo AuthMiddleware.
func ActorFrom(c *gin.Context) domain.Actor {
	if v, ok := c.Get(ContextActor); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Actor{}
}
