package middleware

import (
	"context"
	"net/http"
	"strings"

	userRepo "roomly/database/repository/user"
	"roomly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ContextUserID and ContextIsManager are the gin context keys set by JWTAuthMiddleware.
const (
	ContextUserID    = "userID"
	ContextIsManager = "isManager"
)

// JWTAuthMiddleware validates the bearer access token, resolves the acting
// user and stores the identity and manager role in the request context. A
// Redis token-hash cache short-circuits the database lookup.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		logger := utils.GetLogger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString, utils.TokenTypeAccess)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		authCache := utils.GetAuthCacheClient()

		if revoked, err := utils.IsTokenBlacklisted(authCache, tokenString); err != nil {
			logger.Warn("token blacklist lookup failed", zap.Error(err))
		} else if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
			return
		}

		cacheKey := utils.AuthCachePrefix + userID
		computedHash := utils.HashToken(tokenString)
		if cached, err := authCache.Get(ctx, cacheKey).Result(); err == nil {
			if hashMatches(cached, computedHash) {
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				c.Set(ContextUserID, userID)
				c.Set(ContextIsManager, managerFlag(cached))
				c.Next()
				return
			}
		} else if err != redis.Nil {
			logger.Warn("auth cache lookup failed, falling back to DB", zap.Error(err))
		}

		// Cache miss: verify the user still exists and is active.
		proj := bson.M{"id": 1, "is_manager": 1, "is_active": 1}
		usr, err := users.GetByIDWithProjection(userID, proj)
		if err != nil || usr == nil || !usr.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}

		if err := authCache.Set(ctx, cacheKey, cacheValue(computedHash, usr.IsManager), utils.AuthCacheTTL).Err(); err != nil {
			logger.Warn("failed to populate auth cache", zap.Error(err))
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextIsManager, usr.IsManager)
		c.Next()
	}
}

// ManagerOnly rejects requests whose acting user does not hold the manager role.
func ManagerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		isManager, exists := c.Get(ContextIsManager)
		if !exists || isManager != true {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Manager role required"})
			return
		}
		c.Next()
	}
}

// The auth cache value is "<tokenHash>:<managerFlag>".

func cacheValue(hash string, isManager bool) string {
	if isManager {
		return hash + ":1"
	}
	return hash + ":0"
}

func hashMatches(cached, hash string) bool {
	return strings.HasPrefix(cached, hash+":")
}

func managerFlag(cached string) bool {
	return strings.HasSuffix(cached, ":1")
}
