package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userSvc "roomly/services/user"
	"roomly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Users userSvc.UserService
}

func NewAuthHandler(users userSvc.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration payload", err.Error())
		return
	}

	usr, err := h.Users.Register(userSvc.RegisterInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, userSvc.ErrEmailTaken):
			utils.JSONError(c, http.StatusConflict, "Email already registered", "")
		default:
			utils.JSONError(c, http.StatusBadRequest, "Registration failed", err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, usr)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid login payload", err.Error())
		return
	}

	usr, tokens, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          usr,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"token_type":    tokens.TokenType,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh rotates the token pair. The presented refresh token is blacklisted
// for its remaining lifetime so it cannot be replayed.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid refresh payload", err.Error())
		return
	}

	authCache := utils.GetAuthCacheClient()

	revoked, err := utils.IsTokenBlacklisted(authCache, req.RefreshToken)
	if err != nil {
		utils.GetLogger().Warn("blacklist lookup failed", zap.Error(err))
	}
	if revoked {
		utils.JSONError(c, http.StatusUnauthorized, "Refresh token revoked", "")
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, utils.TokenTypeRefresh)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid refresh token", "")
		return
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid refresh token", "")
		return
	}

	tokens, err := h.Users.IssueTokens(userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to issue tokens", "")
		return
	}

	if ttl := utils.TokenRemainingTTL(claims); ttl > 0 {
		if err := utils.BlacklistToken(authCache, req.RefreshToken, ttl); err != nil {
			utils.GetLogger().Warn("failed to blacklist rotated refresh token", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, tokens)
}

// Logout blacklists the presented access token and clears the auth cache
// entry so subsequent requests re-authenticate against the database.
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := utils.ValidateToken(tokenString, utils.TokenTypeAccess)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid token", "")
		return
	}

	authCache := utils.GetAuthCacheClient()

	if ttl := utils.TokenRemainingTTL(claims); ttl > 0 {
		if err := utils.BlacklistToken(authCache, tokenString, ttl); err != nil {
			utils.GetLogger().Warn("failed to blacklist access token", zap.Error(err))
		}
	}
	if userID, _ := claims["sub"].(string); userID != "" {
		_ = authCache.Del(context.Background(), utils.AuthCachePrefix+userID).Err()
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
