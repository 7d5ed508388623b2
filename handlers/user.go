package handlers

import (
	"errors"
	"net/http"

	"roomly/middleware"
	userSvc "roomly/services/user"
	"roomly/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Users userSvc.UserService
}

func NewUserHandler(users userSvc.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// Me returns the profile of the acting user.
func (h *UserHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	usr, err := h.Users.GetByID(userID)
	if err != nil {
		if errors.Is(err, userSvc.ErrUserNotFound) {
			utils.JSONError(c, http.StatusNotFound, "User not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load profile", "")
		return
	}

	c.JSON(http.StatusOK, usr)
}

type updateProfileRequest struct {
	FullName string `json:"full_name" binding:"required"`
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile payload", err.Error())
		return
	}

	usr, err := h.Users.UpdateProfile(userID, req.FullName)
	if err != nil {
		if errors.Is(err, userSvc.ErrUserNotFound) {
			utils.JSONError(c, http.StatusNotFound, "User not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update profile", "")
		return
	}

	c.JSON(http.StatusOK, usr)
}

// ListUsers is manager-only; used to resolve participant identities.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.List()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list users", "")
		return
	}
	c.JSON(http.StatusOK, users)
}
