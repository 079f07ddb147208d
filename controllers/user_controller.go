package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VIJAYRUR/fitfoodie-backend/middlewares"
	"github.com/VIJAYRUR/fitfoodie-backend/models"
	"github.com/VIJAYRUR/fitfoodie-backend/services"
)

type UserController struct {
	users *services.UserDirectory
}

func NewUserController(users *services.UserDirectory) *UserController {
	return &UserController{users: users}
}

func (u *UserController) GetProfile(c *gin.Context) {
	userID, _ := middlewares.CallerID(c)
	user, err := u.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Name               *string         `json:"name"`
	Bio                *string         `json:"bio"`
	Height             *float64        `json:"height"`
	Weight             *float64        `json:"weight"`
	Age                *int            `json:"age"`
	ActivityLevel      *string         `json:"activity_level"`
	DietaryPreferences *models.TagList `json:"dietary_preferences"`
}

func (u *UserController) UpdateProfile(c *gin.Context) {
	userID, _ := middlewares.CallerID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := u.users.UpdateProfile(c.Request.Context(), userID, models.UserPatch{
		Name:               req.Name,
		Bio:                req.Bio,
		Height:             req.Height,
		Weight:             req.Weight,
		Age:                req.Age,
		ActivityLevel:      req.ActivityLevel,
		DietaryPreferences: (*[]string)(req.DietaryPreferences),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

func (u *UserController) ChangePassword(c *gin.Context) {
	userID, _ := middlewares.CallerID(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := u.users.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (u *UserController) GetFavorites(c *gin.Context) {
	userID, _ := middlewares.CallerID(c)
	favorites, err := u.users.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (u *UserController) GetFollowing(c *gin.Context) {
	userID, _ := middlewares.CallerID(c)
	following, err := u.users.ListFollowing(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}
