package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/VIJAYRUR/fitfoodie-backend/middlewares"
	"github.com/VIJAYRUR/fitfoodie-backend/models"
	"github.com/VIJAYRUR/fitfoodie-backend/services"
	"github.com/VIJAYRUR/fitfoodie-backend/utils"
)

type AuthController struct {
	users     *services.UserDirectory
	mailer    *utils.Mailer // optional
	jwtSecret []byte
}

func NewAuthController(users *services.UserDirectory, mailer *utils.Mailer, jwtSecret []byte) *AuthController {
	return &AuthController{users: users, mailer: mailer, jwtSecret: jwtSecret}
}

type RegisterRequest struct {
	Username           string         `json:"username" binding:"required"`
	Email              string         `json:"email" binding:"required,email"`
	Password           string         `json:"password" binding:"required"`
	Name               string         `json:"name"`
	Bio                string         `json:"bio"`
	Height             *float64       `json:"height"`
	Weight             *float64       `json:"weight"`
	Age                *int           `json:"age"`
	ActivityLevel      string         `json:"activity_level"`
	DietaryPreferences models.TagList `json:"dietary_preferences"`
}

func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, user, err := a.users.Register(c.Request.Context(), services.RegisterInput{
		Username:           req.Username,
		Email:              req.Email,
		Password:           req.Password,
		Name:               req.Name,
		Bio:                req.Bio,
		Height:             req.Height,
		Weight:             req.Weight,
		Age:                req.Age,
		ActivityLevel:      req.ActivityLevel,
		DietaryPreferences: req.DietaryPreferences,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateJWT(a.jwtSecret, string(userID))
	if err != nil {
		respondError(c, err)
		return
	}

	if a.mailer != nil {
		go func(email, username string) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := a.mailer.SendWelcomeEmail(ctx, email, username); err != nil {
				zap.L().Warn("welcome email failed", zap.String("email", email), zap.Error(err))
			}
		}(req.Email, req.Username)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "User registered successfully",
		"user":         user,
		"access_token": token,
	})
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, user, err := a.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateJWT(a.jwtSecret, string(userID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"user":         user,
		"access_token": token,
	})
}

func (a *AuthController) Me(c *gin.Context) {
	userID, ok := middlewares.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	user, err := a.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
