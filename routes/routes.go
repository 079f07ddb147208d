package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/VIJAYRUR/fitfoodie-backend/controllers"
	"github.com/VIJAYRUR/fitfoodie-backend/logger"
	"github.com/VIJAYRUR/fitfoodie-backend/middlewares"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth        *controllers.AuthController
	Users       *controllers.UserController
	Influencers *controllers.InfluencerController
	Meals       *controllers.MealController
	Devices     *controllers.DeviceController
	Realtime    *controllers.RealtimeController
}

func SetupRouter(ctrl Controllers, jwtSecret []byte, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger(log))

	authRequired := middlewares.AuthMiddleware(jwtSecret)

	api := r.Group("/api")

	// Public auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.GET("/me", authRequired, ctrl.Auth.Me)
	}

	// Protected user routes
	users := api.Group("/users")
	users.Use(authRequired)
	{
		users.GET("/profile", ctrl.Users.GetProfile)
		users.PUT("/profile", ctrl.Users.UpdateProfile)
		users.PUT("/change-password", ctrl.Users.ChangePassword)
		users.GET("/favorites", ctrl.Users.GetFavorites)
		users.GET("/following", ctrl.Users.GetFollowing)
	}

	// Influencer directory: browsing is public, profile management and
	// following require a login.
	influencers := api.Group("/influencers")
	{
		influencers.GET("", ctrl.Influencers.List)
		influencers.GET("/specialties", ctrl.Influencers.Specialties)
		influencers.GET("/:id", ctrl.Influencers.GetByID)
		influencers.GET("/:id/followers", ctrl.Influencers.Followers)

		influencers.GET("/profile", authRequired, ctrl.Influencers.MyProfile)
		influencers.POST("/profile", authRequired, ctrl.Influencers.CreateProfile)
		influencers.PUT("/profile", authRequired, ctrl.Influencers.UpdateProfile)
		influencers.POST("/follow/:id", authRequired, ctrl.Influencers.Follow)
		influencers.DELETE("/unfollow/:id", authRequired, ctrl.Influencers.Unfollow)
	}

	// Meal catalog: browsing is public, authoring and favoriting require
	// a login.
	meals := api.Group("/meals")
	{
		meals.GET("", ctrl.Meals.List)
		meals.GET("/:id", ctrl.Meals.GetByID)

		meals.POST("", authRequired, ctrl.Meals.Create)
		meals.PUT("/:id", authRequired, ctrl.Meals.Update)
		meals.DELETE("/:id", authRequired, ctrl.Meals.Delete)
		meals.POST("/favorite/:id", authRequired, ctrl.Meals.Favorite)
		meals.DELETE("/favorite/:id", authRequired, ctrl.Meals.Unfavorite)
		meals.POST("/upload-image", authRequired, ctrl.Meals.UploadImage)
	}

	devices := api.Group("/devices")
	devices.Use(authRequired)
	{
		devices.POST("", ctrl.Devices.Register)
	}

	realtime := api.Group("/realtime")
	realtime.Use(authRequired)
	{
		realtime.GET("/feed", ctrl.Realtime.FeedWS)
	}

	return r
}
