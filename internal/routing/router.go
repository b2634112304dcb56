// Package routing wires the middleware chain and the route tree.
package routing

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fittrack-server/internal/handlers"
	"fittrack-server/internal/managers"
	"fittrack-server/internal/middleware"
	"fittrack-server/internal/repositories"
	"fittrack-server/internal/schemas"
	"fittrack-server/internal/utils"
)

const (
	apiName    = "FitTrack Server"
	apiVersion = "1.0.0"
)

// InitRouter builds the engine with the full middleware chain and all routes.
func InitRouter(databaseMgr managers.DatabaseMgr, jwtMgr managers.JWTMgr, repos *repositories.Repositories) *gin.Engine {
	router := gin.New()
	setupCommonMiddleware(router)

	userHdl := handlers.NewUserHandler(repos.Users, jwtMgr)
	activityHdl := handlers.NewActivityHandler(repos.Activities, repos.Users)

	router.GET("/", getMetadata)
	router.GET("/health", getHealth(databaseMgr))

	router.POST("/user/register",
		middleware.RequireJSON(),
		middleware.ValidateAndSanitizeStruct(&schemas.RegistrationRequest{}),
		userHdl.RegisterUser)
	router.POST("/user/login",
		middleware.RequireJSON(),
		middleware.ValidateAndSanitizeStruct(&schemas.LoginRequest{}),
		userHdl.LoginUser)

	router.GET("/users", jwtMgr.AdminJWTMiddleware(), userHdl.GetAllUsers)

	activityRouter := router.Group("/activities")
	activityRouter.Use(jwtMgr.JWTMiddleware())
	{
		activityRouter.GET("", activityHdl.GetActivities)
		activityRouter.GET("/:"+utils.ActivityIdKey, activityHdl.GetActivityById)
		activityRouter.GET("/type/:"+utils.ActivityTypeKey, activityHdl.GetActivitiesByType)
		activityRouter.GET("/len/:"+utils.LenFirstKey, activityHdl.GetLastActivities)
		activityRouter.GET("/len/:"+utils.LenFirstKey+"/:"+utils.AmountKey, activityHdl.GetLastActivities)
		activityRouter.POST("",
			middleware.RequireJSON(),
			middleware.ValidateAndSanitizeStruct(&schemas.CreateActivityRequest{}),
			activityHdl.CreateActivity)
		activityRouter.PATCH("/:"+utils.ActivityIdKey,
			middleware.RequireJSON(),
			middleware.ValidateAndSanitizeStruct(&schemas.UpdateActivityRequest{}),
			activityHdl.UpdateActivity)
		activityRouter.DELETE("/:"+utils.ActivityIdKey, activityHdl.DeleteActivity)
	}

	return router
}

func setupCommonMiddleware(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.InjectTrace())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Trace-Id"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.Next()
	})
	router.Use(middleware.SanitizePath())
	router.Use(middleware.LogRequest())
}

// getMetadata reports the service name and version.
func getMetadata(c *gin.Context) {
	metadata := &schemas.MetadataDTO{
		ApiVersion: apiVersion,
		ApiName:    apiName,
	}
	utils.WriteAndLogDto(c, metadata, http.StatusOK)
}

// getHealth pings the database and reports readiness.
func getHealth(databaseMgr managers.DatabaseMgr) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := databaseMgr.GetPool().Ping(c.Request.Context()); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusServiceUnavailable, err)
			return
		}
		utils.WriteAndLogDto(c, "healthy", http.StatusOK)
	}
}
