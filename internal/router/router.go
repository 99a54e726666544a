package router

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/holdings/internal/config"
	"github.com/monocle-dev/holdings/internal/handlers"
	"github.com/monocle-dev/holdings/internal/middleware"
	"github.com/monocle-dev/holdings/internal/storage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(cfg config.Config) *gin.Engine {
	handlers.Configure(cfg.MediaURL, storage.NewLocal(cfg.MediaRoot), cfg.MaxUploadBytes)

	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.MetricsMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if strings.HasPrefix(cfg.MediaURL, "/") {
		r.Static(cfg.MediaURL, cfg.MediaRoot)
	}

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		user := api.Group("/user")
		{
			user.POST("/create", handlers.CreateUser)
			user.POST("/token", handlers.CreateToken)
			user.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			user.PUT("/me", middleware.AuthMiddleware(), handlers.UpdateMe)
			user.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateMe)
			user.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteMe)
		}

		investments := api.Group("/investments", middleware.AuthMiddleware())
		{
			investments.GET("", handlers.ListInvestments)
			investments.POST("", handlers.CreateInvestment)
			investments.GET("/:id", handlers.GetInvestment)
			investments.PUT("/:id", handlers.UpdateInvestment)
			investments.PATCH("/:id", handlers.PatchInvestment)
			investments.DELETE("/:id", handlers.DeleteInvestment)
			investments.POST("/:id/upload-image", handlers.UploadInvestmentImage)
		}

		tags := api.Group("/tags", middleware.AuthMiddleware())
		{
			tags.GET("", handlers.ListTags)
			tags.GET("/:id", handlers.GetTag)
			tags.PUT("/:id", handlers.UpdateTag)
			tags.PATCH("/:id", handlers.PatchTag)
			tags.DELETE("/:id", handlers.DeleteTag)
		}

		activities := api.Group("/activities", middleware.AuthMiddleware())
		{
			activities.GET("", handlers.ListActivities)
			activities.GET("/:id", handlers.GetActivity)
			activities.PUT("/:id", handlers.UpdateActivity)
			activities.PATCH("/:id", handlers.PatchActivity)
			activities.DELETE("/:id", handlers.DeleteActivity)
		}
	}

	return r
}
