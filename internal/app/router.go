package app

import (
	"github.com/SilverKain/Orthography/docs"
	"github.com/SilverKain/Orthography/internal/middleware"
	"github.com/SilverKain/Orthography/internal/model"
	"github.com/SilverKain/Orthography/pkg/monitoring"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, s *services) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// публичные маршруты
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
			auth.POST("/google", c.auth.LoginWithGoogle)
			auth.POST("/logout", c.auth.Logout)
			auth.POST("/reset-password", c.auth.ResetPassword)
			auth.POST("/reset-password/confirm", c.auth.ConfirmPasswordReset)
		}
	}

	// маршруты под токеном
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(s.auth), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/users/me", c.user.Me)
		authGroup.PUT("/users/me", c.user.UpdateProfile)
		authGroup.POST("/users/me/avatar", c.user.UploadAvatar)

		skills := authGroup.Group("/skills")
		{
			skills.GET("", c.skill.GetAll)
			skills.GET("/stats", c.skill.Stats)
			skills.GET("/needing-practice", c.skill.NeedingPractice)
			skills.GET("/:id", c.skill.Get)
			skills.PUT("/:id", c.skill.UpdateDirect)
			skills.POST("/:id/practice", c.skill.Practice)
			skills.POST("/:id/reset", c.skill.Reset)
		}

		progress := authGroup.Group("/progress")
		{
			progress.GET("", c.progress.GetAll)
			progress.GET("/recent", c.progress.Recent)
			progress.POST("/module-stats", c.progress.ModuleStats)
			progress.GET("/:lessonId", c.progress.Get)
			progress.PUT("/:lessonId", c.progress.Save)
			progress.POST("/:lessonId/complete", c.progress.Complete)
			progress.POST("/:lessonId/study-time", c.progress.AddStudyTime)
		}

		authGroup.GET("/stats", c.progress.UserStats)

		exercises := authGroup.Group("/exercises")
		{
			exercises.GET("", c.exercise.GetAll)
			exercises.GET("/stats", c.exercise.Stats)
			exercises.GET("/needing-review", c.exercise.NeedingReview)
			exercises.GET("/recent", c.exercise.Recent)
			exercises.GET("/:exerciseId", c.exercise.Get)
			exercises.POST("/:exerciseId", c.exercise.SaveResult)
		}

		dictionary := authGroup.Group("/dictionary")
		{
			dictionary.GET("", c.dictionary.GetAll)
			dictionary.POST("", c.dictionary.Add)
			dictionary.GET("/stats", c.dictionary.Stats)
			dictionary.GET("/export", c.dictionary.Export)
			dictionary.PUT("/:wordId", c.dictionary.Update)
			dictionary.PUT("/:wordId/mastered", c.dictionary.SetMastered)
			dictionary.DELETE("/:wordId", c.dictionary.Delete)
			dictionary.POST("/:wordId/pronunciation", c.user.UploadPronunciation)
		}
	}

	// административные маршруты
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(s.auth), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/health", c.health.HealthCheck)
	}
}
