package app

import (
	"educatif_backend/internal/config"
	"educatif_backend/internal/middleware"
	"educatif_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// Identity
		api.POST("/auth/register", c.auth.Register)
		api.POST("/auth/login", c.auth.Login)
		api.POST("/admin/login", c.auth.AdminLogin)

		// Single-answer path and its statistics are open, matching the
		// historical surface.
		api.POST("/reponses", c.reponse.Soumettre)
		api.GET("/progression/:eleveId", c.reponse.GetProgression)
	}

	auth := middleware.AuthMiddleware(cfg)

	eleves := router.Group("/api/eleves")
	{
		eleves.GET("/profile", auth, c.eleve.GetProfile)
		eleves.POST("/update-progress", auth, c.eleve.UpdateProgress)

		// Raw CRUD used by the admin console.
		eleves.POST("", c.eleve.CreateEleve)
		eleves.GET("", c.eleve.GetEleves)
		eleves.DELETE("/:id", c.eleve.DeleteEleve)
	}

	questions := router.Group("/api/questions")
	questions.Use(auth)
	{
		questions.GET("/age/:age/niveau/:niveau", c.question.GetByAgeAndNiveau)
		questions.GET("/niveau/:niveau", c.question.GetByNiveau)
		questions.POST("/niveau/:niveau/submit", c.question.SubmitLevel)
		questions.GET("/niveaux-disponibles", c.question.GetAvailableLevels)

		questions.GET("", c.question.GetAll)
		questions.POST("", c.question.Create)
		questions.GET("/:id", c.question.GetByID)
		questions.PUT("/:id", c.question.Update)
		questions.DELETE("/:id", c.question.Delete)
	}
}
