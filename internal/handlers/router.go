package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coachdesk/coach-service/internal/services"
	"github.com/coachdesk/coach-service/internal/utils"
)

type HandlerManager struct {
	coachHandler *CoachHandler
	coachService services.CoachService
}

func NewHandlerManager(coachService services.CoachService, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		coachHandler: NewCoachHandler(coachService, logger),
		coachService: coachService,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	coaches := router.Group("/coaches")
	{
		coaches.GET("", hm.coachHandler.ListCoaches)
		coaches.POST("", hm.coachHandler.CreateCoach)
		coaches.GET("/export", hm.coachHandler.ExportCoaches)
		coaches.GET("/:id", hm.coachHandler.GetCoach)
		coaches.PUT("/:id", hm.coachHandler.UpdateCoach)
		coaches.DELETE("/:id", hm.coachHandler.DeleteCoach)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		storage := "ok"
		if err := hm.coachService.HealthCheck(c.Request.Context()); err != nil {
			storage = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "coach-service",
			"storage": storage,
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
