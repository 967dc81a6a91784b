package routes

import (
	"github.com/gin-gonic/gin"

	"open_toilet/internal/controllers"
)

func HealthRoutes(r *gin.Engine) {
	r.GET("/health", controllers.Health)
}
