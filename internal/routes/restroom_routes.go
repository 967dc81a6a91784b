package routes

import (
	"github.com/gin-gonic/gin"

	"open_toilet/internal/controllers"
)

func RestroomRoutes(r *gin.Engine, ctl *controllers.RestroomController) {
	restrooms := r.Group("/restrooms")
	{
		restrooms.GET("", ctl.ListRestrooms)
		restrooms.POST("", ctl.CreateRestroom)
		restrooms.PUT("/:id", ctl.UpdateRestroom)
		restrooms.POST("/:id/codes", ctl.AddAccessCode)
		restrooms.POST("/codes/:id/vote", ctl.VoteOnCode)
	}
}
