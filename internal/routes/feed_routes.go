package routes

import (
	"github.com/gin-gonic/gin"

	"open_toilet/internal/controllers"
)

func FeedRoutes(r *gin.Engine, feed *controllers.FeedHub) {
	ws := r.Group("/ws")
	{
		ws.GET("/restrooms", feed.HandleRestroomFeed)
	}
}
