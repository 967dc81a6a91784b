package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"open_toilet/internal/controllers"
	"open_toilet/internal/store"
)

// SetupRouter builds the Gin engine with request logging and recovery,
// then mounts every route group against the injected store.
func SetupRouter(s *store.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	feed := controllers.NewFeedHub()
	restrooms := controllers.NewRestroomController(s, feed)

	RestroomRoutes(r, restrooms)
	FeedRoutes(r, feed)
	HealthRoutes(r)

	return r
}
