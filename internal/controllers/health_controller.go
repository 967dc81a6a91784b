package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health is the liveness probe used by the frontend and deploy checks.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Backend is running"})
}
