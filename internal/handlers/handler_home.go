package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Keluargaku API"})
}

// registerHomeRoutes registers the root route.
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/", getHome)
}
