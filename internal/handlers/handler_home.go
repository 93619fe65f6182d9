package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Service banner
// @Description Returns the vendor invoicing API name and where its Swagger docs are served.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Vendor invoicing API v1", "docs": "/swagger/index.html"})
}
