package controllers

import (
	"net/http"

	"github.com/KanayaActa/IceBreaker/services"

	"github.com/gin-gonic/gin"
)

// GetCategoryRanking returns the deduplicated leaderboard for a category
func GetCategoryRanking(c *gin.Context) {
	ranking, err := services.GetCategoryRanking(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ranking)
}
