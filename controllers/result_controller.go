package controllers

import (
	"net/http"

	"github.com/KanayaActa/IceBreaker/services"
	"github.com/KanayaActa/IceBreaker/structs"
	"github.com/KanayaActa/IceBreaker/websocket"

	"github.com/gin-gonic/gin"
)

// RecordResult records a match result, updates both ratings and pushes
// the summary to live feed subscribers
func RecordResult(c *gin.Context) {
	var request structs.MatchResultRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	summary, err := services.RecordResult(
		c.Request.Context(),
		request.WinnerID,
		request.LoserID,
		request.CategoryID,
		request.WinnerPoint,
		request.LoserPoint,
		request.Date,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	websocket.BroadcastResult(summary)
	c.JSON(http.StatusCreated, summary)
}
