package controllers

import (
	"net/http"

	"github.com/KanayaActa/IceBreaker/db"
	"github.com/KanayaActa/IceBreaker/models"
	"github.com/KanayaActa/IceBreaker/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateMatch records a raw match without touching ratings. The result
// endpoint is the one that drives rating updates.
func CreateMatch(c *gin.Context) {
	var request structs.CreateMatchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	winnerID, err := primitive.ObjectIDFromHex(request.WinnerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	loserID, err := primitive.ObjectIDFromHex(request.LoserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(request.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	match, err := db.CreateMatch(c.Request.Context(), models.Match{
		WinnerID:    winnerID,
		LoserID:     loserID,
		CategoryID:  categoryID,
		WinnerPoint: request.WinnerPoint,
		LoserPoint:  request.LoserPoint,
		Date:        request.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, match)
}

// GetMatch fetches match details by ID
func GetMatch(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("matchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID format"})
		return
	}

	match, err := db.GetMatch(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

// GetUserMatches lists a user's matches, as winner or loser, newest first
func GetUserMatches(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	matches, err := db.GetUserMatches(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// GetCategoryMatches lists a category's matches, newest first
func GetCategoryMatches(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID format"})
		return
	}

	matches, err := db.GetCategoryMatches(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// UpdateMatch corrects the points or date of a recorded match
func UpdateMatch(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("matchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID format"})
		return
	}

	var request structs.UpdateMatchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}
	if request.WinnerPoint == nil && request.LoserPoint == nil && request.Date == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	match, err := db.UpdateMatch(c.Request.Context(), id, request.WinnerPoint, request.LoserPoint, request.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}
