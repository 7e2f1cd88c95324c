package controllers

import (
	"net/http"

	"github.com/KanayaActa/IceBreaker/db"
	"github.com/KanayaActa/IceBreaker/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetRating fetches one rating record by ID
func GetRating(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("ratingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rating ID format"})
		return
	}

	rating, err := db.GetRating(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

// GetUserCategoryRating returns the current rating for a user in a
// category, i.e. the most recent history record by date.
func GetUserCategoryRating(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	rating, err := db.GetCurrentRating(c.Request.Context(), userID, categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

// UpdateRating corrects the rate or date of an existing record. Normal
// rating movement happens through the result endpoint, not here.
func UpdateRating(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("ratingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rating ID format"})
		return
	}

	var request structs.UpdateRatingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}
	if request.Rate == nil && request.Date == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	rating, err := db.UpdateRating(c.Request.Context(), id, request.Rate, request.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

// GetRatingHistory returns the full rating trail for a user in a
// category, oldest first, for charting.
func GetRatingHistory(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if _, err := db.GetUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	if _, err := db.GetCategory(c.Request.Context(), categoryID); err != nil {
		respondError(c, err)
		return
	}

	history, err := db.GetRatingHistory(c.Request.Context(), userID, categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
