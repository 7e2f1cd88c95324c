package controllers

import (
	"net/http"

	"github.com/KanayaActa/IceBreaker/db"
	"github.com/KanayaActa/IceBreaker/models"
	"github.com/KanayaActa/IceBreaker/structs"
	"github.com/KanayaActa/IceBreaker/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateUser registers a user without issuing a token
func CreateUser(c *gin.Context) {
	var request structs.SignUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := db.CreateUser(c.Request.Context(), models.User{
		Name:      request.Name,
		IntraName: request.IntraName,
		Email:     request.Email,
		Password:  hashed,
		UserImage: request.UserImage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUser fetches user details by ID
func GetUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	user, err := db.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial profile update
func UpdateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	var request structs.UpdateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	fields := bson.M{}
	if request.Name != nil {
		fields["name"] = *request.Name
	}
	if request.Email != nil {
		fields["email"] = *request.Email
	}
	if request.UserImage != nil {
		fields["userImage"] = *request.UserImage
	}
	if request.Password != nil && *request.Password != "" {
		hashed, err := utils.HashPassword(*request.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		fields["password"] = hashed
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	user, err := db.UpdateUser(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SearchUsers matches users by name or intra name
func SearchUsers(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search key is required"})
		return
	}

	users, err := db.SearchUsers(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
