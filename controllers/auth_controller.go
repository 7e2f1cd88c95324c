package controllers

import (
	"net/http"
	"time"

	"github.com/KanayaActa/IceBreaker/db"
	"github.com/KanayaActa/IceBreaker/models"
	"github.com/KanayaActa/IceBreaker/structs"
	"github.com/KanayaActa/IceBreaker/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// SignUp registers a new user and returns the created profile
func SignUp(c *gin.Context) {
	var request structs.SignUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	if count, err := db.UsersCollection.CountDocuments(c.Request.Context(), bson.M{"email": request.Email}); err == nil && count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
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

// SignIn authenticates a user and returns a bearer token
func SignIn(c *gin.Context) {
	var request structs.SignInRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "Check email and password format"})
		return
	}

	user, err := db.GetUserByEmail(c.Request.Context(), request.Email)
	if err != nil || !utils.CheckPassword(user.Password, request.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	expiry := time.Duration(cfg.JWT.ExpiryMinutes) * time.Minute
	token, err := utils.CreateAccessToken(user.ID.Hex(), cfg.JWT.Secret, expiry)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": token, "tokenType": "bearer"})
}
