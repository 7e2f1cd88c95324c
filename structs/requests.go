package structs

import "time"

type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	UserImage *string `json:"userImage"`
	Password  *string `json:"password"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Image       string `json:"image"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Image       *string `json:"image"`
}

type CreateMatchRequest struct {
	WinnerID    string    `json:"winnerId" binding:"required"`
	LoserID     string    `json:"loserId" binding:"required"`
	CategoryID  string    `json:"categoryId" binding:"required"`
	WinnerPoint int       `json:"winnerPoint"`
	LoserPoint  int       `json:"loserPoint"`
	Date        time.Time `json:"date"`
}

type UpdateMatchRequest struct {
	WinnerPoint *int       `json:"winnerPoint"`
	LoserPoint  *int       `json:"loserPoint"`
	Date        *time.Time `json:"date"`
}

type UpdateRatingRequest struct {
	Rate *float64   `json:"rate"`
	Date *time.Time `json:"date"`
}

type MatchResultRequest struct {
	WinnerID    string    `json:"winnerId" binding:"required"`
	LoserID     string    `json:"loserId" binding:"required"`
	CategoryID  string    `json:"categoryId" binding:"required"`
	WinnerPoint int       `json:"winnerPoint"`
	LoserPoint  int       `json:"loserPoint"`
	Date        time.Time `json:"date"`
}

type ChatRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Content string `json:"content" binding:"required"`
}
