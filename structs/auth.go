package structs

type SignUpRequest struct {
	Name      string `json:"name" binding:"required"`
	IntraName string `json:"intraName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	UserImage string `json:"userImage"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
