package dto

import "github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"

// RegisterRequest represents a faculty registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100" example:"Asha Menon"`
	Email    string `json:"email" binding:"required,email" example:"asha@college.edu"`
	Password string `json:"password" binding:"required,min=6" example:"s3cret!"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"Asha Menon"`
	Email string `json:"email" example:"asha@college.edu"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn" example:"2592000"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	User  UserResponse  `json:"user"`
	Token TokenResponse `json:"token"`
}

// NewUserResponse converts a user model.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}
