package dto

import "tasktracker/model"

type SigninRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Success bool             `json:"success"`
	User    model.PublicUser `json:"user"`
	Token   string           `json:"token,omitempty"`
}
