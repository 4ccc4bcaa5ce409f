package model

import "github.com/golang-jwt/jwt/v5"

// Claims is what a bearer token carries: the caller's id, email and name.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

func (c Claims) User() PublicUser {
	return PublicUser{ID: c.UserID, Email: c.Email, Name: c.Name}
}
