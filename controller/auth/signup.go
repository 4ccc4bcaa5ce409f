package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/controller/response"
	"tasktracker/dto"
	"tasktracker/services"
)

func SignUpController(router *gin.Engine, users *services.UserService) {
	router.POST("/auth/signup", func(c *gin.Context) {
		Signup(c, users)
	})
}

func Signup(c *gin.Context, users *services.UserService) {
	var request dto.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BindError(c, err)
		return
	}

	user, token, err := users.Signup(c.Request.Context(), services.SignupInput{
		Email:    request.Email,
		Name:     request.Name,
		Password: request.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{Success: true, User: user, Token: token})
}
