package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/controller/response"
	"tasktracker/dto"
	"tasktracker/middleware"
	"tasktracker/services"
)

func SignInController(router *gin.Engine, users *services.UserService) {
	router.POST("/auth/signin", func(c *gin.Context) {
		Signin(c, users)
	})
}

// MeController exposes the user behind a token so a client can restore its
// session without signing in again.
func MeController(router *gin.Engine, users *services.UserService, tokens middleware.TokenVerifier) {
	router.GET("/auth/me", middleware.AccessTokenMiddleware(tokens), func(c *gin.Context) {
		Me(c, users)
	})
}

func Signin(c *gin.Context, users *services.UserService) {
	var request dto.SigninRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BindError(c, err)
		return
	}

	user, token, err := users.Signin(c.Request.Context(), request.Email, request.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, User: user, Token: token})
}

func Me(c *gin.Context, users *services.UserService) {
	user, err := users.Me(c.Request.Context(), middleware.Claims(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, User: user})
}
