package project

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/controller/response"
	"tasktracker/dto"
	"tasktracker/middleware"
	"tasktracker/services"
)

func ProjectController(router *gin.Engine, projects *services.ProjectService, tokens middleware.TokenVerifier) {
	routes := router.Group("/projects", middleware.AccessTokenMiddleware(tokens))
	{
		routes.GET("", func(c *gin.Context) {
			ListProjects(c, projects)
		})
		routes.POST("", func(c *gin.Context) {
			CreateProject(c, projects)
		})
		routes.GET("/:id", func(c *gin.Context) {
			GetProject(c, projects)
		})
		routes.PUT("/:id", func(c *gin.Context) {
			UpdateProject(c, projects)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteProject(c, projects)
		})
	}
}

func ListProjects(c *gin.Context, projects *services.ProjectService) {
	list, err := projects.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProjectsResponse{Success: true, Projects: list})
}

func CreateProject(c *gin.Context, projects *services.ProjectService) {
	var request dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := projects.Create(c.Request.Context(), middleware.UserID(c), services.ProjectInput{
		Name:        request.Name,
		Description: request.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ProjectResponse{Success: true, Project: p})
}

func GetProject(c *gin.Context, projects *services.ProjectService) {
	p, err := projects.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProjectResponse{Success: true, Project: p})
}

func UpdateProject(c *gin.Context, projects *services.ProjectService) {
	var request dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := projects.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), services.ProjectPatch{
		Name:        request.Name,
		Description: request.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProjectResponse{Success: true, Project: p})
}

// DeleteProject also removes every task of the project.
func DeleteProject(c *gin.Context, projects *services.ProjectService) {
	if err := projects.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
