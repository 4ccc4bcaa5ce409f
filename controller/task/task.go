package task

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/controller/response"
	"tasktracker/dto"
	"tasktracker/middleware"
	"tasktracker/services"
)

func TaskController(router *gin.Engine, tasks *services.TaskService, tokens middleware.TokenVerifier) {
	routes := router.Group("/tasks", middleware.AccessTokenMiddleware(tokens))
	{
		routes.GET("", func(c *gin.Context) {
			ListTasks(c, tasks)
		})
		routes.POST("", func(c *gin.Context) {
			CreateTask(c, tasks)
		})
		routes.GET("/:id", func(c *gin.Context) {
			GetTask(c, tasks)
		})
		routes.PUT("/:id", func(c *gin.Context) {
			UpdateTask(c, tasks)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteTask(c, tasks)
		})
	}
}

func ListTasks(c *gin.Context, tasks *services.TaskService) {
	var query dto.ListTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	list, err := tasks.List(c.Request.Context(), middleware.UserID(c), query.ProjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TasksResponse{Success: true, Tasks: list})
}

func CreateTask(c *gin.Context, tasks *services.TaskService) {
	var taskReq dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&taskReq); err != nil {
		response.BindError(c, err)
		return
	}

	t, err := tasks.Create(c.Request.Context(), middleware.UserID(c), services.TaskInput{
		ProjectID:   taskReq.ProjectID,
		Title:       taskReq.Title,
		Description: taskReq.Description,
		Priority:    taskReq.Priority,
		DueDate:     taskReq.DueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TaskResponse{Success: true, Task: t})
}

func GetTask(c *gin.Context, tasks *services.TaskService) {
	t, err := tasks.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskResponse{Success: true, Task: t})
}

// UpdateTask answers 404 for a missing task but 401 when the task belongs to
// another user's project.
func UpdateTask(c *gin.Context, tasks *services.TaskService) {
	var taskReq dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&taskReq); err != nil {
		response.BindError(c, err)
		return
	}

	t, err := tasks.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), services.TaskPatch{
		Title:       taskReq.Title,
		Description: taskReq.Description,
		Status:      taskReq.Status,
		Priority:    taskReq.Priority,
		DueDate:     taskReq.DueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskResponse{Success: true, Task: t})
}

func DeleteTask(c *gin.Context, tasks *services.TaskService) {
	if err := tasks.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
