package dto

import "tasktracker/model"

type ListTasksQuery struct {
	ProjectID string `form:"projectId"`
}

type CreateTaskRequest struct {
	ProjectID   string  `json:"projectId" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

type UpdateTaskRequest struct {
	Title       *string                `json:"title"`
	Description model.Nullable[string] `json:"description"`
	Status      *string                `json:"status"`
	Priority    *string                `json:"priority"`
	DueDate     model.Nullable[string] `json:"dueDate"`
}

type TaskResponse struct {
	Success bool       `json:"success"`
	Task    model.Task `json:"task"`
}

type TasksResponse struct {
	Success bool         `json:"success"`
	Tasks   []model.Task `json:"tasks"`
}
