package dto

import "tasktracker/model"

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateProjectRequest distinguishes a missing description from an empty one.
type UpdateProjectRequest struct {
	Name        *string                `json:"name"`
	Description model.Nullable[string] `json:"description"`
}

type ProjectResponse struct {
	Success bool          `json:"success"`
	Project model.Project `json:"project"`
}

type ProjectsResponse struct {
	Success  bool            `json:"success"`
	Projects []model.Project `json:"projects"`
}
