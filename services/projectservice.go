package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasktracker/model"
	"tasktracker/store"
)

const projectNotFound = "Project not found"

type ProjectInput struct {
	Name        string `validate:"required,max=80" label:"Project name"`
	Description string `validate:"max=400" label:"Description"`
}

type projectPatchCheck struct {
	Name        string `validate:"max=80" label:"Project name"`
	Description string `validate:"max=400" label:"Description"`
}

// ProjectPatch is a partial update. Name applies only when non-empty;
// Description applies whenever the key was sent, with null meaning "".
type ProjectPatch struct {
	Name        *string
	Description model.Nullable[string]
}

// ProjectService manages projects scoped to their owner.
type ProjectService struct {
	store store.Store
	now   func() time.Time
	newID func() string
}

func NewProjectService(s store.Store) *ProjectService {
	return &ProjectService{store: s, now: utcNow, newID: uuid.NewString}
}

func (s *ProjectService) List(ctx context.Context, userID string) ([]model.Project, error) {
	d, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	projects := []model.Project{}
	for _, p := range d.Projects {
		if p.OwnerID == userID {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, userID, id string) (model.Project, error) {
	d, err := s.store.Read(ctx)
	if err != nil {
		return model.Project{}, err
	}
	i := findOwnedProject(d.Projects, userID, id)
	if i < 0 {
		return model.Project{}, notFoundError(projectNotFound)
	}
	return d.Projects[i], nil
}

func (s *ProjectService) Create(ctx context.Context, userID string, in ProjectInput) (model.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return model.Project{}, err
	}

	now := s.now()
	project := model.Project{
		ID:          s.newID(),
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.store.Update(ctx, func(d *store.Dataset) error {
		d.Projects = append(d.Projects, project)
		return nil
	})
	if err != nil {
		return model.Project{}, err
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, userID, id string, patch ProjectPatch) (model.Project, error) {
	var name string
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
	}
	var description string
	if patch.Description.Value != nil {
		description = *patch.Description.Value
	}
	if err := validateInput(projectPatchCheck{Name: name, Description: description}); err != nil {
		return model.Project{}, err
	}

	var updated model.Project
	err := s.store.Update(ctx, func(d *store.Dataset) error {
		i := findOwnedProject(d.Projects, userID, id)
		if i < 0 {
			return notFoundError(projectNotFound)
		}
		p := d.Projects[i]
		if name != "" {
			p.Name = name
		}
		if patch.Description.Set {
			p.Description = description
		}
		p.UpdatedAt = s.now()
		d.Projects[i] = p
		updated = p
		return nil
	})
	if err != nil {
		return model.Project{}, err
	}
	return updated, nil
}

// Delete removes the project and every task under it in one transaction.
func (s *ProjectService) Delete(ctx context.Context, userID, id string) error {
	return s.store.Update(ctx, func(d *store.Dataset) error {
		if findOwnedProject(d.Projects, userID, id) < 0 {
			return notFoundError(projectNotFound)
		}
		tasks := make([]model.Task, 0, len(d.Tasks))
		for _, t := range d.Tasks {
			if t.ProjectID != id {
				tasks = append(tasks, t)
			}
		}
		projects := make([]model.Project, 0, len(d.Projects))
		for _, p := range d.Projects {
			if p.ID != id {
				projects = append(projects, p)
			}
		}
		d.Tasks = tasks
		d.Projects = projects
		return nil
	})
}

func findOwnedProject(projects []model.Project, userID, id string) int {
	for i, p := range projects {
		if p.ID == id && p.OwnerID == userID {
			return i
		}
	}
	return -1
}

func utcNow() time.Time {
	return time.Now().UTC()
}
