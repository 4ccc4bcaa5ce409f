package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasktracker/model"
	"tasktracker/store"
)

const taskNotFound = "Task not found"

type TaskInput struct {
	ProjectID   string  `validate:"required" label:"Project ID"`
	Title       string  `validate:"required" label:"Title"`
	Description string  `label:"Description"`
	Priority    string  `validate:"omitempty,priority" label:"Priority"`
	DueDate     *string `validate:"omitempty,duedate" label:"Due date"`
}

// TaskPatch is a partial update. Title, Status and Priority apply only when
// non-empty; Description and DueDate apply whenever the key was sent, and a
// null DueDate clears it.
type TaskPatch struct {
	Title       *string
	Description model.Nullable[string]
	Status      *string
	Priority    *string
	DueDate     model.Nullable[string]
}

type taskPatchCheck struct {
	Status   string `validate:"omitempty,status" label:"Status"`
	Priority string `validate:"omitempty,priority" label:"Priority"`
	DueDate  string `validate:"omitempty,duedate" label:"Due date"`
}

// TaskService manages tasks. A task is visible to whoever owns its project.
type TaskService struct {
	store store.Store
	now   func() time.Time
	newID func() string
}

func NewTaskService(s store.Store) *TaskService {
	return &TaskService{store: s, now: utcNow, newID: uuid.NewString}
}

func (s *TaskService) List(ctx context.Context, userID, projectID string) ([]model.Task, error) {
	d, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	if findOwnedProject(d.Projects, userID, projectID) < 0 {
		return nil, notFoundError(projectNotFound)
	}
	tasks := []model.Task{}
	for _, t := range d.Tasks {
		if t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, userID, id string) (model.Task, error) {
	d, err := s.store.Read(ctx)
	if err != nil {
		return model.Task{}, err
	}
	i, err := findAuthorizedTask(&d, userID, id)
	if err != nil {
		return model.Task{}, err
	}
	return d.Tasks[i], nil
}

func (s *TaskService) Create(ctx context.Context, userID string, in TaskInput) (model.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateInput(in); err != nil {
		return model.Task{}, err
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	var dueDate *string
	if in.DueDate != nil && *in.DueDate != "" {
		due := *in.DueDate
		dueDate = &due
	}

	now := s.now()
	task := model.Task{
		ID:          s.newID(),
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      model.StatusTodo,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.store.Update(ctx, func(d *store.Dataset) error {
		if findOwnedProject(d.Projects, userID, in.ProjectID) < 0 {
			return notFoundError(projectNotFound)
		}
		d.Tasks = append(d.Tasks, task)
		return nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Update applies patch. Status may be set to any value directly; there is no
// transition check.
func (s *TaskService) Update(ctx context.Context, userID, id string, patch TaskPatch) (model.Task, error) {
	check := taskPatchCheck{Status: deref(patch.Status), Priority: deref(patch.Priority)}
	if patch.DueDate.Value != nil {
		check.DueDate = *patch.DueDate.Value
	}
	if err := validateInput(check); err != nil {
		return model.Task{}, err
	}

	var updated model.Task
	err := s.store.Update(ctx, func(d *store.Dataset) error {
		i, err := findAuthorizedTask(d, userID, id)
		if err != nil {
			return err
		}
		t := d.Tasks[i]
		if title := strings.TrimSpace(deref(patch.Title)); title != "" {
			t.Title = title
		}
		if patch.Description.Set {
			t.Description = deref(patch.Description.Value)
		}
		if check.Status != "" {
			t.Status = check.Status
		}
		if check.Priority != "" {
			t.Priority = check.Priority
		}
		if patch.DueDate.Set {
			t.DueDate = nil
			if check.DueDate != "" {
				due := check.DueDate
				t.DueDate = &due
			}
		}
		t.UpdatedAt = s.now()
		d.Tasks[i] = t
		updated = t
		return nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	return s.store.Update(ctx, func(d *store.Dataset) error {
		i, err := findAuthorizedTask(d, userID, id)
		if err != nil {
			return err
		}
		d.Tasks = slices.Delete(d.Tasks, i, i+1)
		return nil
	})
}

// findAuthorizedTask reports NotFound for a missing task and Unauthorized when
// the task exists but its project belongs to someone else.
func findAuthorizedTask(d *store.Dataset, userID, id string) (int, error) {
	for i, t := range d.Tasks {
		if t.ID != id {
			continue
		}
		if findOwnedProject(d.Projects, userID, t.ProjectID) < 0 {
			return -1, unauthorizedError("Unauthorized")
		}
		return i, nil
	}
	return -1, notFoundError(taskNotFound)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
