package store

import (
	"context"
	"errors"
	"slices"

	"tasktracker/model"
)

// Collection names, shared by every backend.
const (
	UsersCollection    = "users"
	ProjectsCollection = "projects"
	TasksCollection    = "tasks"
)

var ErrClosed = errors.New("store is closed")

// Dataset is the complete persisted state: three collections in insertion order.
type Dataset struct {
	Users    []model.User    `json:"users"`
	Projects []model.Project `json:"projects"`
	Tasks    []model.Task    `json:"tasks"`
}

// Clone copies the collection slices so that element writes on the copy never
// reach the original. Records are values; DueDate pointers are treated as immutable.
func (d Dataset) Clone() Dataset {
	return Dataset{
		Users:    slices.Clone(d.Users),
		Projects: slices.Clone(d.Projects),
		Tasks:    slices.Clone(d.Tasks),
	}
}

// normalize replaces nil collections with empty ones so they encode as [].
func (d *Dataset) normalize() {
	if d.Users == nil {
		d.Users = []model.User{}
	}
	if d.Projects == nil {
		d.Projects = []model.Project{}
	}
	if d.Tasks == nil {
		d.Tasks = []model.Task{}
	}
}

// Store owns the dataset. Services never hold on to what Read returns or what
// Update hands them past the call.
type Store interface {
	// Read returns a consistent snapshot of every collection.
	Read(ctx context.Context) (Dataset, error)
	// Update runs fn against a private copy of the dataset and, if fn returns
	// nil, persists the result as a whole before returning. Calls are serialized.
	// When fn fails nothing is written.
	Update(ctx context.Context, fn func(*Dataset) error) error
	Close() error
}
