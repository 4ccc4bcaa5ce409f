package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tasktracker/model"
	"tasktracker/store"
)

type testEnv struct {
	store    *store.SnapshotStore
	tokens   *TokenService
	users    *UserService
	projects *ProjectService
	tasks    *TaskService
	clock    *fakeClock
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s := store.NewMemory()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}

	tokens := NewTokenService("test-secret", 0)
	users := NewUserService(s, tokens)
	users.cost = bcrypt.MinCost
	users.newID = sequentialIDs("user")

	projects := NewProjectService(s)
	projects.now = clock.Now
	projects.newID = sequentialIDs("project")

	tasks := NewTaskService(s)
	tasks.now = clock.Now
	tasks.newID = sequentialIDs("task")

	return &testEnv{store: s, tokens: tokens, users: users, projects: projects, tasks: tasks, clock: clock}
}

func (e *testEnv) signup(t *testing.T, email string) model.PublicUser {
	t.Helper()
	u, _, err := e.users.Signup(context.Background(), SignupInput{Email: email, Name: "Name", Password: "pw123456"})
	require.NoError(t, err)
	return u
}

func (e *testEnv) project(t *testing.T, userID, name string) model.Project {
	t.Helper()
	p, err := e.projects.Create(context.Background(), userID, ProjectInput{Name: name})
	require.NoError(t, err)
	return p
}

func (e *testEnv) task(t *testing.T, userID, projectID, title string) model.Task {
	t.Helper()
	task, err := e.tasks.Create(context.Background(), userID, TaskInput{ProjectID: projectID, Title: title})
	require.NoError(t, err)
	return task
}

func strPtr(s string) *string { return &s }

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "unexpected error: %v", err)
}
