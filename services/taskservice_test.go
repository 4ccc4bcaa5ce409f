package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/model"
)

func TestTaskCreate_Defaults(t *testing.T) {
	env := newTestEnv(t)
	p := env.project(t, "alice", "P1")

	task := env.task(t, "alice", p.ID, "T1")
	assert.Equal(t, p.ID, task.ProjectID)
	assert.Equal(t, "T1", task.Title)
	assert.Equal(t, "", task.Description)
	assert.Equal(t, model.StatusTodo, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Nil(t, task.DueDate)
	assert.Equal(t, env.clock.Now(), task.CreatedAt)
}

func TestTaskCreate_WithOptionalFields(t *testing.T) {
	env := newTestEnv(t)
	p := env.project(t, "alice", "P1")

	task, err := env.tasks.Create(context.Background(), "alice", TaskInput{
		ProjectID:   p.ID,
		Title:       "T1",
		Description: "details",
		Priority:    model.PriorityHigh,
		DueDate:     strPtr("2026-04-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, "details", task.Description)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2026-04-01", *task.DueDate)

	empty, err := env.tasks.Create(context.Background(), "alice", TaskInput{ProjectID: p.ID, Title: "T2", DueDate: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, empty.DueDate)
}

func TestTaskCreate_Errors(t *testing.T) {
	env := newTestEnv(t)
	p := env.project(t, "alice", "P1")
	ctx := context.Background()

	cases := []struct {
		name   string
		userID string
		in     TaskInput
		kind   Kind
	}{
		{"missing project", "alice", TaskInput{Title: "T"}, KindValidation},
		{"missing title", "alice", TaskInput{ProjectID: p.ID}, KindValidation},
		{"blank title", "alice", TaskInput{ProjectID: p.ID, Title: "  "}, KindValidation},
		{"bad priority", "alice", TaskInput{ProjectID: p.ID, Title: "T", Priority: "urgent"}, KindValidation},
		{"bad due date", "alice", TaskInput{ProjectID: p.ID, Title: "T", DueDate: strPtr("next week")}, KindValidation},
		{"unknown project", "alice", TaskInput{ProjectID: "nope", Title: "T"}, KindNotFound},
		{"someone else's project", "bob", TaskInput{ProjectID: p.ID, Title: "T"}, KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.tasks.Create(ctx, tc.userID, tc.in)
			requireKind(t, err, tc.kind)
		})
	}

	d, err := env.store.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, d.Tasks)
}

func TestTaskList(t *testing.T) {
	env := newTestEnv(t)
	p1 := env.project(t, "alice", "P1")
	p2 := env.project(t, "alice", "P2")
	a := env.task(t, "alice", p1.ID, "A")
	env.task(t, "alice", p2.ID, "B")
	c := env.task(t, "alice", p1.ID, "C")

	list, err := env.tasks.List(context.Background(), "alice", p1.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{a, c}, list)

	_, err = env.tasks.List(context.Background(), "bob", p1.ID)
	requireKind(t, err, KindNotFound)
	_, err = env.tasks.List(context.Background(), "alice", "")
	requireKind(t, err, KindNotFound)
}

func TestTaskUpdate_Merge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.project(t, "alice", "P1")
	task, err := env.tasks.Create(ctx, "alice", TaskInput{
		ProjectID: p.ID, Title: "T1", Description: "d", DueDate: strPtr("2026-04-01"),
	})
	require.NoError(t, err)

	env.clock.Advance(time.Hour)
	got, err := env.tasks.Update(ctx, "alice", task.ID, TaskPatch{Status: strPtr(model.StatusDone)})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, got.Status)
	assert.Equal(t, "T1", got.Title)
	assert.Equal(t, "d", got.Description)
	assert.Equal(t, model.PriorityMedium, got.Priority)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2026-04-01", *got.DueDate)
	assert.Equal(t, env.clock.Now(), got.UpdatedAt)
	assert.Equal(t, task.CreatedAt, got.CreatedAt)

	// Empty values for title/status/priority are ignored.
	got, err = env.tasks.Update(ctx, "alice", task.ID, TaskPatch{Title: strPtr(""), Status: strPtr(""), Priority: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "T1", got.Title)
	assert.Equal(t, model.StatusDone, got.Status)

	// Present description and null due date are applied.
	got, err = env.tasks.Update(ctx, "alice", task.ID, TaskPatch{Description: model.Some(""), DueDate: model.Null[string]()})
	require.NoError(t, err)
	assert.Equal(t, "", got.Description)
	assert.Nil(t, got.DueDate)

	got, err = env.tasks.Update(ctx, "alice", task.ID, TaskPatch{
		Title: strPtr("T1b"), Priority: strPtr(model.PriorityLow), DueDate: model.Some("2026-05-01T10:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, "T1b", got.Title)
	assert.Equal(t, model.PriorityLow, got.Priority)
	assert.Equal(t, "2026-05-01T10:00:00Z", *got.DueDate)

	stored, err := env.tasks.Get(ctx, "alice", task.ID)
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestTaskUpdate_AnyStatusTransition(t *testing.T) {
	env := newTestEnv(t)
	p := env.project(t, "alice", "P1")
	task := env.task(t, "alice", p.ID, "T1")

	for _, status := range []string{model.StatusDone, model.StatusTodo, model.StatusInProgress, model.StatusTodo} {
		got, err := env.tasks.Update(context.Background(), "alice", task.ID, TaskPatch{Status: strPtr(status)})
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}
}

func TestTaskUpdate_Errors(t *testing.T) {
	env := newTestEnv(t)
	p := env.project(t, "alice", "P1")
	task := env.task(t, "alice", p.ID, "T1")
	ctx := context.Background()

	_, err := env.tasks.Update(ctx, "alice", "missing", TaskPatch{Title: strPtr("x")})
	requireKind(t, err, KindNotFound)

	_, err = env.tasks.Update(ctx, "bob", task.ID, TaskPatch{Title: strPtr("x")})
	requireKind(t, err, KindUnauthorized)

	_, err = env.tasks.Update(ctx, "alice", task.ID, TaskPatch{Status: strPtr("blocked")})
	requireKind(t, err, KindValidation)

	_, err = env.tasks.Update(ctx, "alice", task.ID, TaskPatch{DueDate: model.Some("31/12/2026")})
	requireKind(t, err, KindValidation)

	got, err := env.tasks.Get(ctx, "alice", task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)
}

func TestTaskGet_OwnershipAsymmetry(t *testing.T) {
	env := newTestEnv(t)
	p := env.project(t, "alice", "P1")
	task := env.task(t, "alice", p.ID, "T1")

	_, err := env.tasks.Get(context.Background(), "bob", task.ID)
	requireKind(t, err, KindUnauthorized)
	_, err = env.tasks.Get(context.Background(), "bob", "missing")
	requireKind(t, err, KindNotFound)
}

func TestTaskDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.project(t, "alice", "P1")
	t1 := env.task(t, "alice", p.ID, "T1")
	t2 := env.task(t, "alice", p.ID, "T2")
	t3 := env.task(t, "alice", p.ID, "T3")

	requireKind(t, env.tasks.Delete(ctx, "bob", t2.ID), KindUnauthorized)
	require.NoError(t, env.tasks.Delete(ctx, "alice", t2.ID))
	requireKind(t, env.tasks.Delete(ctx, "alice", t2.ID), KindNotFound)

	list, err := env.tasks.List(ctx, "alice", p.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{t1, t3}, list)
}

func TestConcurrentCreatesAreAllKept(t *testing.T) {
	env := newTestEnv(t)
	p := env.project(t, "alice", "P1")
	// The sequential generator is not goroutine-safe.
	env.tasks.newID = uuid.NewString

	const n = 25
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := env.tasks.Create(context.Background(), "alice", TaskInput{ProjectID: p.ID, Title: "T"})
			errs <- err
		}()
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}

	list, err := env.tasks.List(context.Background(), "alice", p.ID)
	require.NoError(t, err)
	assert.Len(t, list, n)
}
