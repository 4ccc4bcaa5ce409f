package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/model"
)

func openTestSQLite(t *testing.T) *SQLStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLStore(t *testing.T) {
	testStoreContract(t, func(t *testing.T) Store { return openTestSQLite(t) })
}

func TestSQLStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Update(context.Background(), func(d *Dataset) error {
		d.Users = append(d.Users, model.User{ID: "u1", Email: "a@x.com", Name: "A", PasswordHash: "h"})
		return nil
	}))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()
	d, err := reopened.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Users, 1)
	assert.Equal(t, "h", d.Users[0].PasswordHash)
}

func TestSQLStore_ClearsNullableDueDate(t *testing.T) {
	s := openTestSQLite(t)
	due := "2026-05-05"
	require.NoError(t, s.Update(context.Background(), func(d *Dataset) error {
		d.Tasks = append(d.Tasks, model.Task{ID: "t1", ProjectID: "p1", DueDate: &due})
		return nil
	}))
	require.NoError(t, s.Update(context.Background(), func(d *Dataset) error {
		d.Tasks[0].DueDate = nil
		return nil
	}))

	d, err := s.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Tasks, 1)
	assert.Nil(t, d.Tasks[0].DueDate)
}
